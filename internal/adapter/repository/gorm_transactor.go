package repository

import (
	"context"

	domainRepo "github.com/v5hhrxpsqg-tech/Scribeer/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type transactor struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewTransactor runs the account store and event ledger inside one database transaction
func NewTransactor(db *gorm.DB, logger *zap.Logger) domainRepo.Transactor {
	return &transactor{
		db:     db,
		logger: logger,
	}
}

func (t *transactor) WithinTransaction(ctx context.Context, fn func(stores domainRepo.CreditStores) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(domainRepo.CreditStores{
			Accounts: NewAccountRepository(tx, t.logger),
			Ledger:   NewEventLedger(tx, t.logger),
		})
	})
}
