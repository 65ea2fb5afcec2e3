package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/v5hhrxpsqg-tech/Scribeer/internal/domain/entity"
	domainErrors "github.com/v5hhrxpsqg-tech/Scribeer/internal/domain/errors"
	"github.com/v5hhrxpsqg-tech/Scribeer/internal/domain/model"
	domainRepo "github.com/v5hhrxpsqg-tech/Scribeer/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const postgresBackend = "postgres"

type accountRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewAccountRepository creates a new gorm-backed account repository
func NewAccountRepository(db *gorm.DB, logger *zap.Logger) domainRepo.AccountRepository {
	return &accountRepository{
		db:     db,
		logger: logger,
	}
}

// FindByEmail retrieves the account for an exact email match
func (r *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var row model.UserCredit

	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&row).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to find account",
			zap.String("email", email),
			zap.Error(err))
		return nil, domainErrors.NewStoreError(postgresBackend, "find", err)
	}

	return &entity.Account{
		Email:            row.Email,
		CreditsRemaining: row.CreditsRemaining,
		LastUsed:         row.LastUsed,
	}, nil
}

// UpdateBalance writes the new balance only if the stored balance still equals expected
func (r *accountRepository) UpdateBalance(ctx context.Context, email string, expected, balance decimal.Decimal, lastUsed time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.UserCredit{}).
		Where("email = ? AND credits_remaining_mb = ?", email, expected).
		Updates(map[string]interface{}{
			"credits_remaining_mb": balance,
			"last_used":            lastUsed,
		})

	if result.Error != nil {
		r.logger.Error("Failed to update balance",
			zap.String("email", email),
			zap.String("expected_balance", expected.String()),
			zap.Error(result.Error))
		return false, domainErrors.NewStoreError(postgresBackend, "update", result.Error)
	}

	return result.RowsAffected == 1, nil
}

// Create inserts a new account; an existing email leaves the table unchanged
func (r *accountRepository) Create(ctx context.Context, email string, balance decimal.Decimal, lastUsed time.Time) (bool, error) {
	row := &model.UserCredit{
		Email:            email,
		CreditsRemaining: balance,
		LastUsed:         &lastUsed,
	}

	// Use ON CONFLICT so a concurrent first purchase is reported, not raised
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).
		Create(row)

	if result.Error != nil {
		r.logger.Error("Failed to create account",
			zap.String("email", email),
			zap.Error(result.Error))
		return false, domainErrors.NewStoreError(postgresBackend, "create", result.Error)
	}

	return result.RowsAffected == 1, nil
}
