package database

import (
	"github.com/v5hhrxpsqg-tech/Scribeer/internal/domain/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migrate creates the tables this service owns. withAccounts is false when
// balances live in Supabase and the database only holds the event ledger.
func Migrate(db *gorm.DB, logger *zap.Logger, withAccounts bool) error {
	logger.Info("Running database migrations...",
		zap.Bool("with_accounts", withAccounts))

	models := []interface{}{&model.ProcessedWebhookEvent{}}
	if withAccounts {
		models = append(models, &model.UserCredit{})
	}

	if err := db.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}

	logger.Info("Database migrations completed successfully")
	return nil
}
