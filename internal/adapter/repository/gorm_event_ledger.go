package repository

import (
	"context"

	domainErrors "github.com/v5hhrxpsqg-tech/Scribeer/internal/domain/errors"
	"github.com/v5hhrxpsqg-tech/Scribeer/internal/domain/model"
	domainRepo "github.com/v5hhrxpsqg-tech/Scribeer/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type eventLedger struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewEventLedger creates a processed_webhook_events backed ledger
func NewEventLedger(db *gorm.DB, logger *zap.Logger) domainRepo.EventLedger {
	return &eventLedger{
		db:     db,
		logger: logger,
	}
}

// Claim inserts the event id; zero affected rows means it was seen before
func (l *eventLedger) Claim(ctx context.Context, eventID, eventType string) (bool, error) {
	event := &model.ProcessedWebhookEvent{
		EventID:   eventID,
		EventType: eventType,
	}

	result := l.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "event_id"}}, DoNothing: true}).
		Create(event)

	if result.Error != nil {
		l.logger.Error("Failed to claim webhook event",
			zap.String("event_id", eventID),
			zap.String("event_type", eventType),
			zap.Error(result.Error))
		return false, domainErrors.NewStoreError(postgresBackend, "claim", result.Error)
	}

	return result.RowsAffected == 1, nil
}

// Release deletes the claim so a retried delivery is processed again
func (l *eventLedger) Release(ctx context.Context, eventID string) error {
	err := l.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Delete(&model.ProcessedWebhookEvent{}).Error

	if err != nil {
		l.logger.Error("Failed to release webhook event",
			zap.String("event_id", eventID),
			zap.Error(err))
		return domainErrors.NewStoreError(postgresBackend, "release", err)
	}

	return nil
}
