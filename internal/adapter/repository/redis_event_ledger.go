package repository

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	domainErrors "github.com/v5hhrxpsqg-tech/Scribeer/internal/domain/errors"
	domainRepo "github.com/v5hhrxpsqg-tech/Scribeer/internal/domain/repository"
	"go.uber.org/zap"
)

const (
	redisBackend        = "redis"
	redisEventKeyPrefix = "credits:webhook:event:"
)

type redisEventLedger struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisEventLedger creates a ledger whose claims expire after ttl.
// The provider stops retrying long before the default 72h.
func NewRedisEventLedger(client *redis.Client, ttl time.Duration, logger *zap.Logger) domainRepo.EventLedger {
	return &redisEventLedger{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (l *redisEventLedger) Claim(ctx context.Context, eventID, eventType string) (bool, error) {
	claimed, err := l.client.SetNX(ctx, redisEventKeyPrefix+eventID, eventType, l.ttl).Result()
	if err != nil {
		l.logger.Error("Failed to claim webhook event",
			zap.String("event_id", eventID),
			zap.Error(err))
		return false, domainErrors.NewStoreError(redisBackend, "claim", err)
	}
	return claimed, nil
}

func (l *redisEventLedger) Release(ctx context.Context, eventID string) error {
	if err := l.client.Del(ctx, redisEventKeyPrefix+eventID).Err(); err != nil {
		return domainErrors.NewStoreError(redisBackend, "release", err)
	}
	return nil
}
