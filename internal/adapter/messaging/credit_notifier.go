package messaging

import (
	"context"
	"fmt"
	"time"

	"github.com/v5hhrxpsqg-tech/Scribeer/internal/domain/entity"
	"github.com/v5hhrxpsqg-tech/Scribeer/pkg/messaging"
)

// CreditAppliedMessage is published on the notification channel after each credit.
type CreditAppliedMessage struct {
	EventID      string    `json:"event_id"`
	EventType    string    `json:"event_type"`
	Email        string    `json:"email"`
	CreditsAdded int64     `json:"credits_added"`
	NewBalance   string    `json:"new_balance"`
	Created      bool      `json:"created"`
	AppliedAt    time.Time `json:"applied_at"`
}

// CreditNotifier publishes CreditAppliedMessage over Redis pub/sub.
type CreditNotifier struct {
	client  messaging.RedisClient
	channel string
}

func NewCreditNotifier(client messaging.RedisClient, channel string) *CreditNotifier {
	return &CreditNotifier{client: client, channel: channel}
}

func (n *CreditNotifier) NotifyCreditApplied(ctx context.Context, applied *entity.CreditApplied) error {
	msg := CreditAppliedMessage{
		EventID:      applied.EventID,
		EventType:    string(applied.EventType),
		Email:        applied.Email,
		CreditsAdded: applied.Credits,
		NewBalance:   applied.NewBalance.String(),
		Created:      applied.Created,
		AppliedAt:    time.Now().UTC(),
	}
	if err := n.client.Publish(ctx, n.channel, msg); err != nil {
		return fmt.Errorf("failed to publish credit notification: %w", err)
	}
	return nil
}
