package provider

import (
	"context"

	"github.com/v5hhrxpsqg-tech/Scribeer/internal/domain/entity"
)

// WebhookVerifier authenticates a raw provider notification and decodes it.
type WebhookVerifier interface {
	// ParseWebhook verifies signature against payload and secret.
	// payload must be the unmodified request body
	ParseWebhook(ctx context.Context, payload []byte, signature, secret string) (*entity.PaymentEvent, error)

	// GetProviderName returns the provider name
	GetProviderName() string
}

// LineItemResolver finds the purchased price id for a checkout session.
type LineItemResolver interface {
	// ResolvePriceID returns "" when the session has no priced line item
	ResolvePriceID(ctx context.Context, sessionID string) (string, error)
}
