package stripe

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/v5hhrxpsqg-tech/Scribeer/internal/domain/provider"
	"go.uber.org/zap"
)

// LineItemResolver looks up checkout line items through the Stripe API
type LineItemResolver struct {
	sessions *session.Client
	logger   *zap.Logger
}

var _ provider.LineItemResolver = (*LineItemResolver)(nil)

// NewLineItemResolver creates a resolver. A nil backend uses the default Stripe API backend.
func NewLineItemResolver(secretKey string, backend stripe.Backend, logger *zap.Logger) *LineItemResolver {
	if backend == nil {
		backend = stripe.GetBackend(stripe.APIBackend)
	}
	return &LineItemResolver{
		sessions: &session.Client{B: backend, Key: secretKey},
		logger:   logger,
	}
}

// ResolvePriceID returns the price id of the session's first line item
func (r *LineItemResolver) ResolvePriceID(ctx context.Context, sessionID string) (string, error) {
	params := &stripe.CheckoutSessionListLineItemsParams{
		Session: stripe.String(sessionID),
	}
	params.Context = ctx
	params.Limit = stripe.Int64(1)
	params.Single = true

	iter := r.sessions.ListLineItems(params)
	for iter.Next() {
		item := iter.LineItem()
		if item.Price != nil && item.Price.ID != "" {
			r.logger.Debug("Resolved checkout price",
				zap.String("session_id", sessionID),
				zap.String("price_id", item.Price.ID))
			return item.Price.ID, nil
		}
	}
	if err := iter.Err(); err != nil {
		return "", fmt.Errorf("failed to list line items for %s: %w", sessionID, err)
	}

	return "", nil
}
