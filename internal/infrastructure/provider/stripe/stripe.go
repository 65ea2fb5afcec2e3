package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
	"github.com/v5hhrxpsqg-tech/Scribeer/internal/domain/entity"
	domainErrors "github.com/v5hhrxpsqg-tech/Scribeer/internal/domain/errors"
	"github.com/v5hhrxpsqg-tech/Scribeer/internal/domain/provider"
	"go.uber.org/zap"
)

const providerName = "stripe"

// StripeProvider verifies Stripe webhook deliveries and decodes the payment objects
type StripeProvider struct {
	tolerance time.Duration
	logger    *zap.Logger
}

var _ provider.WebhookVerifier = (*StripeProvider)(nil)

// NewStripeProvider creates a new Stripe provider. A zero tolerance uses the library default.
func NewStripeProvider(tolerance time.Duration, logger *zap.Logger) *StripeProvider {
	if tolerance <= 0 {
		tolerance = webhook.DefaultTolerance
	}
	return &StripeProvider{
		tolerance: tolerance,
		logger:    logger,
	}
}

// GetProviderName returns the provider name
func (s *StripeProvider) GetProviderName() string {
	return providerName
}

// ParseWebhook checks the Stripe-Signature header against the raw payload and
// extracts the fields credit mapping needs from qualifying events.
func (s *StripeProvider) ParseWebhook(ctx context.Context, payload []byte, signature, secret string) (*entity.PaymentEvent, error) {
	event, err := webhook.ConstructEventWithOptions(
		payload,
		signature,
		secret,
		webhook.ConstructEventOptions{
			Tolerance:                s.tolerance,
			IgnoreAPIVersionMismatch: true,
		},
	)
	if err != nil {
		s.logger.Warn("Webhook signature verification failed", zap.Error(err))
		return nil, domainErrors.NewInvalidSignatureError(err)
	}

	result := &entity.PaymentEvent{
		ID:   event.ID,
		Type: entity.EventType(event.Type),
	}
	if event.Data == nil {
		if result.Type.Qualifies() {
			return nil, domainErrors.NewUnclassifiedError(fmt.Errorf("event %s has no data object", event.ID))
		}
		return result, nil
	}

	switch result.Type {
	case entity.EventTypeCheckoutCompleted:
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return nil, domainErrors.NewUnclassifiedError(fmt.Errorf("error parsing checkout session: %w", err))
		}
		result.SessionID = session.ID
		result.AmountPaid = session.AmountTotal
		result.CustomerEmail = session.CustomerEmail
		if session.CustomerDetails != nil {
			result.CustomerDetailsEmail = session.CustomerDetails.Email
		}
		result.PriceID = firstPriceID(session.LineItems)

	case entity.EventTypePaymentIntentSucceeded:
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			return nil, domainErrors.NewUnclassifiedError(fmt.Errorf("error parsing payment intent: %w", err))
		}
		result.AmountPaid = intent.Amount
		result.ReceiptEmail = intent.ReceiptEmail
	}

	return result, nil
}

func firstPriceID(items *stripe.LineItemList) string {
	if items == nil || len(items.Data) == 0 || items.Data[0] == nil || items.Data[0].Price == nil {
		return ""
	}
	return items.Data[0].Price.ID
}
