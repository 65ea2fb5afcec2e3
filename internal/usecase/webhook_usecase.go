package usecase

import (
	"context"

	"github.com/v5hhrxpsqg-tech/Scribeer/internal/domain/entity"
	domainErrors "github.com/v5hhrxpsqg-tech/Scribeer/internal/domain/errors"
	"github.com/v5hhrxpsqg-tech/Scribeer/internal/domain/provider"
	domainRepo "github.com/v5hhrxpsqg-tech/Scribeer/internal/domain/repository"
	"go.uber.org/zap"
)

// CreditNotifier announces applied credits to other services.
type CreditNotifier interface {
	NotifyCreditApplied(ctx context.Context, applied *entity.CreditApplied) error
}

// WebhookResult is the outcome of a verified event.
type WebhookResult struct {
	// Qualified is false for event types that carry no credit logic.
	Qualified bool
	// Duplicate is set when the event ledger had already seen the event id.
	Duplicate bool
	Applied   *entity.CreditApplied
}

// WebhookOption configures optional collaborators of WebhookService.
type WebhookOption func(*WebhookService)

// WithEventLedger enables event id deduplication.
func WithEventLedger(ledger domainRepo.EventLedger) WebhookOption {
	return func(s *WebhookService) { s.ledger = ledger }
}

// WithCreditNotifier publishes a message after each applied credit.
func WithCreditNotifier(notifier CreditNotifier) WebhookOption {
	return func(s *WebhookService) { s.notifier = notifier }
}

// WithLineItemResolver looks up price ids for checkout events that lack one.
func WithLineItemResolver(resolver provider.LineItemResolver) WebhookOption {
	return func(s *WebhookService) { s.resolver = resolver }
}

// WithTransactor claims the event id and writes the balance in one
// transaction. It takes precedence over WithEventLedger.
func WithTransactor(transactor domainRepo.Transactor) WebhookOption {
	return func(s *WebhookService) { s.transactor = transactor }
}

// WebhookService runs the credit flow for verified payment events.
type WebhookService struct {
	mapper   *CreditMapper
	updater  *BalanceUpdater
	ledger     domainRepo.EventLedger
	transactor domainRepo.Transactor
	notifier   CreditNotifier
	resolver   provider.LineItemResolver
	logger     *zap.Logger
}

// NewWebhookService creates a new webhook service
func NewWebhookService(mapper *CreditMapper, updater *BalanceUpdater, logger *zap.Logger, opts ...WebhookOption) *WebhookService {
	s := &WebhookService{
		mapper:  mapper,
		updater: updater,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HandleEvent maps, applies and announces a qualifying event.
// Errors are *domainErrors.WebhookError.
func (s *WebhookService) HandleEvent(ctx context.Context, event *entity.PaymentEvent) (*WebhookResult, error) {
	if !event.Type.Qualifies() {
		s.logger.Debug("Ignoring non-credit event",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)))
		return &WebhookResult{}, nil
	}

	s.resolvePriceID(ctx, event)

	grant, err := s.mapper.Map(event)
	if err != nil {
		return nil, err
	}

	result, duplicate, err := s.apply(ctx, event, grant)
	if err != nil {
		return nil, domainErrors.NewPersistenceError(string(event.Type), grant.Email, err)
	}
	if duplicate {
		s.logger.Info("Duplicate event skipped",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.String("email", grant.Email))
		return &WebhookResult{Qualified: true, Duplicate: true}, nil
	}

	applied := &entity.CreditApplied{
		EventID:    event.ID,
		EventType:  event.Type,
		Email:      grant.Email,
		Credits:    grant.Credits,
		NewBalance: result.NewBalance,
		Created:    result.Created,
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyCreditApplied(ctx, applied); err != nil {
			s.logger.Error("Failed to publish credit notification",
				zap.String("event_id", event.ID),
				zap.String("email", grant.Email),
				zap.Error(err))
		}
	}

	return &WebhookResult{Qualified: true, Applied: applied}, nil
}

// apply claims the event (when deduplicating) and writes the balance.
// duplicate is true when the event id had already been claimed.
func (s *WebhookService) apply(ctx context.Context, event *entity.PaymentEvent, grant *entity.CreditGrant) (result *BalanceResult, duplicate bool, err error) {
	if s.transactor != nil {
		err = s.transactor.WithinTransaction(ctx, func(stores domainRepo.CreditStores) error {
			if event.ID != "" {
				claimed, err := stores.Ledger.Claim(ctx, event.ID, string(event.Type))
				if err != nil {
					return err
				}
				if !claimed {
					duplicate = true
					return nil
				}
			}
			var applyErr error
			result, applyErr = s.updater.withAccounts(stores.Accounts).Apply(ctx, grant)
			return applyErr
		})
		if err != nil {
			return nil, false, err
		}
		return result, duplicate, nil
	}

	if s.ledger != nil && event.ID != "" {
		claimed, err := s.ledger.Claim(ctx, event.ID, string(event.Type))
		if err != nil {
			return nil, false, err
		}
		if !claimed {
			return nil, true, nil
		}
	}

	result, err = s.updater.Apply(ctx, grant)
	if err != nil {
		s.releaseClaim(ctx, event.ID)
		return nil, false, err
	}
	return result, false, nil
}

func (s *WebhookService) resolvePriceID(ctx context.Context, event *entity.PaymentEvent) {
	if s.resolver == nil || event.Type != entity.EventTypeCheckoutCompleted || event.PriceID != "" || event.SessionID == "" {
		return
	}

	priceID, err := s.resolver.ResolvePriceID(ctx, event.SessionID)
	if err != nil {
		s.logger.Warn("Line item lookup failed, falling back to amount",
			zap.String("event_id", event.ID),
			zap.String("session_id", event.SessionID),
			zap.Error(err))
		return
	}
	event.PriceID = priceID
}

func (s *WebhookService) releaseClaim(ctx context.Context, eventID string) {
	if s.ledger == nil || eventID == "" {
		return
	}
	if err := s.ledger.Release(ctx, eventID); err != nil {
		s.logger.Error("Failed to release event claim",
			zap.String("event_id", eventID),
			zap.Error(err))
	}
}
