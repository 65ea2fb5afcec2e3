package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/v5hhrxpsqg-tech/Scribeer/internal/domain/entity"
	domainErrors "github.com/v5hhrxpsqg-tech/Scribeer/internal/domain/errors"
	domainRepo "github.com/v5hhrxpsqg-tech/Scribeer/internal/domain/repository"
	"go.uber.org/zap"
)

// BalanceResult describes the write that applied a grant.
type BalanceResult struct {
	NewBalance decimal.Decimal
	Created    bool
}

// BalanceUpdater applies credit grants with conditional writes. A write that
// loses a race re-reads the account and tries again, up to maxAttempts times.
type BalanceUpdater struct {
	accountRepo domainRepo.AccountRepository
	logger      *zap.Logger
	signupBonus decimal.Decimal
	maxAttempts int
	now         func() time.Time
}

// NewBalanceUpdater creates a new balance updater
func NewBalanceUpdater(accountRepo domainRepo.AccountRepository, logger *zap.Logger, signupBonus int64, maxAttempts int) *BalanceUpdater {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &BalanceUpdater{
		accountRepo: accountRepo,
		logger:      logger,
		signupBonus: decimal.NewFromInt(signupBonus),
		maxAttempts: maxAttempts,
		now:         time.Now,
	}
}

// withAccounts returns a copy of u that writes through accounts
func (u *BalanceUpdater) withAccounts(accounts domainRepo.AccountRepository) *BalanceUpdater {
	bound := *u
	bound.accountRepo = accounts
	return &bound
}

// Apply adds grant.Credits to the account, creating it with the signup bonus if absent.
func (u *BalanceUpdater) Apply(ctx context.Context, grant *entity.CreditGrant) (*BalanceResult, error) {
	credits := decimal.NewFromInt(grant.Credits)

	for attempt := 1; attempt <= u.maxAttempts; attempt++ {
		account, err := u.accountRepo.FindByEmail(ctx, grant.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to find account: %w", err)
		}

		now := u.now().UTC()

		if account == nil {
			balance := u.signupBonus.Add(credits)
			created, err := u.accountRepo.Create(ctx, grant.Email, balance, now)
			if err != nil {
				return nil, fmt.Errorf("failed to create account: %w", err)
			}
			if created {
				return &BalanceResult{NewBalance: balance, Created: true}, nil
			}
			u.logger.Warn("Account created concurrently, retrying",
				zap.String("email", grant.Email),
				zap.Int("attempt", attempt))
			continue
		}

		balance := account.CreditsRemaining.Add(credits)
		applied, err := u.accountRepo.UpdateBalance(ctx, grant.Email, account.CreditsRemaining, balance, now)
		if err != nil {
			return nil, fmt.Errorf("failed to update balance: %w", err)
		}
		if applied {
			return &BalanceResult{NewBalance: balance}, nil
		}
		u.logger.Warn("Balance changed concurrently, retrying",
			zap.String("email", grant.Email),
			zap.String("expected_balance", account.CreditsRemaining.String()),
			zap.Int("attempt", attempt))
	}

	return nil, domainErrors.ErrConflictRetriesExhausted
}
