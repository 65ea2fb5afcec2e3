package usecase

import (
	"context"
	"fmt"

	"github.com/v5hhrxpsqg-tech/Scribeer/internal/domain/entity"
	domainErrors "github.com/v5hhrxpsqg-tech/Scribeer/internal/domain/errors"
	domainRepo "github.com/v5hhrxpsqg-tech/Scribeer/internal/domain/repository"
)

// CreditQueryService reads balances for the signed-in user.
type CreditQueryService struct {
	accountRepo domainRepo.AccountRepository
}

func NewCreditQueryService(accountRepo domainRepo.AccountRepository) *CreditQueryService {
	return &CreditQueryService{accountRepo: accountRepo}
}

// GetBalance returns ErrAccountNotFound when the email has never purchased.
func (s *CreditQueryService) GetBalance(ctx context.Context, email string) (*entity.Account, error) {
	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}
	if account == nil {
		return nil, domainErrors.ErrAccountNotFound
	}
	return account, nil
}
