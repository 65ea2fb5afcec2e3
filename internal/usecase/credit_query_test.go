package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainErrors "github.com/v5hhrxpsqg-tech/Scribeer/internal/domain/errors"
)

func TestCreditQueryService_GetBalance(t *testing.T) {
	repo := newMemoryAccounts()
	repo.rows["a@example.com"] = decimal.NewFromInt(150)
	service := NewCreditQueryService(repo)

	account, err := service.GetBalance(context.Background(), "a@example.com")
	require.NoError(t, err)
	assert.True(t, account.CreditsRemaining.Equal(decimal.NewFromInt(150)))

	_, err = service.GetBalance(context.Background(), "missing@example.com")
	assert.ErrorIs(t, err, domainErrors.ErrAccountNotFound)
}
