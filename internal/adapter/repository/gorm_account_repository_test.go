package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainErrors "github.com/v5hhrxpsqg-tech/Scribeer/internal/domain/errors"
	"github.com/v5hhrxpsqg-tech/Scribeer/internal/domain/model"
	"go.uber.org/zap"
)

func TestAccountRepository_CreateAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewAccountRepository(db, zap.NewNop())
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	account, err := repo.FindByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Nil(t, account)

	created, err := repo.Create(ctx, "a@example.com", decimal.NewFromInt(150), now)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.Create(ctx, "a@example.com", decimal.NewFromInt(999), now)
	require.NoError(t, err)
	assert.False(t, created)

	account, err = repo.FindByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.True(t, account.CreditsRemaining.Equal(decimal.NewFromInt(150)), "existing row is untouched")
	require.NotNil(t, account.LastUsed)
	assert.True(t, now.Equal(*account.LastUsed))

	// lookups are exact
	account, err = repo.FindByEmail(ctx, "A@example.com")
	require.NoError(t, err)
	assert.Nil(t, account)
}

func TestAccountRepository_ConditionalUpdate(t *testing.T) {
	db := newTestDB(t)
	repo := NewAccountRepository(db, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, db.Create(&model.UserCredit{Email: "b@example.com", CreditsRemaining: decimal.NewFromInt(40)}).Error)

	applied, err := repo.UpdateBalance(ctx, "b@example.com", decimal.NewFromInt(40), decimal.NewFromInt(340), time.Now())
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = repo.UpdateBalance(ctx, "b@example.com", decimal.NewFromInt(40), decimal.NewFromInt(640), time.Now())
	require.NoError(t, err)
	assert.False(t, applied, "stale expected balance is rejected")

	applied, err = repo.UpdateBalance(ctx, "missing@example.com", decimal.Zero, decimal.NewFromInt(100), time.Now())
	require.NoError(t, err)
	assert.False(t, applied)

	account, err := repo.FindByEmail(ctx, "b@example.com")
	require.NoError(t, err)
	assert.True(t, account.CreditsRemaining.Equal(decimal.NewFromInt(340)))
	assert.NotNil(t, account.LastUsed)
}

func TestAccountRepository_ClosedDB(t *testing.T) {
	db := newTestDB(t)
	repo := NewAccountRepository(db, zap.NewNop())
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = repo.FindByEmail(context.Background(), "c@example.com")
	var storeErr *domainErrors.StoreError
	assert.ErrorAs(t, err, &storeErr)
}
