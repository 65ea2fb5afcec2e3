package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/v5hhrxpsqg-tech/Scribeer/internal/domain/entity"
)

// AccountRepository defines the account store operations used to apply credits.
// Writes are conditional so concurrent deliveries for one email cannot lose an update.
type AccountRepository interface {
	// FindByEmail returns nil, nil when no account exists
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// UpdateBalance sets the balance only if the stored balance still equals expected.
	// Returns false when another writer changed the row first
	UpdateBalance(ctx context.Context, email string, expected, balance decimal.Decimal, lastUsed time.Time) (bool, error)

	// Create inserts a new account. Returns false when the email already exists
	Create(ctx context.Context, email string, balance decimal.Decimal, lastUsed time.Time) (bool, error)
}
