package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/v5hhrxpsqg-tech/Scribeer/internal/domain/entity"
	domainRepo "github.com/v5hhrxpsqg-tech/Scribeer/internal/domain/repository"
)

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, email string, expected, balance decimal.Decimal, lastUsed time.Time) (bool, error) {
	args := m.Called(ctx, email, expected, balance, lastUsed)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, email string, balance decimal.Decimal, lastUsed time.Time) (bool, error) {
	args := m.Called(ctx, email, balance, lastUsed)
	return args.Bool(0), args.Error(1)
}

// MockEventLedger is a mock implementation of EventLedger
type MockEventLedger struct {
	mock.Mock
}

func (m *MockEventLedger) Claim(ctx context.Context, eventID, eventType string) (bool, error) {
	args := m.Called(ctx, eventID, eventType)
	return args.Bool(0), args.Error(1)
}

func (m *MockEventLedger) Release(ctx context.Context, eventID string) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

// MockCreditNotifier is a mock implementation of CreditNotifier
type MockCreditNotifier struct {
	mock.Mock
}

func (m *MockCreditNotifier) NotifyCreditApplied(ctx context.Context, applied *entity.CreditApplied) error {
	args := m.Called(ctx, applied)
	return args.Error(0)
}

// MockLineItemResolver is a mock implementation of LineItemResolver
type MockLineItemResolver struct {
	mock.Mock
}

func (m *MockLineItemResolver) ResolvePriceID(ctx context.Context, sessionID string) (string, error) {
	args := m.Called(ctx, sessionID)
	return args.String(0), args.Error(1)
}

// decimalEq matches a decimal argument by value rather than representation.
func decimalEq(n int64) interface{} {
	want := decimal.NewFromInt(n)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}

// memoryAccounts is an in-memory AccountRepository with the same conditional write rules
// as the real stores.
type memoryAccounts struct {
	rows map[string]decimal.Decimal
}

func newMemoryAccounts() *memoryAccounts {
	return &memoryAccounts{rows: map[string]decimal.Decimal{}}
}

func (r *memoryAccounts) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	balance, ok := r.rows[email]
	if !ok {
		return nil, nil
	}
	return &entity.Account{Email: email, CreditsRemaining: balance}, nil
}

func (r *memoryAccounts) UpdateBalance(_ context.Context, email string, expected, balance decimal.Decimal, _ time.Time) (bool, error) {
	current, ok := r.rows[email]
	if !ok || !current.Equal(expected) {
		return false, nil
	}
	r.rows[email] = balance
	return true, nil
}

func (r *memoryAccounts) Create(_ context.Context, email string, balance decimal.Decimal, _ time.Time) (bool, error) {
	if _, ok := r.rows[email]; ok {
		return false, nil
	}
	r.rows[email] = balance
	return true, nil
}

// fakeTransactor hands fn fixed stores and counts commits and rollbacks.
type fakeTransactor struct {
	stores     domainRepo.CreditStores
	committed  int
	rolledBack int
}

func (f *fakeTransactor) WithinTransaction(_ context.Context, fn func(stores domainRepo.CreditStores) error) error {
	if err := fn(f.stores); err != nil {
		f.rolledBack++
		return err
	}
	f.committed++
	return nil
}
