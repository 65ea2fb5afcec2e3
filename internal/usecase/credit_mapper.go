package usecase

import (
	"fmt"

	"github.com/v5hhrxpsqg-tech/Scribeer/internal/domain/entity"
	domainErrors "github.com/v5hhrxpsqg-tech/Scribeer/internal/domain/errors"
)

// CreditTable maps purchases to credits. It is read-only once built.
type CreditTable struct {
	prices  map[string]int64
	amounts map[int64]int64
}

// NewCreditTable copies the given maps. Every credit value must be positive.
func NewCreditTable(prices map[string]int64, amounts map[int64]int64) (*CreditTable, error) {
	t := &CreditTable{
		prices:  make(map[string]int64, len(prices)),
		amounts: make(map[int64]int64, len(amounts)),
	}
	for id, credits := range prices {
		if credits <= 0 {
			return nil, fmt.Errorf("price %q maps to non-positive credits %d", id, credits)
		}
		t.prices[id] = credits
	}
	for amount, credits := range amounts {
		if credits <= 0 {
			return nil, fmt.Errorf("amount %d maps to non-positive credits %d", amount, credits)
		}
		t.amounts[amount] = credits
	}
	return t, nil
}

func (t *CreditTable) ForPrice(priceID string) (int64, bool) {
	credits, ok := t.prices[priceID]
	return credits, ok
}

func (t *CreditTable) ForAmount(amount int64) (int64, bool) {
	credits, ok := t.amounts[amount]
	return credits, ok
}

// CreditMapper turns a verified payment event into a credit grant. No I/O.
type CreditMapper struct {
	table *CreditTable
}

func NewCreditMapper(table *CreditTable) *CreditMapper {
	return &CreditMapper{table: table}
}

// Map resolves the customer email first, then the credit quantity.
// A price id match wins over an amount match.
func (m *CreditMapper) Map(event *entity.PaymentEvent) (*entity.CreditGrant, error) {
	email := ResolveEmail(event)
	if email == "" {
		return nil, domainErrors.NewMissingIdentityError(string(event.Type))
	}

	if event.PriceID != "" {
		if credits, ok := m.table.ForPrice(event.PriceID); ok {
			return &entity.CreditGrant{Email: email, Credits: credits}, nil
		}
	}

	if credits, ok := m.table.ForAmount(event.AmountPaid); ok {
		return &entity.CreditGrant{Email: email, Credits: credits}, nil
	}

	return nil, domainErrors.NewUnknownAmountError(string(event.Type), email)
}

// ResolveEmail picks the account key for an event. The address is used as given.
func ResolveEmail(event *entity.PaymentEvent) string {
	switch event.Type {
	case entity.EventTypeCheckoutCompleted:
		if event.CustomerDetailsEmail != "" {
			return event.CustomerDetailsEmail
		}
		return event.CustomerEmail
	case entity.EventTypePaymentIntentSucceeded:
		return event.ReceiptEmail
	default:
		return ""
	}
}
