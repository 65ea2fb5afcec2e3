package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a customer's prepaid credit balance, keyed by email.
type Account struct {
	Email            string          `json:"email"`
	CreditsRemaining decimal.Decimal `json:"credits_remaining"`
	LastUsed         *time.Time      `json:"last_used,omitempty"`
}
