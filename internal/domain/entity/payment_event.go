package entity

import "github.com/shopspring/decimal"

type EventType string

const (
	EventTypeCheckoutCompleted      EventType = "checkout.session.completed"
	EventTypePaymentIntentSucceeded EventType = "payment_intent.succeeded"
)

// Qualifies reports whether the event type triggers credit logic.
func (t EventType) Qualifies() bool {
	return t == EventTypeCheckoutCompleted || t == EventTypePaymentIntentSucceeded
}

// PaymentEvent is a verified provider notification reduced to the fields
// credit mapping needs. Empty strings mean the field was absent.
type PaymentEvent struct {
	ID   string
	Type EventType
	// AmountPaid is in minor currency units (cents).
	AmountPaid int64
	PriceID    string

	// Checkout identity candidates, in lookup order.
	CustomerDetailsEmail string
	CustomerEmail        string
	// Payment intent identity.
	ReceiptEmail string

	// SessionID is set for checkout events; used to look up line items.
	SessionID string
}

// CreditGrant is the mapper's output: who gets how many minutes.
type CreditGrant struct {
	Email   string
	Credits int64
}

// CreditApplied is the result of a successful balance update.
type CreditApplied struct {
	EventID    string
	EventType  EventType
	Email      string
	Credits    int64
	NewBalance decimal.Decimal
	Created    bool
}
