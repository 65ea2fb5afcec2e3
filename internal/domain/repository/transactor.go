package repository

import "context"

// CreditStores are the repositories bound to a single transaction
type CreditStores struct {
	Accounts AccountRepository
	Ledger   EventLedger
}

// Transactor runs fn so that the event claim and the balance write commit
// or roll back together. A non-nil error from fn rolls everything back.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(stores CreditStores) error) error
}
