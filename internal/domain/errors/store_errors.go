package errors

import (
	"errors"
	"fmt"
)

// ErrAccountNotFound is returned by read paths when no account exists for an email.
var ErrAccountNotFound = errors.New("account not found")

// ErrConflictRetriesExhausted is returned when every conditional write attempt lost a race.
var ErrConflictRetriesExhausted = errors.New("balance update conflicted on every attempt")

// StoreError wraps a failure from an account store or event ledger backend.
type StoreError struct {
	Op      string
	Backend string
	Cause   error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Backend, e.Op, e.Cause)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}

// NewStoreError creates a new StoreError
func NewStoreError(backend, op string, cause error) *StoreError {
	return &StoreError{
		Op:      op,
		Backend: backend,
		Cause:   cause,
	}
}
