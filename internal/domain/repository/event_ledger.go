package repository

import "context"

// EventLedger remembers provider event ids that have been credited.
type EventLedger interface {
	// Claim records the event id. Returns false if it was already claimed
	Claim(ctx context.Context, eventID, eventType string) (bool, error)

	// Release forgets a claim so a provider retry can be processed
	Release(ctx context.Context, eventID string) error
}
