package entity

import (
	"time"

	errs "github.com/watchearn/rewards-ledger/internal/domain/error"
	coreport "github.com/watchearn/rewards-ledger/internal/domain/port/core"
)

// EventOutcome is the recorded result of an event's first admission.
type EventOutcome string

// Event outcomes
const (
	OutcomeAccepted EventOutcome = "accepted"
	OutcomeRejected EventOutcome = "rejected"
)

// EventIdentity is the write-once idempotency record for one real-world
// completion event. A second admission with the same EventID returns this
// record instead of mutating the ledger again.
type EventIdentity struct {
	ID        uint64
	EventID   string
	AccountID uint64
	Outcome   EventOutcome
	CreatedAt time.Time
}

// NewEventIdentity creates an idempotency record for a completion event.
func NewEventIdentity(
	eventID string,
	accountID uint64,
	outcome EventOutcome,
	timeProvider coreport.TimeProvider,
) (*EventIdentity, error) {
	if eventID == "" {
		return nil, errs.ErrInvalidEventID
	}
	if accountID == 0 {
		return nil, errs.ErrInvalidAccountID
	}

	return &EventIdentity{
		EventID:   eventID,
		AccountID: accountID,
		Outcome:   outcome,
		CreatedAt: timeProvider.Now(),
	}, nil
}
