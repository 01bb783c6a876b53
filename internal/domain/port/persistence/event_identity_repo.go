package persistence

import (
	"context"
	"time"

	"github.com/watchearn/rewards-ledger/internal/domain/entity"
)

// EventIdentityRepository stores write-once idempotency records
type EventIdentityRepository interface {
	// Record inserts an event identity. The event ID carries a unique
	// constraint, so concurrent admissions of the same identity yield exactly
	// one success.
	//
	// Possible errors:
	// - ErrDuplicateEvent: If the event identity was already recorded
	// - ErrDatabaseConnection: If the store is unreachable
	Record(ctx context.Context, event *entity.EventIdentity) error

	// GetByEventID retrieves a previously recorded event identity
	//
	// Possible errors:
	// - ErrEventNotFound: If no record with the given event ID exists
	// - ErrDatabaseConnection: If the store is unreachable
	GetByEventID(ctx context.Context, eventID string) (*entity.EventIdentity, error)

	// DeleteOlderThan prunes records created before the cutoff and returns the
	// number removed. Replay risk beyond the retention window is negligible.
	//
	// Possible errors:
	// - ErrDatabaseConnection: If the store is unreachable
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
