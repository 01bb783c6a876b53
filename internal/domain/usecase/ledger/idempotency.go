package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/watchearn/rewards-ledger/internal/domain/entity"
	errs "github.com/watchearn/rewards-ledger/internal/domain/error"
	coreport "github.com/watchearn/rewards-ledger/internal/domain/port/core"
	"github.com/watchearn/rewards-ledger/internal/domain/port/persistence"
)

// Admission is the result of presenting an event identity to the guard.
// Exactly one caller per identity observes FirstAdmission; everyone else gets
// the recorded prior outcome and must not mutate the ledger.
type Admission struct {
	FirstAdmission bool
	Prior          *entity.EventIdentity
}

// IdempotencyGuard maps completion signals to write-once event identities.
// Admit must run inside the caller's unit of work so that a rolled-back
// mutation releases its identity for the next retry.
type IdempotencyGuard struct {
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewIdempotencyGuard creates a new IdempotencyGuard
func NewIdempotencyGuard(timeProvider coreport.TimeProvider, logger coreport.Logger) *IdempotencyGuard {
	return &IdempotencyGuard{
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Admit returns the prior admission for an already-consumed identity, or
// records a new one with the given outcome. The read-then-insert order
// matters: a failed insert aborts the surrounding store transaction, so the
// duplicate check must happen before any statement that can violate the
// unique index. The check is race-free per account because the caller holds
// the account row lock; the unique index backstops cross-account races, where
// the losing insert surfaces a retryable store condition.
func (g *IdempotencyGuard) Admit(
	ctx context.Context,
	events persistence.EventIdentityRepository,
	eventID string,
	accountID uint64,
	outcome entity.EventOutcome,
) (*Admission, error) {
	if eventID == "" {
		return nil, errs.ErrInvalidEventID
	}

	prior, err := events.GetByEventID(ctx, eventID)
	if err == nil {
		g.logger.Debug("Duplicate event suppressed", map[string]any{
			"event_id":      eventID,
			"account_id":    accountID,
			"prior_outcome": string(prior.Outcome),
		})
		return &Admission{FirstAdmission: false, Prior: prior}, nil
	}
	if !errors.Is(err, errs.ErrEventNotFound) {
		return nil, fmt.Errorf("failed to check prior admission: %w", err)
	}

	record, err := entity.NewEventIdentity(eventID, accountID, outcome, g.timeProvider)
	if err != nil {
		return nil, err
	}

	err = events.Record(ctx, record)
	if err == nil {
		return &Admission{FirstAdmission: true}, nil
	}
	if errors.Is(err, errs.ErrDuplicateEvent) {
		// Another transaction inserted this identity after our check and has
		// not committed yet; our own transaction is now aborted. Surface a
		// retryable store condition rather than guess the winner's outcome.
		g.logger.Warn("Event identity conflict with uncommitted winner", map[string]any{
			"event_id":   eventID,
			"account_id": accountID,
		})
		return nil, fmt.Errorf("%w: concurrent admission of event %s in flight", errs.ErrDatabaseConnection, eventID)
	}
	return nil, fmt.Errorf("failed to record event identity: %w", err)
}

// Event identity synthesis. Completion signals without a usable provider id
// never skip dedup; they get a deterministic best-effort identity instead.
// Colliding a legitimate retry (under-crediting) is preferred over double
// crediting.

// AdWatchEventID synthesizes an identity for an ad view scoped to
// account, reward day and quota slot.
func AdWatchEventID(accountID uint64, rewardDay time.Time, slot int) string {
	return fmt.Sprintf("adwatch:%d:%s:%d", accountID, rewardDay.Format("2006-01-02"), slot)
}

// OfferEventID synthesizes an identity for an offer completion scoped to
// account, reward day and reward amount.
func OfferEventID(accountID uint64, rewardDay time.Time, rewardPoints int64) string {
	return fmt.Sprintf("offer:%d:%s:%d", accountID, rewardDay.Format("2006-01-02"), rewardPoints)
}

// ReferralEventID identifies the one-time referral bonus for a referred
// account's threshold crossing.
func ReferralEventID(referredID uint64) string {
	return fmt.Sprintf("referral:%d", referredID)
}

// WithdrawalReversalEventID identifies the compensating credit for one
// rejected withdrawal request.
func WithdrawalReversalEventID(requestID string) string {
	return "withdrawal-reversal:" + requestID
}
