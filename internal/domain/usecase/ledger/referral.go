package ledger

import (
	"context"
	"fmt"

	"github.com/watchearn/rewards-ledger/internal/domain/entity"
	coreport "github.com/watchearn/rewards-ledger/internal/domain/port/core"
	"github.com/watchearn/rewards-ledger/internal/domain/port/persistence"
)

// ReferralProcessor awards the one-time referrer bonus when a referred
// account's lifetime earnings cross the qualifying threshold.
type ReferralProcessor struct {
	rules        Rules
	guard        *IdempotencyGuard
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	metrics      coreport.Metrics
}

// NewReferralProcessor creates a new ReferralProcessor
func NewReferralProcessor(
	rules Rules,
	guard *IdempotencyGuard,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.Metrics,
) *ReferralProcessor {
	return &ReferralProcessor{
		rules:        rules,
		guard:        guard,
		timeProvider: timeProvider,
		logger:       logger,
		metrics:      metrics,
	}
}

// MaybeAward runs inside the credit's unit of work, after the referred
// account's counters were updated in memory but before they are persisted.
// It flips the referred account's bonus flag and credits the referrer as one
// atomic unit with the triggering credit: if anything fails, the whole credit
// rolls back and the crossing stays unconsumed.
func (p *ReferralProcessor) MaybeAward(
	ctx context.Context,
	accounts persistence.AccountRepository,
	transactions persistence.TransactionRepository,
	events persistence.EventIdentityRepository,
	referred *entity.Account,
	earnedBefore int64,
) error {
	if referred.ReferralBonusAwarded {
		return nil
	}
	if earnedBefore >= p.rules.ReferralThresholdPoints || referred.TotalEarned < p.rules.ReferralThresholdPoints {
		return nil
	}

	// The crossing is consumed exactly once, whatever happens below.
	referred.ReferralBonusAwarded = true

	if referred.ReferredBy == nil {
		return nil
	}

	referrer, err := accounts.GetByIDForUpdate(ctx, *referred.ReferredBy)
	if err != nil {
		return fmt.Errorf("failed to load referrer %d: %w", *referred.ReferredBy, err)
	}

	if referrer.IsBlocked() {
		p.logger.Warn("Referral bonus skipped, referrer is blocked", map[string]any{
			"referrer_id": referrer.ID,
			"referred_id": referred.ID,
		})
		return nil
	}

	eventID := ReferralEventID(referred.ID)
	admission, err := p.guard.Admit(ctx, events, eventID, referrer.ID, entity.OutcomeAccepted)
	if err != nil {
		return err
	}
	if !admission.FirstAdmission {
		// The flag is the primary gate; an existing identity means a previous
		// crossing already paid out.
		p.logger.Warn("Referral bonus already admitted", map[string]any{
			"event_id":    eventID,
			"referrer_id": referrer.ID,
		})
		return nil
	}

	if err := referrer.Credit(p.rules.ReferralBonusPoints, p.timeProvider); err != nil {
		return err
	}

	txn, err := entity.NewCreditTransaction(
		referrer.ID,
		entity.TypeReferralBonus,
		p.rules.ReferralBonusPoints,
		referrer.Points,
		eventID,
		p.timeProvider,
	)
	if err != nil {
		return err
	}
	if err := transactions.Create(ctx, txn); err != nil {
		return err
	}
	if err := accounts.Update(ctx, referrer); err != nil {
		return err
	}

	p.metrics.CreditApplied(string(entity.TypeReferralBonus), p.rules.ReferralBonusPoints)
	p.logger.Info("Referral bonus credited", map[string]any{
		"referrer_id": referrer.ID,
		"referred_id": referred.ID,
		"points":      p.rules.ReferralBonusPoints,
	})
	return nil
}
