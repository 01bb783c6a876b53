package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchearn/rewards-ledger/internal/domain/entity"
)

// seedReferredAccount links a fresh account to a referrer
func (e *testEnv) seedReferredAccount(t *testing.T, id, referrerID uint64) *entity.Account {
	t.Helper()
	acct := e.seedAccount(t, id)
	referrer := referrerID
	acct.ReferredBy = &referrer
	return acct
}

func TestReferralBonus_AwardedOnThresholdCrossing(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, 1)
	env.seedReferredAccount(t, 2, 1)

	ctx := context.Background()

	// 60 earned: below the 100-point threshold, no bonus yet
	_, err := env.service.CreditOfferTask(ctx, 2, "offer-1", 60)
	require.NoError(t, err)
	assert.Equal(t, int64(0), env.account(t, 1).Points)
	assert.False(t, env.account(t, 2).ReferralBonusAwarded)

	// 120 earned: the crossing pays the referrer exactly once
	_, err = env.service.CreditOfferTask(ctx, 2, "offer-2", 60)
	require.NoError(t, err)

	referrer := env.account(t, 1)
	assert.Equal(t, int64(50), referrer.Points)
	assert.True(t, referrer.BalanceConsistent())
	assert.True(t, env.account(t, 2).ReferralBonusAwarded)

	bonusTxns := env.transactionsFor(1)
	require.Len(t, bonusTxns, 1)
	assert.Equal(t, entity.TypeReferralBonus, bonusTxns[0].Type)
	require.NotNil(t, bonusTxns[0].SourceEventID)
	assert.Equal(t, ReferralEventID(2), *bonusTxns[0].SourceEventID)
}

func TestReferralBonus_NotRepeatedAfterCrossing(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, 1)
	env.seedReferredAccount(t, 2, 1)

	ctx := context.Background()
	_, err := env.service.CreditOfferTask(ctx, 2, "offer-1", 150)
	require.NoError(t, err)
	require.Equal(t, int64(50), env.account(t, 1).Points)

	// Further earnings never pay the bonus again
	_, err = env.service.CreditOfferTask(ctx, 2, "offer-2", 200)
	require.NoError(t, err)
	_, err = env.service.CreditAdWatch(ctx, 2, "ad-1")
	require.NoError(t, err)

	assert.Equal(t, int64(50), env.account(t, 1).Points)
	assert.Len(t, env.transactionsFor(1), 1)
}

func TestReferralBonus_ReplayedCrossingEventPaysOnce(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, 1)
	env.seedReferredAccount(t, 2, 1)

	ctx := context.Background()
	_, err := env.service.CreditOfferTask(ctx, 2, "offer-1", 150)
	require.NoError(t, err)

	// Replaying the event that triggered the crossing changes nothing
	result, err := env.service.CreditOfferTask(ctx, 2, "offer-1", 150)
	require.NoError(t, err)
	assert.Equal(t, "offer-1", result.EventID)

	assert.Equal(t, int64(50), env.account(t, 1).Points)
	assert.Len(t, env.transactionsFor(1), 1)
}

func TestReferralBonus_NoReferrer(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, 2)

	_, err := env.service.CreditOfferTask(context.Background(), 2, "offer-1", 150)
	require.NoError(t, err)

	// The crossing is still consumed so a later linkage cannot pay retroactively
	assert.True(t, env.account(t, 2).ReferralBonusAwarded)
}

func TestReferralBonus_BlockedReferrerSkipped(t *testing.T) {
	env := newTestEnv(t)
	referrer := env.seedAccount(t, 1)
	referrer.Disabled = true
	env.seedReferredAccount(t, 2, 1)

	_, err := env.service.CreditOfferTask(context.Background(), 2, "offer-1", 150)
	require.NoError(t, err)

	// The crossing is consumed, the blocked referrer gets nothing
	assert.True(t, env.account(t, 2).ReferralBonusAwarded)
	assert.Equal(t, int64(0), env.account(t, 1).Points)
	assert.Empty(t, env.transactionsFor(1))
}

func TestReferralBonus_AdWatchEarningsCount(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, 1)
	env.seedReferredAccount(t, 2, 1)

	ctx := context.Background()

	// 95 from an offer, then an ad watch carries the total across 100
	_, err := env.service.CreditOfferTask(ctx, 2, "offer-1", 95)
	require.NoError(t, err)
	_, err = env.service.CreditAdWatch(ctx, 2, "ad-1")
	require.NoError(t, err)

	assert.Equal(t, int64(50), env.account(t, 1).Points)
}

func TestReferralBonus_ReversalCreditDoesNotTrigger(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, 1)
	referred := env.seedReferredAccount(t, 2, 1)

	// An account whose earnings never crossed the threshold while linked:
	// the balance predates the referral program
	referred.Points = 1000
	referred.TotalEarned = 1000

	ctx := context.Background()
	result, err := env.service.RequestWithdrawal(ctx, 2, 100, "upi:bob@bank")
	require.NoError(t, err)
	_, err = env.service.ResolveWithdrawal(ctx, result.Request.ID, false)
	require.NoError(t, err)

	// The reversal restored 1000 points but is not a genuine earning
	assert.Equal(t, int64(1000), env.account(t, 2).Points)
	assert.Equal(t, int64(0), env.account(t, 1).Points)
	assert.False(t, env.account(t, 2).ReferralBonusAwarded)
}
