package ledger

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchearn/rewards-ledger/internal/domain/entity"
	errs "github.com/watchearn/rewards-ledger/internal/domain/error"
)

// seedBalance credits the account through the service so the lifetime
// counters stay consistent with the balance.
func (e *testEnv) seedBalance(t *testing.T, accountID uint64, points int64) {
	t.Helper()
	remaining := points
	n := 0
	for remaining > 0 {
		chunk := remaining
		if chunk > 500 {
			chunk = 500
		}
		_, err := e.service.CreditOfferTask(context.Background(), accountID, fmt.Sprintf("seed-evt-%d-%d", accountID, n), chunk)
		require.NoError(t, err)
		remaining -= chunk
		n++
	}
}

func TestRequestWithdrawal_DebitsAndRecordsPending(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, 1)
	env.seedBalance(t, 1, 1000)

	result, err := env.service.RequestWithdrawal(context.Background(), 1, 100, "upi:alice@bank")
	require.NoError(t, err)

	require.NotNil(t, result.Request)
	assert.NotEmpty(t, result.Request.ID)
	assert.Equal(t, entity.WithdrawalPending, result.Request.Status)
	assert.Equal(t, int64(100), result.Request.AmountCurrency)
	assert.Equal(t, int64(1000), result.Request.PointsDebited)
	assert.Equal(t, int64(0), result.Balance)

	acct := env.account(t, 1)
	assert.Equal(t, int64(0), acct.Points)
	assert.Equal(t, int64(1000), acct.TotalWithdrawn)
	assert.True(t, acct.BalanceConsistent())

	// The debit shows up in history as a negative delta
	txns := env.transactionsFor(1)
	last := txns[len(txns)-1]
	assert.Equal(t, entity.TypeWithdrawalDebit, last.Type)
	assert.Equal(t, int64(-1000), last.Points)
	assert.Equal(t, int64(0), last.BalanceAfter)
}

func TestRequestWithdrawal_InsufficientBalance(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, 1)
	env.seedBalance(t, 1, 999)

	_, err := env.service.RequestWithdrawal(context.Background(), 1, 100, "upi:alice@bank")
	require.Error(t, err)
	assert.True(t, errs.IsInsufficientBalanceError(err))

	var detailed *errs.InsufficientBalanceError
	require.True(t, errors.As(err, &detailed))
	assert.Equal(t, int64(1000), detailed.RequiredPoints)
	assert.Equal(t, int64(999), detailed.CurrentPoints)

	// Nothing was debited or recorded
	assert.Equal(t, int64(999), env.account(t, 1).Points)
	assert.Empty(t, env.store.withdrawals)
}

func TestRequestWithdrawal_BelowMinimumAmount(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, 1)
	env.seedBalance(t, 1, 1000)

	_, err := env.service.RequestWithdrawal(context.Background(), 1, 99, "upi:alice@bank")
	assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	assert.Empty(t, env.store.withdrawals)
}

func TestRequestWithdrawal_EmptyDestination(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, 1)
	env.seedBalance(t, 1, 1000)

	_, err := env.service.RequestWithdrawal(context.Background(), 1, 100, "   ")
	assert.ErrorIs(t, err, errs.ErrInvalidDestination)
}

func TestRequestWithdrawal_BlockedAccount(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, 1)
	env.seedBalance(t, 1, 1000)
	env.store.accounts[1].Banned = true

	_, err := env.service.RequestWithdrawal(context.Background(), 1, 100, "upi:alice@bank")
	assert.ErrorIs(t, err, errs.ErrAccountBlocked)
}

func TestResolveWithdrawal_ApproveStampsRecord(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, 1)
	env.seedBalance(t, 1, 1000)

	result, err := env.service.RequestWithdrawal(context.Background(), 1, 100, "upi:alice@bank")
	require.NoError(t, err)

	resolved, err := env.service.ResolveWithdrawal(context.Background(), result.Request.ID, true)
	require.NoError(t, err)

	assert.Equal(t, entity.WithdrawalApproved, resolved.Status)
	require.NotNil(t, resolved.ResolvedAt)

	// Approval settles externally; the balance does not move
	acct := env.account(t, 1)
	assert.Equal(t, int64(0), acct.Points)
	assert.Equal(t, int64(1000), acct.TotalWithdrawn)
	assert.True(t, acct.BalanceConsistent())
}

func TestResolveWithdrawal_RejectReversesDebit(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, 1)
	env.seedBalance(t, 1, 1000)

	result, err := env.service.RequestWithdrawal(context.Background(), 1, 100, "upi:alice@bank")
	require.NoError(t, err)

	resolved, err := env.service.ResolveWithdrawal(context.Background(), result.Request.ID, false)
	require.NoError(t, err)
	assert.Equal(t, entity.WithdrawalRejected, resolved.Status)

	// The compensating credit restores the balance as new earnings, so the
	// lifetime counters keep the invariant without rewriting history.
	acct := env.account(t, 1)
	assert.Equal(t, int64(1000), acct.Points)
	assert.Equal(t, int64(2000), acct.TotalEarned)
	assert.Equal(t, int64(1000), acct.TotalWithdrawn)
	assert.True(t, acct.BalanceConsistent())

	txns := env.transactionsFor(1)
	last := txns[len(txns)-1]
	assert.Equal(t, entity.TypeWithdrawalReversal, last.Type)
	assert.Equal(t, int64(1000), last.Points)
	require.NotNil(t, last.SourceEventID)
	assert.Equal(t, WithdrawalReversalEventID(result.Request.ID), *last.SourceEventID)
}

func TestResolveWithdrawal_DoubleResolveRejected(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, 1)
	env.seedBalance(t, 1, 1000)

	result, err := env.service.RequestWithdrawal(context.Background(), 1, 100, "upi:alice@bank")
	require.NoError(t, err)

	_, err = env.service.ResolveWithdrawal(context.Background(), result.Request.ID, false)
	require.NoError(t, err)

	// A second resolution of any kind is refused and pays nothing
	_, err = env.service.ResolveWithdrawal(context.Background(), result.Request.ID, false)
	assert.ErrorIs(t, err, errs.ErrWithdrawalAlreadyResolved)

	_, err = env.service.ResolveWithdrawal(context.Background(), result.Request.ID, true)
	assert.ErrorIs(t, err, errs.ErrWithdrawalAlreadyResolved)

	assert.Equal(t, int64(1000), env.account(t, 1).Points, "reversal must pay exactly once")
}

func TestResolveWithdrawal_UnknownRequest(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.ResolveWithdrawal(context.Background(), "no-such-request", true)
	assert.ErrorIs(t, err, errs.ErrWithdrawalNotFound)

	_, err = env.service.ResolveWithdrawal(context.Background(), "", true)
	assert.ErrorIs(t, err, errs.ErrWithdrawalNotFound)
}

func TestRequestWithdrawal_ExactBalanceMultipleOfRate(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, 1)
	env.seedBalance(t, 1, 2500)

	// 250 currency units cost exactly 2500 points at 10 points per unit
	result, err := env.service.RequestWithdrawal(context.Background(), 1, 250, "upi:alice@bank")
	require.NoError(t, err)
	assert.Equal(t, int64(2500), result.Request.PointsDebited)
	assert.Equal(t, int64(0), result.Balance)
}
