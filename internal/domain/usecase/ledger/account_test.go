package ledger

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchearn/rewards-ledger/internal/domain/entity"
	errs "github.com/watchearn/rewards-ledger/internal/domain/error"
)

func TestCreateAccount(t *testing.T) {
	env := newTestEnv(t)

	acct, err := env.service.CreateAccount(context.Background(), 1, "")
	require.NoError(t, err)

	assert.Equal(t, uint64(1), acct.ID)
	assert.Equal(t, int64(0), acct.Points)
	assert.NotEmpty(t, acct.ReferralCode)
	assert.Nil(t, acct.ReferredBy)
	assert.Equal(t, env.days.RewardDay(env.clock.Now()), acct.LastResetDate)
}

func TestCreateAccount_WithReferrerCode(t *testing.T) {
	env := newTestEnv(t)

	referrer, err := env.service.CreateAccount(context.Background(), 1, "")
	require.NoError(t, err)

	referred, err := env.service.CreateAccount(context.Background(), 2, referrer.ReferralCode)
	require.NoError(t, err)

	require.NotNil(t, referred.ReferredBy)
	assert.Equal(t, referrer.ID, *referred.ReferredBy)
}

func TestCreateAccount_UnknownReferrerCodeIgnored(t *testing.T) {
	env := newTestEnv(t)

	acct, err := env.service.CreateAccount(context.Background(), 1, "NOSUCHCODE")
	require.NoError(t, err)
	assert.Nil(t, acct.ReferredBy, "signup must not fail on a bad referrer code")
}

func TestCreateAccount_Duplicate(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, 1)

	_, err := env.service.CreateAccount(context.Background(), 1, "")
	assert.ErrorIs(t, err, errs.ErrDuplicateAccount)
}

func TestGetAccount(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, 1)

	acct, err := env.service.GetAccount(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), acct.ID)

	_, err = env.service.GetAccount(context.Background(), 2)
	assert.ErrorIs(t, err, errs.ErrAccountNotFound)

	_, err = env.service.GetAccount(context.Background(), 0)
	assert.ErrorIs(t, err, errs.ErrInvalidAccountID)
}

func TestListTransactions_NewestFirst(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, 1)

	ctx := context.Background()
	_, err := env.service.CreditOfferTask(ctx, 1, "evt-old", 10)
	require.NoError(t, err)
	_, err = env.service.CreditOfferTask(ctx, 1, "evt-new", 20)
	require.NoError(t, err)

	txns, err := env.service.ListTransactions(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, "evt-new", *txns[0].SourceEventID)
	assert.Equal(t, "evt-old", *txns[1].SourceEventID)
}

func TestListTransactions_LimitApplied(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, 1)

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := env.service.CreditOfferTask(ctx, 1, fmt.Sprintf("evt-%d", i), 10)
		require.NoError(t, err)
	}

	txns, err := env.service.ListTransactions(ctx, 1, 3)
	require.NoError(t, err)
	assert.Len(t, txns, 3)
}

func TestListTransactions_UnknownAccount(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.service.ListTransactions(context.Background(), 9, 10)
	assert.ErrorIs(t, err, errs.ErrAccountNotFound)
}

func TestListWithdrawals_NewestFirst(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, 1)
	env.seedBalance(t, 1, 3000)

	ctx := context.Background()
	first, err := env.service.RequestWithdrawal(ctx, 1, 100, "upi:a@bank")
	require.NoError(t, err)
	second, err := env.service.RequestWithdrawal(ctx, 1, 200, "upi:a@bank")
	require.NoError(t, err)

	withdrawals, err := env.service.ListWithdrawals(ctx, 1)
	require.NoError(t, err)
	require.Len(t, withdrawals, 2)
	assert.Equal(t, second.Request.ID, withdrawals[0].ID)
	assert.Equal(t, first.Request.ID, withdrawals[1].ID)
	assert.Equal(t, entity.WithdrawalPending, withdrawals[0].Status)
}
