package error

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "insufficient balance", err: ErrInsufficientBalance, expected: CodeInsufficientBalance},
		{name: "account blocked", err: ErrAccountBlocked, expected: CodeAccountBlocked},
		{name: "daily limit", err: ErrDailyLimitExceeded, expected: CodeDailyLimitExceeded},
		{name: "invalid reward", err: ErrInvalidReward, expected: CodeInvalidReward},
		{name: "already credited", err: ErrAlreadyCredited, expected: CodeAlreadyCredited},
		{name: "invalid account id", err: ErrInvalidAccountID, expected: CodeInvalidAccountID},
		{name: "invalid amount", err: ErrInvalidAmount, expected: CodeInvalidAmount},
		{name: "invalid destination", err: ErrInvalidDestination, expected: CodeInvalidDestination},
		{name: "withdrawal already resolved", err: ErrWithdrawalAlreadyResolved, expected: CodeWithdrawalAlreadyResolved},
		{name: "account not found", err: ErrAccountNotFound, expected: CodeAccountNotFound},
		{name: "withdrawal not found", err: ErrWithdrawalNotFound, expected: CodeWithdrawalNotFound},
		{name: "store failure", err: ErrDatabaseConnection, expected: CodeStoreFailure},
		{name: "unknown error", err: errors.New("mystery"), expected: CodeInternalServer},
		{name: "wrapped error keeps its code", err: fmt.Errorf("context: %w", ErrDailyLimitExceeded), expected: CodeDailyLimitExceeded},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ErrorCode(tc.err))
		})
	}
}

func TestInsufficientBalanceError(t *testing.T) {
	err := NewInsufficientBalanceError(7, 1000, 300)

	assert.True(t, errors.Is(err, ErrInsufficientBalance))
	assert.True(t, IsInsufficientBalanceError(err))
	assert.Contains(t, err.Error(), "account 7")
	assert.Contains(t, err.Error(), "required 1000")

	var detailed *InsufficientBalanceError
	assert.True(t, errors.As(err, &detailed))
	assert.Equal(t, int64(300), detailed.CurrentPoints)

	fields := detailed.LogFields()
	assert.Equal(t, uint64(7), fields["account_id"])
	assert.Equal(t, CodeInsufficientBalance, fields["error_code"])
}

func TestDuplicateEventError(t *testing.T) {
	err := &DuplicateEventError{EventID: "evt-1", AccountID: 7, Outcome: "accepted"}

	assert.True(t, errors.Is(err, ErrAlreadyCredited))
	assert.True(t, IsAlreadyCreditedError(err))
	assert.Contains(t, err.Error(), "evt-1")
	assert.Equal(t, "evt-1", err.LogFields()["event_id"])
}

func TestCreditError_Unwraps(t *testing.T) {
	err := NewCreditError("evt-1", 7, "offer_task", -5, "unusable reward amount", ErrInvalidReward)

	assert.True(t, errors.Is(err, ErrInvalidReward))
	assert.Equal(t, CodeInvalidReward, ErrorCode(err))
	assert.Contains(t, err.Error(), "evt-1")

	var creditErr *CreditError
	assert.True(t, errors.As(err, &creditErr))
	assert.Equal(t, int64(-5), creditErr.Points)
}

func TestIsNotFoundError(t *testing.T) {
	assert.True(t, IsNotFoundError(ErrAccountNotFound))
	assert.True(t, IsNotFoundError(ErrWithdrawalNotFound))
	assert.True(t, IsNotFoundError(ErrEventNotFound))
	assert.True(t, IsNotFoundError(fmt.Errorf("wrap: %w", ErrAccountNotFound)))
	assert.False(t, IsNotFoundError(ErrAccountBlocked))
}

func TestIsAccountBlockedError(t *testing.T) {
	assert.True(t, IsAccountBlockedError(ErrAccountBlocked))
	assert.False(t, IsAccountBlockedError(ErrAccountNotFound))
}

func TestIsStoreError(t *testing.T) {
	assert.True(t, IsStoreError(fmt.Errorf("%w: connection refused", ErrDatabaseConnection)))
	assert.False(t, IsStoreError(ErrDailyLimitExceeded))
}
