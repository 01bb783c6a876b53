package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	errs "github.com/watchearn/rewards-ledger/internal/domain/error"
	coreport "github.com/watchearn/rewards-ledger/internal/domain/port/core"
)

// Account represents a rewards account with a point balance and daily counters.
//
// The balance invariant Points == TotalEarned - TotalWithdrawn holds on every
// mutation path: credits raise Points and TotalEarned together, debits lower
// Points and raise TotalWithdrawn together. Both lifetime counters only grow.
type Account struct {
	ID                   uint64
	Points               int64
	TotalEarned          int64
	TotalWithdrawn       int64
	DailyWatchCount      int
	LastResetDate        time.Time // reward day the watch counter applies to
	ReferralCode         string
	ReferredBy           *uint64
	ReferralBonusAwarded bool
	Disabled             bool
	Banned               bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// NewAccount creates a new account with a zero balance and a fresh referral code.
func NewAccount(id uint64, rewardDay time.Time, timeProvider coreport.TimeProvider) (*Account, error) {
	if id == 0 {
		return nil, errs.ErrInvalidAccountID
	}

	now := timeProvider.Now()
	return &Account{
		ID:            id,
		LastResetDate: rewardDay,
		ReferralCode:  NewReferralCode(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// NewReferralCode generates a short unique referral code.
func NewReferralCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// IsBlocked reports whether the account accepts no mutations at all.
func (a *Account) IsBlocked() bool {
	return a.Disabled || a.Banned
}

// Credit adds points to the spendable balance and the lifetime earned counter.
func (a *Account) Credit(points int64, timeProvider coreport.TimeProvider) error {
	if points <= 0 {
		return errs.ErrInvalidReward
	}

	a.Points += points
	a.TotalEarned += points
	a.UpdatedAt = timeProvider.Now()
	return nil
}

// Debit removes points from the spendable balance and raises the lifetime
// withdrawn counter. Returns ErrInsufficientBalance if the balance would go
// negative; the account is left untouched in that case.
func (a *Account) Debit(points int64, timeProvider coreport.TimeProvider) error {
	if points <= 0 {
		return errs.ErrInvalidAmount
	}
	if a.Points < points {
		return errs.ErrInsufficientBalance
	}

	a.Points -= points
	a.TotalWithdrawn += points
	a.UpdatedAt = timeProvider.Now()
	return nil
}

// ApplyDailyReset zeroes the daily watch counter for a new reward day.
// Must be called inside the same store transaction as the mutation that
// observed the stale counter.
func (a *Account) ApplyDailyReset(rewardDay time.Time, timeProvider coreport.TimeProvider) {
	a.DailyWatchCount = 0
	a.LastResetDate = rewardDay
	a.UpdatedAt = timeProvider.Now()
}

// RecordAdWatch counts one watched ad against the daily quota.
func (a *Account) RecordAdWatch(timeProvider coreport.TimeProvider) {
	a.DailyWatchCount++
	a.UpdatedAt = timeProvider.Now()
}

// BalanceConsistent reports whether the balance invariant holds.
func (a *Account) BalanceConsistent() bool {
	return a.Points >= 0 && a.Points == a.TotalEarned-a.TotalWithdrawn
}
