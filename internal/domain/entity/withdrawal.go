package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	errs "github.com/watchearn/rewards-ledger/internal/domain/error"
	coreport "github.com/watchearn/rewards-ledger/internal/domain/port/core"
)

// WithdrawalStatus represents the settlement state of a withdrawal request.
type WithdrawalStatus string

// Withdrawal statuses
const (
	WithdrawalPending  WithdrawalStatus = "pending"
	WithdrawalApproved WithdrawalStatus = "approved"
	WithdrawalRejected WithdrawalStatus = "rejected"
)

// WithdrawalRequest records a pending cash-out. The points are debited when the
// request is created; settlement itself is an external, manual act.
type WithdrawalRequest struct {
	ID                string
	AccountID         uint64
	AmountCurrency    int64
	PointsDebited     int64
	PayoutDestination string
	Status            WithdrawalStatus
	CreatedAt         time.Time
	ResolvedAt        *time.Time
}

// NewWithdrawalRequest creates a pending withdrawal request.
func NewWithdrawalRequest(
	accountID uint64,
	amountCurrency int64,
	pointsDebited int64,
	payoutDestination string,
	timeProvider coreport.TimeProvider,
) (*WithdrawalRequest, error) {
	if accountID == 0 {
		return nil, errs.ErrInvalidAccountID
	}
	if amountCurrency <= 0 || pointsDebited <= 0 {
		return nil, errs.ErrInvalidAmount
	}
	if strings.TrimSpace(payoutDestination) == "" {
		return nil, errs.ErrInvalidDestination
	}

	return &WithdrawalRequest{
		ID:                uuid.NewString(),
		AccountID:         accountID,
		AmountCurrency:    amountCurrency,
		PointsDebited:     pointsDebited,
		PayoutDestination: payoutDestination,
		Status:            WithdrawalPending,
		CreatedAt:         timeProvider.Now(),
	}, nil
}

// Approve transitions pending -> approved.
func (w *WithdrawalRequest) Approve(timeProvider coreport.TimeProvider) error {
	return w.resolve(WithdrawalApproved, timeProvider)
}

// Reject transitions pending -> rejected. The compensating credit is the
// caller's responsibility.
func (w *WithdrawalRequest) Reject(timeProvider coreport.TimeProvider) error {
	return w.resolve(WithdrawalRejected, timeProvider)
}

func (w *WithdrawalRequest) resolve(status WithdrawalStatus, timeProvider coreport.TimeProvider) error {
	if w.Status != WithdrawalPending {
		return errs.ErrWithdrawalAlreadyResolved
	}
	now := timeProvider.Now()
	w.Status = status
	w.ResolvedAt = &now
	return nil
}

// IsPending reports whether the request still awaits administrative resolution.
func (w *WithdrawalRequest) IsPending() bool {
	return w.Status == WithdrawalPending
}
