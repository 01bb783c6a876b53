package entity

import (
	"time"

	errs "github.com/watchearn/rewards-ledger/internal/domain/error"
	coreport "github.com/watchearn/rewards-ledger/internal/domain/port/core"
)

// TransactionType classifies a ledger mutation.
type TransactionType string

// Transaction types
const (
	TypeAdWatch            TransactionType = "ad_watch"
	TypeOfferTask          TransactionType = "offer_task"
	TypeReferralBonus      TransactionType = "referral_bonus"
	TypeWithdrawalDebit    TransactionType = "withdrawal_debit"
	TypeWithdrawalReversal TransactionType = "withdrawal_reversal"
)

// Transaction is the immutable record of one ledger mutation.
// Credits carry positive Points, debits negative. SourceEventID references the
// idempotency record that produced the mutation and is nil for debits.
type Transaction struct {
	ID            uint64
	AccountID     uint64
	Type          TransactionType
	Points        int64
	BalanceAfter  int64
	SourceEventID *string
	CreatedAt     time.Time
}

// NewCreditTransaction creates a credit record. Points must be positive.
func NewCreditTransaction(
	accountID uint64,
	txType TransactionType,
	points int64,
	balanceAfter int64,
	sourceEventID string,
	timeProvider coreport.TimeProvider,
) (*Transaction, error) {
	if accountID == 0 {
		return nil, errs.ErrInvalidAccountID
	}
	if points <= 0 {
		return nil, errs.ErrInvalidReward
	}
	if !isCreditType(txType) {
		return nil, errs.ErrInvalidTransactionType
	}
	if sourceEventID == "" {
		return nil, errs.ErrInvalidEventID
	}

	return &Transaction{
		AccountID:     accountID,
		Type:          txType,
		Points:        points,
		BalanceAfter:  balanceAfter,
		SourceEventID: &sourceEventID,
		CreatedAt:     timeProvider.Now(),
	}, nil
}

// NewDebitTransaction creates a withdrawal debit record with a negative point delta.
func NewDebitTransaction(
	accountID uint64,
	points int64,
	balanceAfter int64,
	timeProvider coreport.TimeProvider,
) (*Transaction, error) {
	if accountID == 0 {
		return nil, errs.ErrInvalidAccountID
	}
	if points <= 0 {
		return nil, errs.ErrInvalidAmount
	}

	return &Transaction{
		AccountID:    accountID,
		Type:         TypeWithdrawalDebit,
		Points:       -points,
		BalanceAfter: balanceAfter,
		CreatedAt:    timeProvider.Now(),
	}, nil
}

// IsCredit reports whether the transaction increased the balance.
func (t *Transaction) IsCredit() bool {
	return t.Points > 0
}

func isCreditType(txType TransactionType) bool {
	switch txType {
	case TypeAdWatch, TypeOfferTask, TypeReferralBonus, TypeWithdrawalReversal:
		return true
	}
	return false
}

// IsValidTransactionType reports whether the given string names a known type.
func IsValidTransactionType(s string) bool {
	switch TransactionType(s) {
	case TypeAdWatch, TypeOfferTask, TypeReferralBonus, TypeWithdrawalDebit, TypeWithdrawalReversal:
		return true
	}
	return false
}
