package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client / business-rule errors
	CodeInsufficientBalance       = 4001
	CodeInvalidAmount             = 4002
	CodeInvalidAccountID          = 4003
	CodeDailyLimitExceeded        = 4004
	CodeInvalidReward             = 4005
	CodeInvalidEventID            = 4006
	CodeInvalidDestination        = 4007
	CodeWithdrawalAlreadyResolved = 4008
	CodeAccountNotFound           = 4040
	CodeWithdrawalNotFound        = 4041
	CodeAccountBlocked            = 4030
	CodeAlreadyCredited           = 4090

	// 5xxx - Server / infrastructure errors
	CodeInternalServer = 5000
	CodeStoreFailure   = 5030
)

// Base error types
var (
	// ErrInsufficientBalance is returned when a debit would make the balance negative
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrAccountBlocked is returned when the account is disabled or banned
	ErrAccountBlocked = errors.New("account is blocked")

	// ErrDailyLimitExceeded is returned when the ad-watch quota for the reward day is used up
	ErrDailyLimitExceeded = errors.New("daily watch limit exceeded")

	// ErrInvalidReward is returned when a credit amount is non-positive or unparseable
	ErrInvalidReward = errors.New("invalid reward amount")

	// ErrAlreadyCredited marks a duplicate completion event; the original outcome
	// stands and no mutation was applied. Idempotent success, not a failure.
	ErrAlreadyCredited = errors.New("event already credited")

	// ErrInvalidAccountID is returned when the account ID is not a positive integer
	ErrInvalidAccountID = errors.New("account ID must be positive")

	// ErrInvalidAmount is returned when a withdrawal amount is invalid or below the minimum
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidDestination is returned when the payout destination is empty
	ErrInvalidDestination = errors.New("payout destination cannot be empty")

	// ErrInvalidEventID is returned when an event identity cannot be derived at all
	ErrInvalidEventID = errors.New("event ID cannot be empty")

	// ErrInvalidTransactionType is returned when the transaction type is unknown
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrDuplicateEvent is returned by the store when an event identity already exists
	ErrDuplicateEvent = errors.New("event identity already recorded")

	// ErrAccountNotFound is returned when the requested account doesn't exist
	ErrAccountNotFound = errors.New("account not found")

	// ErrWithdrawalNotFound is returned when the requested withdrawal request doesn't exist
	ErrWithdrawalNotFound = errors.New("withdrawal request not found")

	// ErrWithdrawalAlreadyResolved is returned when resolving a non-pending request
	ErrWithdrawalAlreadyResolved = errors.New("withdrawal request already resolved")

	// ErrEventNotFound is returned when an event identity record doesn't exist
	ErrEventNotFound = errors.New("event identity not found")

	// ErrDuplicateAccount is returned when creating an account that already exists
	ErrDuplicateAccount = errors.New("account already exists")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrDatabaseConnection is returned when the store is unreachable; callers may
	// retry safely because crediting is idempotent
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInsufficientBalance):
		return CodeInsufficientBalance
	case errors.Is(err, ErrAccountBlocked):
		return CodeAccountBlocked
	case errors.Is(err, ErrDailyLimitExceeded):
		return CodeDailyLimitExceeded
	case errors.Is(err, ErrInvalidReward):
		return CodeInvalidReward
	case errors.Is(err, ErrAlreadyCredited):
		return CodeAlreadyCredited
	case errors.Is(err, ErrInvalidAccountID):
		return CodeInvalidAccountID
	case errors.Is(err, ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidDestination):
		return CodeInvalidDestination
	case errors.Is(err, ErrInvalidEventID):
		return CodeInvalidEventID
	case errors.Is(err, ErrWithdrawalAlreadyResolved):
		return CodeWithdrawalAlreadyResolved
	case errors.Is(err, ErrAccountNotFound):
		return CodeAccountNotFound
	case errors.Is(err, ErrWithdrawalNotFound):
		return CodeWithdrawalNotFound
	case errors.Is(err, ErrDatabaseConnection):
		return CodeStoreFailure
	default:
		return CodeInternalServer
	}
}

// InsufficientBalanceError provides detailed error information for insufficient balance
type InsufficientBalanceError struct {
	AccountID      uint64
	RequiredPoints int64
	CurrentPoints  int64
}

// Error implements the error interface
func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance for account %d: required %d points, available %d",
		e.AccountID, e.RequiredPoints, e.CurrentPoints)
}

// Is checks if the target error is an ErrInsufficientBalance
func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientBalanceError) LogFields() map[string]any {
	return map[string]any{
		"error_type":      "insufficient_balance",
		"account_id":      e.AccountID,
		"required_points": e.RequiredPoints,
		"current_points":  e.CurrentPoints,
		"error_code":      CodeInsufficientBalance,
	}
}

// NewInsufficientBalanceError creates a new detailed insufficient balance error
func NewInsufficientBalanceError(accountID uint64, required, current int64) error {
	return &InsufficientBalanceError{
		AccountID:      accountID,
		RequiredPoints: required,
		CurrentPoints:  current,
	}
}

// DuplicateEventError provides detailed information about a suppressed duplicate event
type DuplicateEventError struct {
	EventID   string
	AccountID uint64
	Outcome   string
}

// Error implements the error interface
func (e *DuplicateEventError) Error() string {
	return fmt.Sprintf("duplicate event suppressed: eventID=%s for account %d (prior outcome: %s)",
		e.EventID, e.AccountID, e.Outcome)
}

// Is checks if the target error is an ErrAlreadyCredited
func (e *DuplicateEventError) Is(target error) bool {
	return target == ErrAlreadyCredited
}

// LogFields returns a map of fields for structured logging
func (e *DuplicateEventError) LogFields() map[string]any {
	return map[string]any{
		"error_type":    "duplicate_event",
		"event_id":      e.EventID,
		"account_id":    e.AccountID,
		"prior_outcome": e.Outcome,
		"error_code":    CodeAlreadyCredited,
	}
}

// CreditError represents an error raised while processing a credit request
type CreditError struct {
	EventID   string
	AccountID uint64
	Kind      string
	Points    int64
	Reason    string
	Err       error
}

// Error implements the error interface for CreditError
func (e *CreditError) Error() string {
	return fmt.Sprintf("credit error for event %s (account: %d, kind: %s, points: %d): %s - %v",
		e.EventID, e.AccountID, e.Kind, e.Points, e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *CreditError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *CreditError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "credit_error",
		"event_id":   e.EventID,
		"account_id": e.AccountID,
		"kind":       e.Kind,
		"points":     e.Points,
		"reason":     e.Reason,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
}

// NewCreditError creates a detailed credit processing error
func NewCreditError(eventID string, accountID uint64, kind string, points int64, reason string, err error) error {
	return &CreditError{
		EventID:   eventID,
		AccountID: accountID,
		Kind:      kind,
		Points:    points,
		Reason:    reason,
		Err:       err,
	}
}

// IsAlreadyCreditedError checks if the error marks a suppressed duplicate event
func IsAlreadyCreditedError(err error) bool {
	return errors.Is(err, ErrAlreadyCredited)
}

// IsInsufficientBalanceError checks if the error is related to insufficient balance
func IsInsufficientBalanceError(err error) bool {
	return errors.Is(err, ErrInsufficientBalance)
}

// IsAccountBlockedError checks if the error is an account blocked error
func IsAccountBlockedError(err error) bool {
	return errors.Is(err, ErrAccountBlocked)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrWithdrawalNotFound) ||
		errors.Is(err, ErrEventNotFound)
}

// IsStoreError checks whether the error is an infrastructure failure that is
// safe to retry, as opposed to a business-rule rejection.
func IsStoreError(err error) bool {
	return errors.Is(err, ErrDatabaseConnection)
}
