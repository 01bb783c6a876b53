package usecase

import (
	"context"

	"github.com/watchearn/rewards-ledger/internal/domain/entity"
)

// CreditStatus distinguishes a fresh credit from an idempotent replay.
type CreditStatus string

// Credit statuses
const (
	StatusCredited        CreditStatus = "credited"
	StatusAlreadyCredited CreditStatus = "already_credited"
)

// CreditResult describes the outcome of a credit request. AlreadyCredited is
// an idempotent success: the prior outcome stands and the balance is unchanged.
type CreditResult struct {
	Status       CreditStatus
	EventID      string
	Points       int64
	Balance      int64
	PriorOutcome entity.EventOutcome // set when Status is AlreadyCredited
}

// WithdrawalResult describes an accepted withdrawal request and the balance
// left after the debit.
type WithdrawalResult struct {
	Request *entity.WithdrawalRequest
	Balance int64
}

// LedgerUseCase defines the mutation operations exposed to external
// collaborators. Business-rule violations come back as typed errors, never
// panics; duplicate events come back as AlreadyCredited results.
type LedgerUseCase interface {
	// CreditAdWatch credits one completed timed ad view. The playback
	// collaborator calls this only after observing the minimum continuous
	// watch duration; the ledger trusts the call but deduplicates it.
	CreditAdWatch(ctx context.Context, accountID uint64, eventID string) (*CreditResult, error)

	// CreditOfferTask credits one completed third-party offer. The reward is
	// taken from the untrusted completion payload, defaulted when omitted and
	// clamped to the configured maximum.
	CreditOfferTask(ctx context.Context, accountID uint64, eventID string, rewardPoints int64) (*CreditResult, error)

	// RejectOfferTask records an incomplete offer signal under its event
	// identity with a rejected outcome; replays of the same event then return
	// that outcome instead of crediting. A signal without an event id is
	// acknowledged without recording anything.
	RejectOfferTask(ctx context.Context, accountID uint64, eventID string) error

	// RequestWithdrawal debits points and records a pending settlement request.
	RequestWithdrawal(ctx context.Context, accountID uint64, amountCurrency int64, payoutDestination string) (*WithdrawalResult, error)

	// ResolveWithdrawal applies an administrative approval or rejection. A
	// rejection issues the compensating credit through the generic credit path.
	ResolveWithdrawal(ctx context.Context, requestID string, approve bool) (*entity.WithdrawalRequest, error)
}

// AccountUseCase defines account lifecycle and query operations.
type AccountUseCase interface {
	// CreateAccount creates an account; an optional referrer code links it to
	// the referring account.
	CreateAccount(ctx context.Context, id uint64, referrerCode string) (*entity.Account, error)

	// GetAccount retrieves an account's balance and counters.
	GetAccount(ctx context.Context, id uint64) (*entity.Account, error)

	// ListTransactions returns the account's ledger history, newest first.
	ListTransactions(ctx context.Context, accountID uint64, limit int) ([]*entity.Transaction, error)

	// ListWithdrawals returns the account's withdrawal requests, newest first.
	ListWithdrawals(ctx context.Context, accountID uint64) ([]*entity.WithdrawalRequest, error)
}
