package persistence

import (
	"context"

	"github.com/watchearn/rewards-ledger/internal/domain/entity"
)

// AccountRepository defines essential methods to interact with account data
type AccountRepository interface {
	// GetByID retrieves an account by ID
	//
	// Possible errors:
	// - ErrAccountNotFound: If account with specified ID doesn't exist
	// - ErrDatabaseConnection: If the store is unreachable
	GetByID(ctx context.Context, id uint64) (*entity.Account, error)

	// GetByIDForUpdate retrieves an account and takes an exclusive row lock.
	// Only valid inside a unit of work; the lock is held until commit or
	// rollback, serializing all mutations on this account.
	//
	// Possible errors:
	// - ErrAccountNotFound: If account with specified ID doesn't exist
	// - ErrDatabaseConnection: If the store is unreachable
	GetByIDForUpdate(ctx context.Context, id uint64) (*entity.Account, error)

	// GetByReferralCode retrieves an account by its unique referral code
	//
	// Possible errors:
	// - ErrAccountNotFound: If no account carries the code
	// - ErrDatabaseConnection: If the store is unreachable
	GetByReferralCode(ctx context.Context, code string) (*entity.Account, error)

	// Create creates a new account
	//
	// Possible errors:
	// - ErrDuplicateAccount: If an account with the same ID already exists
	// - ErrDatabaseConnection: If the store is unreachable
	Create(ctx context.Context, account *entity.Account) error

	// Update persists the account's balance, counters and flags
	//
	// Possible errors:
	// - ErrAccountNotFound: If the account doesn't exist
	// - ErrDatabaseConnection: If the store is unreachable
	Update(ctx context.Context, account *entity.Account) error
}
