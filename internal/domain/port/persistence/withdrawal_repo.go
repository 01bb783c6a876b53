package persistence

import (
	"context"

	"github.com/watchearn/rewards-ledger/internal/domain/entity"
)

// WithdrawalRepository stores withdrawal requests awaiting manual settlement
type WithdrawalRepository interface {
	// Create stores a new pending withdrawal request
	//
	// Possible errors:
	// - ErrDatabaseConnection: If the store is unreachable
	Create(ctx context.Context, request *entity.WithdrawalRequest) error

	// GetByID retrieves a withdrawal request
	//
	// Possible errors:
	// - ErrWithdrawalNotFound: If no request with the given ID exists
	// - ErrDatabaseConnection: If the store is unreachable
	GetByID(ctx context.Context, id string) (*entity.WithdrawalRequest, error)

	// Update persists a status transition
	//
	// Possible errors:
	// - ErrWithdrawalNotFound: If no request with the given ID exists
	// - ErrDatabaseConnection: If the store is unreachable
	Update(ctx context.Context, request *entity.WithdrawalRequest) error

	// ListByAccount returns the account's withdrawal requests, newest first
	//
	// Possible errors:
	// - ErrDatabaseConnection: If the store is unreachable
	ListByAccount(ctx context.Context, accountID uint64) ([]*entity.WithdrawalRequest, error)
}
