package persistence

import (
	"context"

	"github.com/watchearn/rewards-ledger/internal/domain/entity"
)

// TransactionRepository stores the append-only ledger transaction records
type TransactionRepository interface {
	// Create appends a new transaction record. Records are never updated or
	// deleted by the ledger core.
	//
	// Possible errors:
	// - ErrDatabaseConnection: If the store is unreachable
	Create(ctx context.Context, transaction *entity.Transaction) error

	// ListByAccount returns the account's transactions, newest first,
	// bounded by limit (limit <= 0 means the repository default).
	//
	// Possible errors:
	// - ErrDatabaseConnection: If the store is unreachable
	ListByAccount(ctx context.Context, accountID uint64, limit int) ([]*entity.Transaction, error)
}
