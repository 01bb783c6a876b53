package persistence

import (
	"context"
)

// UnitOfWork coordinates repository operations inside one store transaction so
// that balance changes, transaction records and event identities commit or
// roll back as a single indivisible unit.
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	// GetAccountRepository returns an account repository bound to the current transaction
	GetAccountRepository(ctx context.Context) AccountRepository

	// GetTransactionRepository returns a transaction repository bound to the current transaction
	GetTransactionRepository(ctx context.Context) TransactionRepository

	// GetWithdrawalRepository returns a withdrawal repository bound to the current transaction
	GetWithdrawalRepository(ctx context.Context) WithdrawalRepository

	// GetEventIdentityRepository returns an event identity repository bound to the current transaction
	GetEventIdentityRepository(ctx context.Context) EventIdentityRepository
}
