package repository

import (
	"context"
	"fmt"

	"github.com/watchearn/rewards-ledger/internal/domain/entity"
	errs "github.com/watchearn/rewards-ledger/internal/domain/error"
	coreport "github.com/watchearn/rewards-ledger/internal/domain/port/core"
	"github.com/watchearn/rewards-ledger/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// defaultHistoryLimit bounds ledger history reads when the caller gives no limit
const defaultHistoryLimit = 50

// TransactionRepository implements persistence.TransactionRepository using GORM
type TransactionRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

// modelToEntity converts a transaction model to an entity
func (r *TransactionRepository) modelToEntity(txModel *model.Transaction) *entity.Transaction {
	return &entity.Transaction{
		ID:            txModel.ID,
		AccountID:     txModel.AccountID,
		Type:          entity.TransactionType(txModel.Type),
		Points:        txModel.Points,
		BalanceAfter:  txModel.BalanceAfter,
		SourceEventID: txModel.SourceEventID,
		CreatedAt:     txModel.CreatedAt,
	}
}

// Create appends a new ledger record
func (r *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	txModel := model.Transaction{
		AccountID:     transaction.AccountID,
		Type:          string(transaction.Type),
		Points:        transaction.Points,
		BalanceAfter:  transaction.BalanceAfter,
		SourceEventID: transaction.SourceEventID,
		CreatedAt:     transaction.CreatedAt,
	}

	result := r.db.WithContext(ctx).Create(&txModel)
	if result.Error != nil {
		r.logger.Error("Failed to create transaction record", map[string]any{
			"account_id": transaction.AccountID,
			"type":       string(transaction.Type),
			"error":      result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	transaction.ID = txModel.ID
	return nil
}

// ListByAccount returns the account's transactions, newest first
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID uint64, limit int) ([]*entity.Transaction, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	var txModels []model.Transaction
	result := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&txModels)

	if result.Error != nil {
		r.logger.Error("Failed to list transactions", map[string]any{
			"account_id": accountID,
			"error":      result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	transactions := make([]*entity.Transaction, 0, len(txModels))
	for i := range txModels {
		transactions = append(transactions, r.modelToEntity(&txModels[i]))
	}
	return transactions, nil
}
