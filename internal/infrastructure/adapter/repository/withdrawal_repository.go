package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/watchearn/rewards-ledger/internal/domain/entity"
	errs "github.com/watchearn/rewards-ledger/internal/domain/error"
	coreport "github.com/watchearn/rewards-ledger/internal/domain/port/core"
	"github.com/watchearn/rewards-ledger/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// WithdrawalRepository implements persistence.WithdrawalRepository using GORM
type WithdrawalRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewWithdrawalRepository creates a new WithdrawalRepository instance
func NewWithdrawalRepository(db *gorm.DB, logger coreport.Logger) *WithdrawalRepository {
	return &WithdrawalRepository{
		db:     db,
		logger: logger,
	}
}

// modelToEntity converts a withdrawal model to an entity
func (r *WithdrawalRepository) modelToEntity(reqModel *model.WithdrawalRequest) *entity.WithdrawalRequest {
	return &entity.WithdrawalRequest{
		ID:                reqModel.ID,
		AccountID:         reqModel.AccountID,
		AmountCurrency:    reqModel.AmountCurrency,
		PointsDebited:     reqModel.PointsDebited,
		PayoutDestination: reqModel.PayoutDestination,
		Status:            entity.WithdrawalStatus(reqModel.Status),
		CreatedAt:         reqModel.CreatedAt,
		ResolvedAt:        reqModel.ResolvedAt,
	}
}

// Create stores a new pending withdrawal request
func (r *WithdrawalRepository) Create(ctx context.Context, request *entity.WithdrawalRequest) error {
	reqModel := model.WithdrawalRequest{
		ID:                request.ID,
		AccountID:         request.AccountID,
		AmountCurrency:    request.AmountCurrency,
		PointsDebited:     request.PointsDebited,
		PayoutDestination: request.PayoutDestination,
		Status:            string(request.Status),
		CreatedAt:         request.CreatedAt,
		ResolvedAt:        request.ResolvedAt,
	}

	result := r.db.WithContext(ctx).Create(&reqModel)
	if result.Error != nil {
		r.logger.Error("Failed to create withdrawal request", map[string]any{
			"request_id": request.ID,
			"account_id": request.AccountID,
			"error":      result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return nil
}

// GetByID retrieves a withdrawal request
func (r *WithdrawalRepository) GetByID(ctx context.Context, id string) (*entity.WithdrawalRequest, error) {
	var reqModel model.WithdrawalRequest
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&reqModel)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrWithdrawalNotFound
		}
		r.logger.Error("Failed to get withdrawal request", map[string]any{
			"request_id": id,
			"error":      result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return r.modelToEntity(&reqModel), nil
}

// Update persists a status transition
func (r *WithdrawalRepository) Update(ctx context.Context, request *entity.WithdrawalRequest) error {
	result := r.db.WithContext(ctx).Model(&model.WithdrawalRequest{}).
		Where("id = ?", request.ID).
		Updates(map[string]interface{}{
			"status":      string(request.Status),
			"resolved_at": request.ResolvedAt,
		})

	if result.Error != nil {
		r.logger.Error("Failed to update withdrawal request", map[string]any{
			"request_id": request.ID,
			"error":      result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	if result.RowsAffected == 0 {
		return errs.ErrWithdrawalNotFound
	}

	return nil
}

// ListByAccount returns the account's withdrawal requests, newest first
func (r *WithdrawalRepository) ListByAccount(ctx context.Context, accountID uint64) ([]*entity.WithdrawalRequest, error) {
	var reqModels []model.WithdrawalRequest
	result := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&reqModels)

	if result.Error != nil {
		r.logger.Error("Failed to list withdrawal requests", map[string]any{
			"account_id": accountID,
			"error":      result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	requests := make([]*entity.WithdrawalRequest, 0, len(reqModels))
	for i := range reqModels {
		requests = append(requests, r.modelToEntity(&reqModels[i]))
	}
	return requests, nil
}
