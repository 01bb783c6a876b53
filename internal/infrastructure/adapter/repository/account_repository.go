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
	"gorm.io/gorm/clause"
)

// AccountRepository implements persistence.AccountRepository using GORM
type AccountRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewAccountRepository creates a new AccountRepository instance
func NewAccountRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *AccountRepository {
	return &AccountRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// modelToEntity converts an account model to an entity
func (r *AccountRepository) modelToEntity(accountModel *model.Account) *entity.Account {
	return &entity.Account{
		ID:                   accountModel.ID,
		Points:               accountModel.Points,
		TotalEarned:          accountModel.TotalEarned,
		TotalWithdrawn:       accountModel.TotalWithdrawn,
		DailyWatchCount:      accountModel.DailyWatchCount,
		LastResetDate:        accountModel.LastResetDate,
		ReferralCode:         accountModel.ReferralCode,
		ReferredBy:           accountModel.ReferredBy,
		ReferralBonusAwarded: accountModel.ReferralBonusAwarded,
		Disabled:             accountModel.Disabled,
		Banned:               accountModel.Banned,
		CreatedAt:            accountModel.CreatedAt,
		UpdatedAt:            accountModel.UpdatedAt,
	}
}

// handleDatabaseError standardizes database error handling
func (r *AccountRepository) handleDatabaseError(operation string, err error, accountID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Warn("Account not found", map[string]any{
			"account_id": accountID,
		})
		return errs.ErrAccountNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"account_id": accountID,
		"error":      err.Error(),
	})

	if r.errorClassifier.IsDuplicateKeyError(err) {
		r.logger.Warn("Duplicate account operation", map[string]any{
			"account_id": accountID,
		})
		return errs.ErrDuplicateAccount
	}

	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// GetByID retrieves an account by ID
func (r *AccountRepository) GetByID(ctx context.Context, id uint64) (*entity.Account, error) {
	var accountModel model.Account
	result := r.db.WithContext(ctx).First(&accountModel, id)

	if result.Error != nil {
		return nil, r.handleDatabaseError("getting account", result.Error, id)
	}

	return r.modelToEntity(&accountModel), nil
}

// GetByIDForUpdate retrieves an account with an exclusive row lock. Must run
// inside a unit of work; the lock is released on commit or rollback.
func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*entity.Account, error) {
	r.logger.Debug("Locking account row", map[string]any{
		"account_id": id,
	})

	var accountModel model.Account
	result := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&accountModel, id)

	if result.Error != nil {
		return nil, r.handleDatabaseError("locking account", result.Error, id)
	}

	return r.modelToEntity(&accountModel), nil
}

// GetByReferralCode retrieves an account by its referral code
func (r *AccountRepository) GetByReferralCode(ctx context.Context, code string) (*entity.Account, error) {
	var accountModel model.Account
	result := r.db.WithContext(ctx).Where("referral_code = ?", code).First(&accountModel)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrAccountNotFound
		}
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return r.modelToEntity(&accountModel), nil
}

// Create creates a new account
func (r *AccountRepository) Create(ctx context.Context, account *entity.Account) error {
	r.logger.Debug("Creating new account", map[string]any{
		"account_id": account.ID,
	})

	accountModel := model.Account{
		ID:                   account.ID,
		Points:               account.Points,
		TotalEarned:          account.TotalEarned,
		TotalWithdrawn:       account.TotalWithdrawn,
		DailyWatchCount:      account.DailyWatchCount,
		LastResetDate:        account.LastResetDate,
		ReferralCode:         account.ReferralCode,
		ReferredBy:           account.ReferredBy,
		ReferralBonusAwarded: account.ReferralBonusAwarded,
		Disabled:             account.Disabled,
		Banned:               account.Banned,
		CreatedAt:            account.CreatedAt,
		UpdatedAt:            account.UpdatedAt,
	}

	result := r.db.WithContext(ctx).Create(&accountModel)

	if result.Error != nil {
		return r.handleDatabaseError("creating account", result.Error, account.ID)
	}

	r.logger.Info("Account created successfully", map[string]any{
		"account_id":    account.ID,
		"referral_code": account.ReferralCode,
	})
	return nil
}

// Update persists the account's balance, counters and flags
func (r *AccountRepository) Update(ctx context.Context, account *entity.Account) error {
	r.logger.Debug("Updating account", map[string]any{
		"account_id": account.ID,
		"points":     account.Points,
	})

	result := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ?", account.ID).
		Updates(map[string]interface{}{
			"points":                 account.Points,
			"total_earned":           account.TotalEarned,
			"total_withdrawn":        account.TotalWithdrawn,
			"daily_watch_count":      account.DailyWatchCount,
			"last_reset_date":        account.LastResetDate,
			"referral_bonus_awarded": account.ReferralBonusAwarded,
			"disabled":               account.Disabled,
			"banned":                 account.Banned,
			"updated_at":             account.UpdatedAt,
		})

	if result.Error != nil {
		return r.handleDatabaseError("updating account", result.Error, account.ID)
	}

	if result.RowsAffected == 0 {
		r.logger.Warn("Account not found during update", map[string]any{
			"account_id": account.ID,
		})
		return errs.ErrAccountNotFound
	}

	return nil
}
