package ledger

import (
	"context"
	"errors"
	"strings"

	"github.com/watchearn/rewards-ledger/internal/domain/entity"
	errs "github.com/watchearn/rewards-ledger/internal/domain/error"
)

// CreateAccount creates an account with a fresh referral code. A referrer
// code, when given, links the account to its referrer; an unknown code is
// logged and ignored rather than failing signup.
func (s *Service) CreateAccount(ctx context.Context, id uint64, referrerCode string) (*entity.Account, error) {
	if id == 0 {
		return nil, errs.ErrInvalidAccountID
	}

	accounts := s.uow.GetAccountRepository(ctx)

	acct, err := entity.NewAccount(id, s.days.RewardDay(s.timeProvider.Now()), s.timeProvider)
	if err != nil {
		return nil, err
	}

	if code := strings.TrimSpace(referrerCode); code != "" {
		referrer, err := accounts.GetByReferralCode(ctx, code)
		switch {
		case err == nil && referrer.ID != id:
			acct.ReferredBy = &referrer.ID
		case errors.Is(err, errs.ErrAccountNotFound):
			s.logger.Warn("Unknown referrer code ignored", map[string]any{
				"account_id":    id,
				"referrer_code": code,
			})
		case err != nil:
			return nil, err
		}
	}

	if err := accounts.Create(ctx, acct); err != nil {
		return nil, err
	}

	s.logger.Info("Account created", map[string]any{
		"account_id":    acct.ID,
		"referral_code": acct.ReferralCode,
		"referred_by":   acct.ReferredBy,
	})
	return acct, nil
}

// GetAccount retrieves an account's balance and counters.
func (s *Service) GetAccount(ctx context.Context, id uint64) (*entity.Account, error) {
	if id == 0 {
		return nil, errs.ErrInvalidAccountID
	}
	return s.uow.GetAccountRepository(ctx).GetByID(ctx, id)
}

// ListTransactions returns the account's ledger history, newest first.
func (s *Service) ListTransactions(ctx context.Context, accountID uint64, limit int) ([]*entity.Transaction, error) {
	if accountID == 0 {
		return nil, errs.ErrInvalidAccountID
	}
	if _, err := s.uow.GetAccountRepository(ctx).GetByID(ctx, accountID); err != nil {
		return nil, err
	}
	return s.uow.GetTransactionRepository(ctx).ListByAccount(ctx, accountID, limit)
}

// ListWithdrawals returns the account's withdrawal requests, newest first.
func (s *Service) ListWithdrawals(ctx context.Context, accountID uint64) ([]*entity.WithdrawalRequest, error) {
	if accountID == 0 {
		return nil, errs.ErrInvalidAccountID
	}
	if _, err := s.uow.GetAccountRepository(ctx).GetByID(ctx, accountID); err != nil {
		return nil, err
	}
	return s.uow.GetWithdrawalRepository(ctx).ListByAccount(ctx, accountID)
}
