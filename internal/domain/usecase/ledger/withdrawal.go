package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/watchearn/rewards-ledger/internal/domain/entity"
	errs "github.com/watchearn/rewards-ledger/internal/domain/error"
	"github.com/watchearn/rewards-ledger/internal/domain/port/persistence"
	"github.com/watchearn/rewards-ledger/internal/domain/port/usecase"
)

// RequestWithdrawal validates and applies a withdrawal: the points are debited
// immediately and a pending settlement record is created in the same atomic
// unit. Settlement itself is manual and external.
func (s *Service) RequestWithdrawal(
	ctx context.Context,
	accountID uint64,
	amountCurrency int64,
	payoutDestination string,
) (*usecase.WithdrawalResult, error) {
	if accountID == 0 {
		return nil, errs.ErrInvalidAccountID
	}
	if amountCurrency < s.rules.MinWithdrawalAmount {
		return nil, fmt.Errorf("%w: minimum withdrawal is %d", errs.ErrInvalidAmount, s.rules.MinWithdrawalAmount)
	}
	if strings.TrimSpace(payoutDestination) == "" {
		return nil, errs.ErrInvalidDestination
	}

	requiredPoints := s.rules.RequiredPoints(amountCurrency)

	var result *usecase.WithdrawalResult
	err := s.serializer.Execute(ctx, accountID, func(opCtx context.Context) error {
		txCtx, err := s.uow.Begin(opCtx)
		if err != nil {
			return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
		}

		accounts := s.uow.GetAccountRepository(txCtx)
		transactions := s.uow.GetTransactionRepository(txCtx)
		withdrawals := s.uow.GetWithdrawalRepository(txCtx)

		acct, err := accounts.GetByIDForUpdate(txCtx, accountID)
		if err != nil {
			s.rollback(txCtx)
			return err
		}
		if acct.IsBlocked() {
			s.rollback(txCtx)
			return errs.ErrAccountBlocked
		}
		if acct.Points < requiredPoints {
			s.rollback(txCtx)
			return errs.NewInsufficientBalanceError(accountID, requiredPoints, acct.Points)
		}

		if err := acct.Debit(requiredPoints, s.timeProvider); err != nil {
			s.rollback(txCtx)
			return err
		}

		request, err := entity.NewWithdrawalRequest(accountID, amountCurrency, requiredPoints, payoutDestination, s.timeProvider)
		if err != nil {
			s.rollback(txCtx)
			return err
		}
		if err := withdrawals.Create(txCtx, request); err != nil {
			s.rollback(txCtx)
			return err
		}

		txn, err := entity.NewDebitTransaction(accountID, requiredPoints, acct.Points, s.timeProvider)
		if err != nil {
			s.rollback(txCtx)
			return err
		}
		if err := transactions.Create(txCtx, txn); err != nil {
			s.rollback(txCtx)
			return err
		}

		if err := accounts.Update(txCtx, acct); err != nil {
			s.rollback(txCtx)
			return err
		}

		if err := s.uow.Commit(txCtx); err != nil {
			s.rollback(txCtx)
			return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
		}

		s.metrics.WithdrawalRequested(amountCurrency)
		s.logger.Info("Withdrawal requested", map[string]any{
			"account_id":      accountID,
			"request_id":      request.ID,
			"amount_currency": amountCurrency,
			"points_debited":  requiredPoints,
			"balance":         acct.Points,
		})

		result = &usecase.WithdrawalResult{Request: request, Balance: acct.Points}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ResolveWithdrawal applies the administrative decision on a pending request.
// Approval only stamps the record; rejection additionally reverses the debit
// with a compensating credit in the same atomic unit, so the request can
// never end up rejected with the points still gone.
func (s *Service) ResolveWithdrawal(ctx context.Context, requestID string, approve bool) (*entity.WithdrawalRequest, error) {
	if requestID == "" {
		return nil, errs.ErrWithdrawalNotFound
	}

	// Resolve the owning account first so the mutation serializes with the
	// account's other ledger traffic.
	pending, err := s.uow.GetWithdrawalRepository(ctx).GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	var resolved *entity.WithdrawalRequest
	err = s.serializer.Execute(ctx, pending.AccountID, func(opCtx context.Context) error {
		txCtx, err := s.uow.Begin(opCtx)
		if err != nil {
			return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
		}

		accounts := s.uow.GetAccountRepository(txCtx)
		transactions := s.uow.GetTransactionRepository(txCtx)
		withdrawals := s.uow.GetWithdrawalRepository(txCtx)
		events := s.uow.GetEventIdentityRepository(txCtx)

		request, err := withdrawals.GetByID(txCtx, requestID)
		if err != nil {
			s.rollback(txCtx)
			return err
		}

		if approve {
			err = request.Approve(s.timeProvider)
		} else {
			err = request.Reject(s.timeProvider)
		}
		if err != nil {
			s.rollback(txCtx)
			return err
		}
		if err := withdrawals.Update(txCtx, request); err != nil {
			s.rollback(txCtx)
			return err
		}

		if !approve {
			if err := s.reverseWithdrawal(txCtx, accounts, transactions, events, request); err != nil {
				s.rollback(txCtx)
				return err
			}
		}

		if err := s.uow.Commit(txCtx); err != nil {
			s.rollback(txCtx)
			return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
		}

		s.metrics.WithdrawalResolved(string(request.Status))
		s.logger.Info("Withdrawal resolved", map[string]any{
			"request_id": request.ID,
			"account_id": request.AccountID,
			"status":     string(request.Status),
		})

		resolved = request
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resolved, nil
}

// reverseWithdrawal issues the compensating credit for a rejected request,
// gated by its own event identity so a replayed rejection cannot pay twice.
// Runs inside the resolution's unit of work.
func (s *Service) reverseWithdrawal(
	txCtx context.Context,
	accounts persistence.AccountRepository,
	transactions persistence.TransactionRepository,
	events persistence.EventIdentityRepository,
	request *entity.WithdrawalRequest,
) error {
	acct, err := accounts.GetByIDForUpdate(txCtx, request.AccountID)
	if err != nil {
		return err
	}

	eventID := WithdrawalReversalEventID(request.ID)
	admission, err := s.guard.Admit(txCtx, events, eventID, acct.ID, entity.OutcomeAccepted)
	if err != nil {
		return err
	}
	if !admission.FirstAdmission {
		s.metrics.DuplicateSuppressed(string(entity.TypeWithdrawalReversal))
		return nil
	}

	if err := acct.Credit(request.PointsDebited, s.timeProvider); err != nil {
		return err
	}

	txn, err := entity.NewCreditTransaction(
		acct.ID,
		entity.TypeWithdrawalReversal,
		request.PointsDebited,
		acct.Points,
		eventID,
		s.timeProvider,
	)
	if err != nil {
		return err
	}
	if err := transactions.Create(txCtx, txn); err != nil {
		return err
	}
	if err := accounts.Update(txCtx, acct); err != nil {
		return err
	}

	s.metrics.CreditApplied(string(entity.TypeWithdrawalReversal), request.PointsDebited)
	return nil
}
