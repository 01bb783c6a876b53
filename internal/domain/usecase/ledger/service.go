package ledger

import (
	"context"
	"fmt"

	"github.com/watchearn/rewards-ledger/internal/domain/entity"
	errs "github.com/watchearn/rewards-ledger/internal/domain/error"
	coreport "github.com/watchearn/rewards-ledger/internal/domain/port/core"
	"github.com/watchearn/rewards-ledger/internal/domain/port/persistence"
	"github.com/watchearn/rewards-ledger/internal/domain/port/usecase"
	"github.com/watchearn/rewards-ledger/internal/domain/usecase/rewardday"
)

// Service is the crediting engine: it orchestrates quota checks, idempotent
// admission, atomic balance mutation and transaction append for every path
// that touches an account's points.
type Service struct {
	uow        persistence.UnitOfWork
	serializer *AccountSerializer
	guard      *IdempotencyGuard
	referrals  *ReferralProcessor
	days       *rewardday.Resolver

	rules        Rules
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
	metrics      coreport.Metrics
}

// NewService creates the ledger service and its components.
func NewService(
	uow persistence.UnitOfWork,
	days *rewardday.Resolver,
	rules Rules,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	metrics coreport.Metrics,
) *Service {
	guard := NewIdempotencyGuard(timeProvider, logger)

	return &Service{
		uow:          uow,
		serializer:   NewAccountSerializer(logger),
		guard:        guard,
		referrals:    NewReferralProcessor(rules, guard, timeProvider, logger, metrics),
		days:         days,
		rules:        rules,
		timeProvider: timeProvider,
		logger:       logger,
		metrics:      metrics,
	}
}

// CreditAdWatch credits one completed timed ad view. The playback collaborator
// guarantees the minimum continuous watch duration before calling; the ledger
// deduplicates and enforces the daily quota.
func (s *Service) CreditAdWatch(ctx context.Context, accountID uint64, eventID string) (*usecase.CreditResult, error) {
	result, err := s.creditOnce(ctx, accountID, eventID, entity.TypeAdWatch, s.rules.AdWatchPoints)
	if err != nil {
		s.logger.Warn("Ad-watch credit rejected", map[string]any{
			"account_id": accountID,
			"event_id":   eventID,
			"error":      err.Error(),
		})
		return nil, err
	}
	return result, nil
}

// CreditOfferTask credits one completed third-party offer. The reward comes
// from the untrusted completion signal: omitted rewards get the configured
// default, oversized ones are clamped.
func (s *Service) CreditOfferTask(ctx context.Context, accountID uint64, eventID string, rewardPoints int64) (*usecase.CreditResult, error) {
	points, err := s.rules.NormalizeOfferReward(rewardPoints)
	if err != nil {
		return nil, errs.NewCreditError(eventID, accountID, string(entity.TypeOfferTask), rewardPoints, "unusable reward amount", err)
	}

	result, err := s.creditOnce(ctx, accountID, eventID, entity.TypeOfferTask, points)
	if err != nil {
		s.logger.Warn("Offer credit rejected", map[string]any{
			"account_id": accountID,
			"event_id":   eventID,
			"points":     points,
			"error":      err.Error(),
		})
		return nil, err
	}
	return result, nil
}

// RejectOfferTask records an incomplete offer signal's identity with a
// rejected outcome, so replays of the same event return the original outcome
// instead of crediting. Signals without a provider id are a no-op here: a
// synthesized identity for a rejection could collide with a later genuine
// completion and suppress it.
func (s *Service) RejectOfferTask(ctx context.Context, accountID uint64, eventID string) error {
	if accountID == 0 {
		return errs.ErrInvalidAccountID
	}
	if eventID == "" {
		return nil
	}

	return s.serializer.Execute(ctx, accountID, func(opCtx context.Context) error {
		txCtx, err := s.uow.Begin(opCtx)
		if err != nil {
			return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
		}

		accounts := s.uow.GetAccountRepository(txCtx)
		events := s.uow.GetEventIdentityRepository(txCtx)

		acct, err := accounts.GetByIDForUpdate(txCtx, accountID)
		if err != nil {
			s.rollback(txCtx)
			return err
		}
		if acct.IsBlocked() {
			s.rollback(txCtx)
			return errs.ErrAccountBlocked
		}

		admission, err := s.guard.Admit(txCtx, events, eventID, accountID, entity.OutcomeRejected)
		if err != nil {
			s.rollback(txCtx)
			return err
		}
		if !admission.FirstAdmission {
			// The original outcome stands, whatever it was.
			s.rollback(txCtx)
			return nil
		}

		if err := s.uow.Commit(txCtx); err != nil {
			s.rollback(txCtx)
			return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
		}

		s.logger.Info("Incomplete offer signal recorded", map[string]any{
			"account_id": accountID,
			"event_id":   eventID,
		})
		return nil
	})
}

// creditOnce runs one credit as a single atomic unit against the store:
// row lock, lazy daily reset, quota, idempotent admission, balance change,
// transaction append and referral follow-up all commit together or not at all.
func (s *Service) creditOnce(
	ctx context.Context,
	accountID uint64,
	eventID string,
	txType entity.TransactionType,
	points int64,
) (*usecase.CreditResult, error) {
	if accountID == 0 {
		return nil, errs.ErrInvalidAccountID
	}

	var result *usecase.CreditResult
	err := s.serializer.Execute(ctx, accountID, func(opCtx context.Context) error {
		txCtx, err := s.uow.Begin(opCtx)
		if err != nil {
			return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
		}

		accounts := s.uow.GetAccountRepository(txCtx)
		transactions := s.uow.GetTransactionRepository(txCtx)
		events := s.uow.GetEventIdentityRepository(txCtx)

		acct, err := accounts.GetByIDForUpdate(txCtx, accountID)
		if err != nil {
			s.rollback(txCtx)
			return err
		}
		if acct.IsBlocked() {
			s.rollback(txCtx)
			return errs.ErrAccountBlocked
		}

		now := s.timeProvider.Now()
		day := s.days.RewardDay(now)
		if s.days.NeedsReset(acct.LastResetDate, now) {
			acct.ApplyDailyReset(day, s.timeProvider)
		}

		// Quota check runs before admission so a limited event id stays
		// unconsumed and the same retry can succeed after the day rolls over.
		if txType == entity.TypeAdWatch && acct.DailyWatchCount >= s.rules.DailyWatchLimit {
			s.rollback(txCtx)
			s.metrics.QuotaRejected()
			return errs.ErrDailyLimitExceeded
		}

		if eventID == "" {
			switch txType {
			case entity.TypeAdWatch:
				eventID = AdWatchEventID(accountID, day, acct.DailyWatchCount)
			case entity.TypeOfferTask:
				eventID = OfferEventID(accountID, day, points)
			default:
				s.rollback(txCtx)
				return errs.ErrInvalidEventID
			}
		}

		admission, err := s.guard.Admit(txCtx, events, eventID, accountID, entity.OutcomeAccepted)
		if err != nil {
			s.rollback(txCtx)
			return err
		}
		if !admission.FirstAdmission {
			s.rollback(txCtx)
			s.metrics.DuplicateSuppressed(string(txType))
			result = &usecase.CreditResult{
				Status:       usecase.StatusAlreadyCredited,
				EventID:      eventID,
				Balance:      acct.Points,
				PriorOutcome: admission.Prior.Outcome,
			}
			return nil
		}

		earnedBefore := acct.TotalEarned
		if err := acct.Credit(points, s.timeProvider); err != nil {
			s.rollback(txCtx)
			return err
		}
		if txType == entity.TypeAdWatch {
			acct.RecordAdWatch(s.timeProvider)
		}

		txn, err := entity.NewCreditTransaction(accountID, txType, points, acct.Points, eventID, s.timeProvider)
		if err != nil {
			s.rollback(txCtx)
			return err
		}
		if err := transactions.Create(txCtx, txn); err != nil {
			s.rollback(txCtx)
			return err
		}

		// Only genuine earnings count toward the referral threshold.
		if txType == entity.TypeAdWatch || txType == entity.TypeOfferTask {
			if err := s.referrals.MaybeAward(txCtx, accounts, transactions, events, acct, earnedBefore); err != nil {
				s.rollback(txCtx)
				return err
			}
		}

		if err := accounts.Update(txCtx, acct); err != nil {
			s.rollback(txCtx)
			return err
		}

		if err := s.uow.Commit(txCtx); err != nil {
			s.rollback(txCtx)
			return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
		}

		s.metrics.CreditApplied(string(txType), points)
		s.logger.Info("Credit applied", map[string]any{
			"account_id": accountID,
			"event_id":   eventID,
			"type":       string(txType),
			"points":     points,
			"balance":    acct.Points,
		})

		result = &usecase.CreditResult{
			Status:  usecase.StatusCredited,
			EventID: eventID,
			Points:  points,
			Balance: acct.Points,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// rollback discards the unit of work, logging but not propagating failures:
// by the time rollback runs the operation's error is already decided.
func (s *Service) rollback(txCtx context.Context) {
	if err := s.uow.Rollback(txCtx); err != nil {
		s.logger.Error("Failed to roll back unit of work", map[string]any{
			"error": err.Error(),
		})
	}
}

// Shutdown drains the per-account queues.
func (s *Service) Shutdown() {
	s.serializer.Shutdown()
}
