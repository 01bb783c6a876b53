package ledger

import (
	"context"
	"sync"

	errs "github.com/watchearn/rewards-ledger/internal/domain/error"
	coreport "github.com/watchearn/rewards-ledger/internal/domain/port/core"
)

// AccountSerializer runs ledger mutations for one account strictly in order
// while different accounts proceed fully in parallel. Each account gets its
// own queue and worker goroutine on first use; the store's row locks remain
// the ultimate guard, this keeps contention out of the database.
type AccountSerializer struct {
	logger coreport.Logger

	// Per-account operation queues for strict ordering
	queues         sync.Map // map[uint64]chan *accountOp
	queueWaitGroup sync.WaitGroup
}

// accountOp represents a queued ledger mutation
type accountOp struct {
	ctx        context.Context
	run        func(context.Context) error
	resultChan chan error
}

// NewAccountSerializer creates a new account serializer
func NewAccountSerializer(logger coreport.Logger) *AccountSerializer {
	return &AccountSerializer{
		logger: logger,
		queues: sync.Map{},
	}
}

// Execute enqueues run on the account's queue and waits for it to finish.
// Mutations for the same account never interleave; a canceled context before
// the operation starts means it never runs.
func (s *AccountSerializer) Execute(ctx context.Context, accountID uint64, run func(context.Context) error) error {
	resultChan := make(chan error, 1)

	// Get or create queue for this account
	var queue chan *accountOp
	queueIface, loaded := s.queues.LoadOrStore(accountID, make(chan *accountOp, 100))
	if queueCh, ok := queueIface.(chan *accountOp); ok {
		queue = queueCh
	} else {
		s.logger.Error("Failed to type assert queue channel", nil)
		return errs.ErrInternalServer
	}

	// Start worker if this is a new queue
	if !loaded {
		s.logger.Debug("Starting mutation queue worker for account", map[string]any{
			"account_id": accountID,
		})
		s.queueWaitGroup.Add(1)
		go s.processAccountOps(accountID, queue)
	}

	op := &accountOp{
		ctx:        ctx,
		run:        run,
		resultChan: resultChan,
	}

	select {
	case queue <- op:
	case <-ctx.Done():
		s.logger.Warn("Context canceled while enqueueing ledger mutation", map[string]any{
			"account_id": accountID,
			"error":      ctx.Err().Error(),
		})
		return ctx.Err()
	}

	// Wait for result. A caller that abandons the wait leaves the operation
	// to run with its own (canceled) context, which aborts before commit.
	select {
	case err := <-resultChan:
		return err
	case <-ctx.Done():
		s.logger.Warn("Context canceled while waiting for ledger mutation", map[string]any{
			"account_id": accountID,
			"error":      ctx.Err().Error(),
		})
		return ctx.Err()
	}
}

// processAccountOps is the worker goroutine draining one account's queue
func (s *AccountSerializer) processAccountOps(accountID uint64, queue chan *accountOp) {
	defer s.queueWaitGroup.Done()

	for op := range queue {
		if err := op.ctx.Err(); err != nil {
			op.resultChan <- err
			close(op.resultChan)
			continue
		}

		op.resultChan <- op.run(op.ctx)
		close(op.resultChan)
	}

	s.logger.Debug("Mutation queue worker stopped", map[string]any{
		"account_id": accountID,
	})
}

// Shutdown stops all worker goroutines cleanly
func (s *AccountSerializer) Shutdown() {
	s.logger.Info("Shutting down account serializer", nil)

	s.queues.Range(func(accountID, queueIface interface{}) bool {
		if queue, ok := queueIface.(chan *accountOp); ok {
			close(queue)
		}
		return true
	})

	s.queueWaitGroup.Wait()
	s.logger.Info("Account serializer shut down", nil)
}
