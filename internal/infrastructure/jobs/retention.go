package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	coreport "github.com/watchearn/rewards-ledger/internal/domain/port/core"
	"github.com/watchearn/rewards-ledger/internal/domain/port/persistence"
)

// RetentionSweeper periodically prunes event identity records past the
// retention window. Event ids from ad networks and offer walls are unique per
// completion, so replay risk beyond the window is negligible.
type RetentionSweeper struct {
	events        persistence.EventIdentityRepository
	timeProvider  coreport.TimeProvider
	logger        coreport.Logger
	retentionDays int
	interval      time.Duration
	scheduler     gocron.Scheduler
}

// NewRetentionSweeper creates a sweeper for the given retention window
func NewRetentionSweeper(
	events persistence.EventIdentityRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	retentionDays int,
	interval time.Duration,
) *RetentionSweeper {
	return &RetentionSweeper{
		events:        events,
		timeProvider:  timeProvider,
		logger:        logger,
		retentionDays: retentionDays,
		interval:      interval,
	}
}

// Start schedules the periodic sweep
func (s *RetentionSweeper) Start() error {
	if s.retentionDays <= 0 || s.interval <= 0 {
		s.logger.Info("Event retention sweep disabled", map[string]any{
			"retention_days": s.retentionDays,
		})
		return nil
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create retention scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(s.Sweep),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule retention sweep: %w", err)
	}

	scheduler.Start()
	s.scheduler = scheduler

	s.logger.Info("Event retention sweep scheduled", map[string]any{
		"retention_days": s.retentionDays,
		"interval":       s.interval.String(),
	})
	return nil
}

// Sweep prunes one batch of expired event identities
func (s *RetentionSweeper) Sweep() {
	ctx, cancel := s.timeProvider.WithTimeout(context.Background(), coreport.Duration(time.Minute))
	defer cancel()

	cutoff := s.timeProvider.Now().AddDate(0, 0, -s.retentionDays)

	removed, err := s.events.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		s.logger.Error("Event retention sweep failed", map[string]any{
			"cutoff": cutoff,
			"error":  err.Error(),
		})
		return
	}

	if removed > 0 {
		s.logger.Info("Pruned expired event identities", map[string]any{
			"removed": removed,
			"cutoff":  cutoff,
		})
	}
}

// Stop shuts the scheduler down
func (s *RetentionSweeper) Stop() error {
	if s.scheduler == nil {
		return nil
	}
	return s.scheduler.Shutdown()
}
