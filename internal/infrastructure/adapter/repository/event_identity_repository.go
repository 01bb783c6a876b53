package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/watchearn/rewards-ledger/internal/domain/entity"
	errs "github.com/watchearn/rewards-ledger/internal/domain/error"
	coreport "github.com/watchearn/rewards-ledger/internal/domain/port/core"
	"github.com/watchearn/rewards-ledger/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// EventIdentityRepository implements persistence.EventIdentityRepository using GORM
type EventIdentityRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewEventIdentityRepository creates a new EventIdentityRepository instance
func NewEventIdentityRepository(db *gorm.DB, logger coreport.Logger) *EventIdentityRepository {
	return &EventIdentityRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// modelToEntity converts an event identity model to an entity
func (r *EventIdentityRepository) modelToEntity(eventModel *model.EventIdentity) *entity.EventIdentity {
	return &entity.EventIdentity{
		ID:        eventModel.ID,
		EventID:   eventModel.EventID,
		AccountID: eventModel.AccountID,
		Outcome:   entity.EventOutcome(eventModel.Outcome),
		CreatedAt: eventModel.CreatedAt,
	}
}

// Record inserts an event identity. The unique index on event_id arbitrates
// concurrent admissions: the loser gets ErrDuplicateEvent.
func (r *EventIdentityRepository) Record(ctx context.Context, event *entity.EventIdentity) error {
	eventModel := model.EventIdentity{
		EventID:   event.EventID,
		AccountID: event.AccountID,
		Outcome:   string(event.Outcome),
		CreatedAt: event.CreatedAt,
	}

	result := r.db.WithContext(ctx).Create(&eventModel)
	if result.Error != nil {
		if r.errorClassifier.IsDuplicateKeyError(result.Error) {
			r.logger.Debug("Event identity already recorded", map[string]any{
				"event_id":   event.EventID,
				"account_id": event.AccountID,
			})
			return errs.ErrDuplicateEvent
		}
		r.logger.Error("Failed to record event identity", map[string]any{
			"event_id": event.EventID,
			"error":    result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	event.ID = eventModel.ID
	return nil
}

// GetByEventID retrieves a previously recorded event identity
func (r *EventIdentityRepository) GetByEventID(ctx context.Context, eventID string) (*entity.EventIdentity, error) {
	var eventModel model.EventIdentity
	result := r.db.WithContext(ctx).Where("event_id = ?", eventID).First(&eventModel)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrEventNotFound
		}
		r.logger.Error("Failed to get event identity", map[string]any{
			"event_id": eventID,
			"error":    result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return r.modelToEntity(&eventModel), nil
}

// DeleteOlderThan prunes identity records created before the cutoff
func (r *EventIdentityRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&model.EventIdentity{})

	if result.Error != nil {
		r.logger.Error("Failed to prune event identities", map[string]any{
			"cutoff": cutoff,
			"error":  result.Error.Error(),
		})
		return 0, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return result.RowsAffected, nil
}
