package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/daybook/internal/errs"
	"github.com/MKhiriev/daybook/internal/logger"
	"github.com/MKhiriev/daybook/models"
)

type periodRepository struct {
	*base
}

// Create stores a new period. A zero StartDate means today. With IsActive
// set the new period replaces the currently active one.
func (r *periodRepository) Create(ctx context.Context, period models.Period) (models.Period, error) {
	userID, err := r.userID()
	if err != nil {
		return models.Period{}, err
	}

	if strings.TrimSpace(period.Name) == "" {
		return models.Period{}, errs.NewValidationError("name", "is required")
	}

	now := r.now()
	start := dateOnly(period.StartDate)
	if period.StartDate.IsZero() {
		start = dateOnly(r.clock())
	}
	var end *time.Time
	if period.EndDate != nil {
		e := dateOnly(*period.EndDate)
		if e.Before(start) {
			return models.Period{}, errs.NewValidationError("endDate", "must not be before startDate")
		}
		end = &e
	}

	created := models.Period{
		ID:        r.ids.Generate(),
		UserID:    userID,
		Name:      period.Name,
		StartDate: start,
		EndDate:   end,
		IsActive:  period.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var deactivated []string
	if created.IsActive {
		deactivated, err = r.store.CreateActivePeriod(ctx, created)
	} else {
		err = r.store.Periods.Put(ctx, created)
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "periodRepository.Create").
			Str("user_id", userID).
			Msg("failed to save period")
		return models.Period{}, fmt.Errorf("failed to save period: %w", err)
	}

	if err = r.enqueueDeactivated(ctx, deactivated); err != nil {
		return created, err
	}
	if err = r.enqueue(ctx, models.OperationCreate, models.EntityPeriod, created.ID, created); err != nil {
		return created, err
	}
	return created, nil
}

func (r *periodRepository) Get(ctx context.Context, id string) (models.Period, error) {
	userID, err := r.userID()
	if err != nil {
		return models.Period{}, err
	}

	return getOwned(ctx, r.store.Periods, id, userID, periodOwner)
}

// ListByUser returns the user's periods, latest start first.
func (r *periodRepository) ListByUser(ctx context.Context) ([]models.Period, error) {
	userID, err := r.userID()
	if err != nil {
		return nil, err
	}

	periods, err := r.store.Periods.Find(ctx, sq.Eq{"user_id": userID}, "start_date DESC", "created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to load periods: %w", err)
	}
	return periods, nil
}

// GetActive returns the active period or a *errs.NotFoundError.
func (r *periodRepository) GetActive(ctx context.Context) (models.Period, error) {
	userID, err := r.userID()
	if err != nil {
		return models.Period{}, err
	}

	periods, err := r.store.Periods.Find(ctx, sq.Eq{"user_id": userID, "is_active": true})
	if err != nil {
		return models.Period{}, fmt.Errorf("failed to load active period: %w", err)
	}
	if len(periods) == 0 {
		return models.Period{}, errs.NewNotFoundError(r.store.Periods.Name(), "active")
	}
	return periods[0], nil
}

// SetActive makes id the only active period of the user.
func (r *periodRepository) SetActive(ctx context.Context, id string) (models.Period, error) {
	userID, err := r.userID()
	if err != nil {
		return models.Period{}, err
	}

	deactivated, err := r.store.ActivatePeriod(ctx, userID, id)
	if err != nil {
		return models.Period{}, err
	}

	period, err := r.store.Periods.Get(ctx, id)
	if err != nil {
		return models.Period{}, err
	}

	if err = r.enqueueDeactivated(ctx, deactivated); err != nil {
		return period, err
	}
	if err = r.enqueue(ctx, models.OperationUpdate, models.EntityPeriod, id, period); err != nil {
		return period, err
	}
	return period, nil
}

// End closes the period at endDate and deactivates it.
func (r *periodRepository) End(ctx context.Context, id string, endDate time.Time) (models.Period, error) {
	userID, err := r.userID()
	if err != nil {
		return models.Period{}, err
	}

	period, err := getOwned(ctx, r.store.Periods, id, userID, periodOwner)
	if err != nil {
		return models.Period{}, err
	}

	end := dateOnly(endDate)
	if end.Before(period.StartDate) {
		return models.Period{}, errs.NewValidationError("endDate", "must not be before startDate")
	}
	period.EndDate = &end
	period.IsActive = false
	period.UpdatedAt = r.now()

	if err = r.store.Periods.Put(ctx, period); err != nil {
		return models.Period{}, fmt.Errorf("failed to end period: %w", err)
	}

	if err = r.enqueue(ctx, models.OperationUpdate, models.EntityPeriod, id, period); err != nil {
		return period, err
	}
	return period, nil
}

func (r *periodRepository) Delete(ctx context.Context, id string) error {
	userID, err := r.userID()
	if err != nil {
		return err
	}

	if _, err = getOwned(ctx, r.store.Periods, id, userID, periodOwner); err != nil {
		return err
	}

	if err = r.store.Periods.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete period: %w", err)
	}

	return r.enqueue(ctx, models.OperationDelete, models.EntityPeriod, id, deletedRecord{ID: id, UserID: userID})
}

// enqueueDeactivated queues an update carrying the stored row of every
// period that lost its active flag.
func (r *periodRepository) enqueueDeactivated(ctx context.Context, ids []string) error {
	for _, id := range ids {
		period, err := r.store.Periods.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrEnqueueFailed, err)
		}
		if err = r.enqueue(ctx, models.OperationUpdate, models.EntityPeriod, id, period); err != nil {
			return err
		}
	}
	return nil
}

func periodOwner(p models.Period) string { return p.UserID }
