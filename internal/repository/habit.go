package repository

import (
	"context"
	"fmt"
	"slices"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/daybook/internal/codec"
	"github.com/MKhiriev/daybook/internal/errs"
	"github.com/MKhiriev/daybook/internal/logger"
	"github.com/MKhiriev/daybook/models"
)

var habitOrder = []string{"created_at DESC"}

type habitRepository struct {
	*base
}

func (r *habitRepository) Create(ctx context.Context, habit models.Habit) (models.Habit, error) {
	userID, err := r.userID()
	if err != nil {
		return models.Habit{}, err
	}

	if !habit.Frequency.Valid() {
		return models.Habit{}, errs.NewValidationError("frequency", fmt.Sprintf("unknown frequency %q", habit.Frequency))
	}

	now := r.now()
	payload := models.HabitPayload{
		Name:        habit.Name,
		Description: habit.Description,
	}
	for _, d := range habit.Completions {
		payload.Completions = addCompletion(payload.Completions, d)
	}
	if err = payload.Validate(); err != nil {
		return models.Habit{}, err
	}

	entity, err := r.codec.CreateEncryptedEntity(payload, codec.EntityMeta{
		ID:       r.ids.Generate(),
		UserID:   userID,
		PeriodID: normalizePeriod(habit.PeriodID),
	})
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to encrypt habit: %w", err)
	}
	entity.CreatedAt = now
	entity.UpdatedAt = now

	rec := models.HabitRecord{EncryptedEntity: entity, Frequency: habit.Frequency}
	setStreaks(&rec, payload, now)

	if err = r.store.Habits.Put(ctx, rec); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "habitRepository.Create").
			Str("user_id", userID).
			Msg("failed to save habit")
		return models.Habit{}, fmt.Errorf("failed to save habit: %w", err)
	}

	return r.afterWrite(ctx, models.OperationCreate, rec, payload, now)
}

func (r *habitRepository) Get(ctx context.Context, id string) (models.Habit, error) {
	userID, err := r.userID()
	if err != nil {
		return models.Habit{}, err
	}

	rec, err := getOwned(ctx, r.store.Habits, id, userID, habitOwner)
	if err != nil {
		return models.Habit{}, err
	}

	payload, err := codec.DecryptData[models.HabitPayload](r.codec, rec.EncryptedEntity)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to decrypt habit %s: %w", id, err)
	}
	return habitFromRecord(rec, payload, r.now()), nil
}

func (r *habitRepository) ListByUser(ctx context.Context) ([]models.Habit, error) {
	return r.find(ctx, nil)
}

func (r *habitRepository) GetByPeriod(ctx context.Context, periodID string) ([]models.Habit, error) {
	return r.find(ctx, sq.Eq{"period_id": periodID})
}

// Update applies the non-nil fields of patch. A frequency change recomputes
// the streaks.
func (r *habitRepository) Update(ctx context.Context, id string, patch models.HabitUpdate) (models.Habit, error) {
	if patch.Frequency != nil && !patch.Frequency.Valid() {
		return models.Habit{}, errs.NewValidationError("frequency", fmt.Sprintf("unknown frequency %q", *patch.Frequency))
	}

	return r.mutate(ctx, id, func(rec *models.HabitRecord, p *models.HabitPayload) (bool, error) {
		if patch.Name != nil {
			p.Name = *patch.Name
		}
		if patch.Description != nil {
			p.Description = *patch.Description
		}
		if patch.Frequency != nil {
			rec.Frequency = *patch.Frequency
		}
		if patch.PeriodID != nil {
			rec.PeriodID = normalizePeriod(patch.PeriodID)
		}
		return true, nil
	})
}

// RecordCompletion marks date as done. Recording the same day twice changes
// nothing and queues nothing.
func (r *habitRepository) RecordCompletion(ctx context.Context, habitID string, date time.Time) (models.Habit, error) {
	if date.IsZero() {
		return models.Habit{}, errs.NewValidationError("date", "is required")
	}
	if dateOnly(date).After(dateOnly(r.clock())) {
		return models.Habit{}, errs.NewValidationError("date", "must not be in the future")
	}

	return r.mutate(ctx, habitID, func(_ *models.HabitRecord, p *models.HabitPayload) (bool, error) {
		before := len(p.Completions)
		p.Completions = addCompletion(p.Completions, date)
		return len(p.Completions) != before, nil
	})
}

// RemoveCompletion unmarks date. Removing a day that was not recorded is a
// no-op.
func (r *habitRepository) RemoveCompletion(ctx context.Context, habitID string, date time.Time) (models.Habit, error) {
	day := date.Format(models.DateLayout)

	return r.mutate(ctx, habitID, func(_ *models.HabitRecord, p *models.HabitPayload) (bool, error) {
		idx := slices.Index(p.Completions, day)
		if idx < 0 {
			return false, nil
		}
		p.Completions = slices.Delete(p.Completions, idx, idx+1)
		return true, nil
	})
}

func (r *habitRepository) Delete(ctx context.Context, id string) error {
	userID, err := r.userID()
	if err != nil {
		return err
	}

	if _, err = getOwned(ctx, r.store.Habits, id, userID, habitOwner); err != nil {
		return err
	}

	if err = r.store.Habits.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}

	return r.enqueue(ctx, models.OperationDelete, models.EntityHabit, id, deletedRecord{ID: id, UserID: userID})
}

// mutate loads an owned habit and applies fn. When fn reports no change the
// stored habit is returned as is; otherwise the payload is re-encrypted, the
// streaks recomputed and the record saved and enqueued.
func (r *habitRepository) mutate(ctx context.Context, id string, fn func(rec *models.HabitRecord, p *models.HabitPayload) (bool, error)) (models.Habit, error) {
	userID, err := r.userID()
	if err != nil {
		return models.Habit{}, err
	}

	rec, err := getOwned(ctx, r.store.Habits, id, userID, habitOwner)
	if err != nil {
		return models.Habit{}, err
	}

	now := r.now()
	changed := false
	entity, payload, err := codec.UpdateEncryptedEntity(r.codec, rec.EncryptedEntity, func(p *models.HabitPayload) error {
		var err error
		if changed, err = fn(&rec, p); err != nil {
			return err
		}
		return p.Validate()
	})
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to update habit %s: %w", id, err)
	}

	if !changed {
		return habitFromRecord(rec, payload, now), nil
	}

	periodID := rec.PeriodID
	rec.EncryptedEntity = entity
	rec.PeriodID = periodID
	rec.UpdatedAt = now
	setStreaks(&rec, payload, now)

	if err = r.store.Habits.Put(ctx, rec); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "habitRepository.mutate").
			Str("id", id).
			Msg("failed to save habit")
		return models.Habit{}, fmt.Errorf("failed to save habit: %w", err)
	}

	return r.afterWrite(ctx, models.OperationUpdate, rec, payload, now)
}

func (r *habitRepository) afterWrite(ctx context.Context, op models.OperationType, rec models.HabitRecord, payload models.HabitPayload, now time.Time) (models.Habit, error) {
	habit := habitFromRecord(rec, payload, now)
	if err := r.enqueue(ctx, op, models.EntityHabit, rec.ID, rec); err != nil {
		return habit, err
	}
	return habit, nil
}

func (r *habitRepository) find(ctx context.Context, cond sq.Sqlizer) ([]models.Habit, error) {
	userID, err := r.userID()
	if err != nil {
		return nil, err
	}

	where := sq.And{sq.Eq{"user_id": userID}}
	if cond != nil {
		where = append(where, cond)
	}

	recs, err := r.store.Habits.Find(ctx, where, habitOrder...)
	if err != nil {
		return nil, fmt.Errorf("failed to load habits: %w", err)
	}

	now := r.now()
	build := func(rec models.HabitRecord, p models.HabitPayload) models.Habit {
		return habitFromRecord(rec, p, now)
	}
	return codec.BatchDecrypt(r.codec, recs, build, habitPlaceholder), nil
}

// addCompletion inserts the calendar day of d into the sorted list unless it
// is already there.
func addCompletion(days []string, d time.Time) []string {
	day := d.Format(models.DateLayout)
	idx, found := slices.BinarySearch(days, day)
	if found {
		return days
	}
	return slices.Insert(days, idx, day)
}

func completionDates(p models.HabitPayload) []time.Time {
	out := make([]time.Time, 0, len(p.Completions))
	for _, d := range p.Completions {
		if t, err := time.Parse(models.DateLayout, d); err == nil {
			out = append(out, t)
		}
	}
	return out
}

func setStreaks(rec *models.HabitRecord, p models.HabitPayload, now time.Time) {
	s := CalculateStreaks(completionDates(p), rec.Frequency, now)
	rec.CurrentStreak = s.Current
	rec.LongestStreak = s.Longest
}

func habitOwner(r models.HabitRecord) string { return r.UserID }

// habitFromRecord recomputes the streaks against now, since the stored
// current streak goes stale as days pass.
func habitFromRecord(rec models.HabitRecord, p models.HabitPayload, now time.Time) models.Habit {
	habit := habitPlaceholder(rec, nil)
	habit.Corrupted = false
	habit.Name = p.Name
	habit.Description = p.Description
	habit.Completions = completionDates(p)

	s := CalculateStreaks(habit.Completions, rec.Frequency, now)
	habit.CurrentStreak = s.Current
	habit.LongestStreak = s.Longest
	return habit
}

func habitPlaceholder(rec models.HabitRecord, _ error) models.Habit {
	return models.Habit{
		ID:            rec.ID,
		UserID:        rec.UserID,
		PeriodID:      rec.PeriodID,
		Frequency:     rec.Frequency,
		CurrentStreak: rec.CurrentStreak,
		LongestStreak: rec.LongestStreak,
		Corrupted:     true,
		CreatedAt:     rec.CreatedAt,
		UpdatedAt:     rec.UpdatedAt,
	}
}
