package repository

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/daybook/internal/codec"
	"github.com/MKhiriev/daybook/internal/errs"
	"github.com/MKhiriev/daybook/internal/logger"
	"github.com/MKhiriev/daybook/models"
)

var goalOrder = []string{"created_at DESC"}

type goalRepository struct {
	*base
}

// Create stores a new goal. Milestones without an id get one; the initial
// progress follows the milestones already marked completed.
func (r *goalRepository) Create(ctx context.Context, goal models.Goal) (models.Goal, error) {
	userID, err := r.userID()
	if err != nil {
		return models.Goal{}, err
	}

	status := goal.Status
	if status == "" {
		status = models.GoalActive
	}
	if !status.Valid() {
		return models.Goal{}, errs.NewValidationError("status", fmt.Sprintf("unknown status %q", status))
	}

	now := r.now()
	milestones := make([]models.Milestone, len(goal.Milestones))
	for i, m := range goal.Milestones {
		if m.ID == "" {
			m.ID = r.ids.Generate()
		}
		if m.Completed && m.CompletedAt == nil {
			m.CompletedAt = &now
		}
		milestones[i] = m
	}

	payload := models.GoalPayload{
		Title:       goal.Title,
		Description: goal.Description,
		Milestones:  milestones,
		TargetDate:  goal.TargetDate,
	}
	if err = payload.Validate(); err != nil {
		return models.Goal{}, err
	}

	entity, err := r.codec.CreateEncryptedEntity(payload, codec.EntityMeta{
		ID:       r.ids.Generate(),
		UserID:   userID,
		PeriodID: normalizePeriod(goal.PeriodID),
	})
	if err != nil {
		return models.Goal{}, fmt.Errorf("failed to encrypt goal: %w", err)
	}
	entity.CreatedAt = now
	entity.UpdatedAt = now

	rec := models.GoalRecord{EncryptedEntity: entity, Status: status}
	if status == models.GoalCompleted {
		rec.CompletedAt = &now
	}
	if len(milestones) > 0 {
		applyProgress(&rec, milestoneProgress(milestones), now)
	}

	if err = r.store.Goals.Put(ctx, rec); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "goalRepository.Create").
			Str("user_id", userID).
			Msg("failed to save goal")
		return models.Goal{}, fmt.Errorf("failed to save goal: %w", err)
	}

	return r.afterWrite(ctx, models.OperationCreate, rec, payload)
}

func (r *goalRepository) Get(ctx context.Context, id string) (models.Goal, error) {
	userID, err := r.userID()
	if err != nil {
		return models.Goal{}, err
	}

	rec, err := getOwned(ctx, r.store.Goals, id, userID, goalOwner)
	if err != nil {
		return models.Goal{}, err
	}

	payload, err := codec.DecryptData[models.GoalPayload](r.codec, rec.EncryptedEntity)
	if err != nil {
		return models.Goal{}, fmt.Errorf("failed to decrypt goal %s: %w", id, err)
	}
	return goalFromRecord(rec, payload), nil
}

func (r *goalRepository) ListByUser(ctx context.Context) ([]models.Goal, error) {
	return r.find(ctx, nil)
}

func (r *goalRepository) GetByStatus(ctx context.Context, status models.GoalStatus) ([]models.Goal, error) {
	if !status.Valid() {
		return nil, errs.NewValidationError("status", fmt.Sprintf("unknown status %q", status))
	}
	return r.find(ctx, sq.Eq{"status": string(status)})
}

func (r *goalRepository) GetByPeriod(ctx context.Context, periodID string) ([]models.Goal, error) {
	return r.find(ctx, sq.Eq{"period_id": periodID})
}

// Update applies the non-nil fields of patch.
func (r *goalRepository) Update(ctx context.Context, id string, patch models.GoalUpdate) (models.Goal, error) {
	if patch.Status != nil && !patch.Status.Valid() {
		return models.Goal{}, errs.NewValidationError("status", fmt.Sprintf("unknown status %q", *patch.Status))
	}

	return r.mutate(ctx, id, func(rec *models.GoalRecord, p *models.GoalPayload, now time.Time) error {
		if patch.Title != nil {
			p.Title = *patch.Title
		}
		if patch.Description != nil {
			p.Description = *patch.Description
		}
		if patch.TargetDate != nil {
			p.TargetDate = patch.TargetDate
		}
		if patch.PeriodID != nil {
			rec.PeriodID = normalizePeriod(patch.PeriodID)
		}
		if patch.Status != nil && *patch.Status != rec.Status {
			rec.Status = *patch.Status
			if rec.Status == models.GoalCompleted {
				rec.CompletedAt = &now
			} else {
				rec.CompletedAt = nil
			}
		}
		return nil
	})
}

// ToggleMilestone flips one milestone and recomputes the progress.
func (r *goalRepository) ToggleMilestone(ctx context.Context, goalID, milestoneID string) (models.Goal, error) {
	return r.mutate(ctx, goalID, func(rec *models.GoalRecord, p *models.GoalPayload, now time.Time) error {
		idx := -1
		for i := range p.Milestones {
			if p.Milestones[i].ID == milestoneID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return errs.NewNotFoundError("milestone", milestoneID)
		}

		m := &p.Milestones[idx]
		m.Completed = !m.Completed
		if m.Completed {
			m.CompletedAt = &now
		} else {
			m.CompletedAt = nil
		}

		applyProgress(rec, milestoneProgress(p.Milestones), now)
		return nil
	})
}

// AddMilestone appends an open milestone and recomputes the progress.
func (r *goalRepository) AddMilestone(ctx context.Context, goalID, title string) (models.Goal, error) {
	if strings.TrimSpace(title) == "" {
		return models.Goal{}, errs.NewValidationError("title", "is required")
	}

	return r.mutate(ctx, goalID, func(rec *models.GoalRecord, p *models.GoalPayload, now time.Time) error {
		p.Milestones = append(p.Milestones, models.Milestone{ID: r.ids.Generate(), Title: title})
		applyProgress(rec, milestoneProgress(p.Milestones), now)
		return nil
	})
}

// UpdateProgress sets the progress directly, clamped to 0..100.
func (r *goalRepository) UpdateProgress(ctx context.Context, goalID string, progress int) (models.Goal, error) {
	return r.mutate(ctx, goalID, func(rec *models.GoalRecord, _ *models.GoalPayload, now time.Time) error {
		applyProgress(rec, progress, now)
		return nil
	})
}

func (r *goalRepository) Delete(ctx context.Context, id string) error {
	userID, err := r.userID()
	if err != nil {
		return err
	}

	if _, err = getOwned(ctx, r.store.Goals, id, userID, goalOwner); err != nil {
		return err
	}

	if err = r.store.Goals.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	return r.enqueue(ctx, models.OperationDelete, models.EntityGoal, id, deletedRecord{ID: id, UserID: userID})
}

// mutate loads an owned goal, lets fn change both the plaintext columns and
// the payload, then re-encrypts, saves and enqueues it.
func (r *goalRepository) mutate(ctx context.Context, id string, fn func(rec *models.GoalRecord, p *models.GoalPayload, now time.Time) error) (models.Goal, error) {
	userID, err := r.userID()
	if err != nil {
		return models.Goal{}, err
	}

	rec, err := getOwned(ctx, r.store.Goals, id, userID, goalOwner)
	if err != nil {
		return models.Goal{}, err
	}

	now := r.now()
	entity, payload, err := codec.UpdateEncryptedEntity(r.codec, rec.EncryptedEntity, func(p *models.GoalPayload) error {
		if err := fn(&rec, p, now); err != nil {
			return err
		}
		return p.Validate()
	})
	if err != nil {
		return models.Goal{}, fmt.Errorf("failed to update goal %s: %w", id, err)
	}

	// fn may have changed PeriodID on rec; keep it over the entity copy.
	periodID := rec.PeriodID
	rec.EncryptedEntity = entity
	rec.PeriodID = periodID
	rec.UpdatedAt = now

	if err = r.store.Goals.Put(ctx, rec); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "goalRepository.mutate").
			Str("id", id).
			Msg("failed to save goal")
		return models.Goal{}, fmt.Errorf("failed to save goal: %w", err)
	}

	return r.afterWrite(ctx, models.OperationUpdate, rec, payload)
}

func (r *goalRepository) afterWrite(ctx context.Context, op models.OperationType, rec models.GoalRecord, payload models.GoalPayload) (models.Goal, error) {
	goal := goalFromRecord(rec, payload)
	if err := r.enqueue(ctx, op, models.EntityGoal, rec.ID, rec); err != nil {
		return goal, err
	}
	return goal, nil
}

func (r *goalRepository) find(ctx context.Context, cond sq.Sqlizer) ([]models.Goal, error) {
	userID, err := r.userID()
	if err != nil {
		return nil, err
	}

	where := sq.And{sq.Eq{"user_id": userID}}
	if cond != nil {
		where = append(where, cond)
	}

	recs, err := r.store.Goals.Find(ctx, where, goalOrder...)
	if err != nil {
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}

	return codec.BatchDecrypt(r.codec, recs, goalFromRecord, goalPlaceholder), nil
}

// milestoneProgress returns round(completed/total*100), or 0 without
// milestones.
func milestoneProgress(milestones []models.Milestone) int {
	if len(milestones) == 0 {
		return 0
	}
	done := 0
	for _, m := range milestones {
		if m.Completed {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(milestones)) * 100))
}

// applyProgress stores progress clamped to 0..100. Reaching 100 completes
// the goal; dropping below 100 reopens a completed goal.
func applyProgress(rec *models.GoalRecord, progress int, now time.Time) {
	rec.Progress = min(max(progress, 0), 100)

	switch {
	case rec.Progress == 100 && rec.Status != models.GoalCompleted:
		rec.Status = models.GoalCompleted
		rec.CompletedAt = &now
	case rec.Progress < 100 && rec.Status == models.GoalCompleted:
		rec.Status = models.GoalActive
		rec.CompletedAt = nil
	}
}

func goalOwner(r models.GoalRecord) string { return r.UserID }

func goalFromRecord(rec models.GoalRecord, p models.GoalPayload) models.Goal {
	goal := goalPlaceholder(rec, nil)
	goal.Corrupted = false
	goal.Title = p.Title
	goal.Description = p.Description
	goal.Milestones = p.Milestones
	goal.TargetDate = p.TargetDate
	return goal
}

func goalPlaceholder(rec models.GoalRecord, _ error) models.Goal {
	return models.Goal{
		ID:          rec.ID,
		UserID:      rec.UserID,
		PeriodID:    rec.PeriodID,
		Status:      rec.Status,
		Progress:    rec.Progress,
		CompletedAt: rec.CompletedAt,
		Corrupted:   true,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}
