package repository

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/daybook/internal/codec"
	"github.com/MKhiriev/daybook/internal/errs"
	"github.com/MKhiriev/daybook/internal/logger"
	"github.com/MKhiriev/daybook/models"
)

var journalOrder = []string{"date DESC", "created_at DESC"}

type journalRepository struct {
	*base
}

func (r *journalRepository) Create(ctx context.Context, entry models.JournalEntry) (models.JournalEntry, error) {
	userID, err := r.userID()
	if err != nil {
		return models.JournalEntry{}, err
	}

	if entry.Date.IsZero() {
		return models.JournalEntry{}, errs.NewValidationError("date", "is required")
	}
	payload := models.JournalPayload{
		Title:   entry.Title,
		Content: entry.Content,
		Mood:    entry.Mood,
		Tags:    entry.Tags,
	}
	if err = payload.Validate(); err != nil {
		return models.JournalEntry{}, err
	}

	entity, err := r.codec.CreateEncryptedEntity(payload, codec.EntityMeta{
		ID:       r.ids.Generate(),
		UserID:   userID,
		PeriodID: normalizePeriod(entry.PeriodID),
	})
	if err != nil {
		return models.JournalEntry{}, fmt.Errorf("failed to encrypt journal entry: %w", err)
	}

	now := r.now()
	entity.CreatedAt = now
	entity.UpdatedAt = now
	rec := models.JournalRecord{
		EncryptedEntity: entity,
		Date:            entry.Date.Format(models.DateLayout),
	}

	if err = r.store.Entries.Put(ctx, rec); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "journalRepository.Create").
			Str("user_id", userID).
			Msg("failed to save journal entry")
		return models.JournalEntry{}, fmt.Errorf("failed to save journal entry: %w", err)
	}

	created := journalFromRecord(rec, payload)
	if err = r.enqueue(ctx, models.OperationCreate, models.EntityJournal, rec.ID, rec); err != nil {
		return created, err
	}
	return created, nil
}

func (r *journalRepository) Get(ctx context.Context, id string) (models.JournalEntry, error) {
	userID, err := r.userID()
	if err != nil {
		return models.JournalEntry{}, err
	}

	rec, err := getOwned(ctx, r.store.Entries, id, userID, journalOwner)
	if err != nil {
		return models.JournalEntry{}, err
	}

	payload, err := codec.DecryptData[models.JournalPayload](r.codec, rec.EncryptedEntity)
	if err != nil {
		return models.JournalEntry{}, fmt.Errorf("failed to decrypt journal entry %s: %w", id, err)
	}
	return journalFromRecord(rec, payload), nil
}

func (r *journalRepository) ListByUser(ctx context.Context) ([]models.JournalEntry, error) {
	return r.find(ctx, nil)
}

// GetByDateRange returns entries dated within [from, to], both inclusive.
func (r *journalRepository) GetByDateRange(ctx context.Context, from, to time.Time) ([]models.JournalEntry, error) {
	if to.Before(from) {
		return nil, errs.NewValidationError("to", "must not be before from")
	}
	return r.find(ctx, sq.And{
		sq.GtOrEq{"date": from.Format(models.DateLayout)},
		sq.LtOrEq{"date": to.Format(models.DateLayout)},
	})
}

func (r *journalRepository) GetByPeriod(ctx context.Context, periodID string) ([]models.JournalEntry, error) {
	return r.find(ctx, sq.Eq{"period_id": periodID})
}

// GetEntriesPaginated returns one page of entries, newest date first.
// Pages are numbered from 1.
func (r *journalRepository) GetEntriesPaginated(ctx context.Context, page, pageSize int) (models.Page[models.JournalEntry], error) {
	userID, err := r.userID()
	if err != nil {
		return models.Page[models.JournalEntry]{}, err
	}

	if page < 1 {
		return models.Page[models.JournalEntry]{}, errs.NewValidationError("page", "must be at least 1")
	}
	if pageSize < 1 {
		return models.Page[models.JournalEntry]{}, errs.NewValidationError("pageSize", "must be at least 1")
	}

	cond := sq.Eq{"user_id": userID}
	total, err := r.store.Entries.Count(ctx, cond)
	if err != nil {
		return models.Page[models.JournalEntry]{}, fmt.Errorf("failed to count journal entries: %w", err)
	}

	recs, err := r.store.Entries.FindPage(ctx, cond, uint64(pageSize), uint64((page-1)*pageSize), journalOrder...)
	if err != nil {
		return models.Page[models.JournalEntry]{}, fmt.Errorf("failed to load journal page: %w", err)
	}

	return models.Page[models.JournalEntry]{
		Items:    codec.BatchDecrypt(r.codec, recs, journalFromRecord, journalPlaceholder),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		HasMore:  page*pageSize < total,
	}, nil
}

// Update applies the non-nil fields of patch. The payload is re-encrypted
// under a fresh IV.
func (r *journalRepository) Update(ctx context.Context, id string, patch models.JournalEntryUpdate) (models.JournalEntry, error) {
	userID, err := r.userID()
	if err != nil {
		return models.JournalEntry{}, err
	}

	rec, err := getOwned(ctx, r.store.Entries, id, userID, journalOwner)
	if err != nil {
		return models.JournalEntry{}, err
	}

	entity, payload, err := codec.UpdateEncryptedEntity(r.codec, rec.EncryptedEntity, func(p *models.JournalPayload) error {
		if patch.Title != nil {
			p.Title = *patch.Title
		}
		if patch.Content != nil {
			p.Content = *patch.Content
		}
		if patch.Mood != nil {
			p.Mood = *patch.Mood
		}
		if patch.Tags != nil {
			p.Tags = patch.Tags
		}
		return p.Validate()
	})
	if err != nil {
		return models.JournalEntry{}, fmt.Errorf("failed to update journal entry %s: %w", id, err)
	}

	rec.EncryptedEntity = entity
	if patch.Date != nil {
		if patch.Date.IsZero() {
			return models.JournalEntry{}, errs.NewValidationError("date", "is required")
		}
		rec.Date = patch.Date.Format(models.DateLayout)
	}
	if patch.PeriodID != nil {
		rec.PeriodID = normalizePeriod(patch.PeriodID)
	}
	rec.UpdatedAt = r.now()

	if err = r.store.Entries.Put(ctx, rec); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "journalRepository.Update").
			Str("id", id).
			Msg("failed to save journal entry")
		return models.JournalEntry{}, fmt.Errorf("failed to save journal entry: %w", err)
	}

	updated := journalFromRecord(rec, payload)
	if err = r.enqueue(ctx, models.OperationUpdate, models.EntityJournal, rec.ID, rec); err != nil {
		return updated, err
	}
	return updated, nil
}

func (r *journalRepository) Delete(ctx context.Context, id string) error {
	userID, err := r.userID()
	if err != nil {
		return err
	}

	if _, err = getOwned(ctx, r.store.Entries, id, userID, journalOwner); err != nil {
		return err
	}

	if err = r.store.Entries.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}

	return r.enqueue(ctx, models.OperationDelete, models.EntityJournal, id, deletedRecord{ID: id, UserID: userID})
}

func (r *journalRepository) find(ctx context.Context, cond sq.Sqlizer) ([]models.JournalEntry, error) {
	userID, err := r.userID()
	if err != nil {
		return nil, err
	}

	where := sq.And{sq.Eq{"user_id": userID}}
	if cond != nil {
		where = append(where, cond)
	}

	recs, err := r.store.Entries.Find(ctx, where, journalOrder...)
	if err != nil {
		return nil, fmt.Errorf("failed to load journal entries: %w", err)
	}

	return codec.BatchDecrypt(r.codec, recs, journalFromRecord, journalPlaceholder), nil
}

func journalOwner(r models.JournalRecord) string { return r.UserID }

func journalFromRecord(rec models.JournalRecord, p models.JournalPayload) models.JournalEntry {
	entry := journalPlaceholder(rec, nil)
	entry.Corrupted = false
	entry.Title = p.Title
	entry.Content = p.Content
	entry.Mood = p.Mood
	entry.Tags = p.Tags
	return entry
}

// journalPlaceholder keeps the plaintext columns of a record whose payload
// could not be decrypted.
func journalPlaceholder(rec models.JournalRecord, _ error) models.JournalEntry {
	date, _ := time.Parse(models.DateLayout, rec.Date)
	return models.JournalEntry{
		ID:        rec.ID,
		UserID:    rec.UserID,
		PeriodID:  rec.PeriodID,
		Date:      date,
		Corrupted: true,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}
