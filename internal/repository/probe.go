package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/daybook/internal/store"
	"github.com/MKhiriev/daybook/models"
)

// Prober finds a record to verify a passphrase against. It works before
// authentication and never decrypts.
type Prober struct {
	store *store.LocalStore
}

// NewProber returns a Prober over s.
func NewProber(s *store.LocalStore) *Prober {
	return &Prober{store: s}
}

// Probe returns one encrypted record of userID, looking at journal entries,
// then goals, then habits. ok is false when the user has no records yet.
func (p *Prober) Probe(ctx context.Context, userID string) (entity models.EncryptedEntity, ok bool, err error) {
	cond := sq.Eq{"user_id": userID}

	entries, err := p.store.Entries.FindPage(ctx, cond, 1, 0, "created_at")
	if err != nil {
		return models.EncryptedEntity{}, false, fmt.Errorf("failed to probe journal entries: %w", err)
	}
	if len(entries) > 0 {
		return entries[0].EncryptedEntity, true, nil
	}

	goals, err := p.store.Goals.FindPage(ctx, cond, 1, 0, "created_at")
	if err != nil {
		return models.EncryptedEntity{}, false, fmt.Errorf("failed to probe goals: %w", err)
	}
	if len(goals) > 0 {
		return goals[0].EncryptedEntity, true, nil
	}

	habits, err := p.store.Habits.FindPage(ctx, cond, 1, 0, "created_at")
	if err != nil {
		return models.EncryptedEntity{}, false, fmt.Errorf("failed to probe habits: %w", err)
	}
	if len(habits) > 0 {
		return habits[0].EncryptedEntity, true, nil
	}

	return models.EncryptedEntity{}, false, nil
}
