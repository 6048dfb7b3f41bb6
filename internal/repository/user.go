package repository

import (
	"context"
	"fmt"

	"github.com/MKhiriev/daybook/internal/errs"
	"github.com/MKhiriev/daybook/internal/logger"
	"github.com/MKhiriev/daybook/models"
)

type userRepository struct {
	*base
}

func (r *userRepository) GetCurrent(ctx context.Context) (models.User, error) {
	userID, err := r.userID()
	if err != nil {
		return models.User{}, err
	}

	return r.store.Users.Get(ctx, userID)
}

// Update applies the non-nil fields of patch. A birth date in the future or
// an unknown theme is a *errs.ValidationError.
func (r *userRepository) Update(ctx context.Context, patch models.UserUpdate) (models.User, error) {
	userID, err := r.userID()
	if err != nil {
		return models.User{}, err
	}

	user, err := r.store.Users.Get(ctx, userID)
	if err != nil {
		return models.User{}, err
	}

	now := r.now()
	if patch.BirthDate != nil {
		birth := dateOnly(*patch.BirthDate)
		if birth.After(now) {
			return models.User{}, errs.NewValidationError("birthDate", "must not be in the future")
		}
		user.BirthDate = birth
	}
	if patch.Theme != nil {
		switch *patch.Theme {
		case models.ThemeSystem, models.ThemeLight, models.ThemeDark:
			user.Theme = *patch.Theme
		default:
			return models.User{}, errs.NewValidationError("theme", fmt.Sprintf("unknown theme %q", *patch.Theme))
		}
	}
	user.UpdatedAt = now

	if err = r.store.Users.Put(ctx, user); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "userRepository.Update").
			Str("user_id", userID).
			Msg("failed to save user")
		return models.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	if err = r.enqueue(ctx, models.OperationUpdate, models.EntityUser, user.ID, user); err != nil {
		return user, err
	}
	return user, nil
}

// DeleteAccount removes every local record and queues the account deletion.
func (r *userRepository) DeleteAccount(ctx context.Context) error {
	userID, err := r.userID()
	if err != nil {
		return err
	}

	if err = r.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	return r.enqueue(ctx, models.OperationDelete, models.EntityUser, userID, deletedRecord{ID: userID, UserID: userID})
}
