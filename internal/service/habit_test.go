package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/daybook/internal/errs"
	"github.com/MKhiriev/daybook/internal/logger"
	"github.com/MKhiriev/daybook/internal/mock"
	"github.com/MKhiriev/daybook/models"
)

// ── Habits ────────────────────────────────────────────────────────────────────

func TestHabitService_Forwarding(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockHabitRepository(ctrl)
	svc := NewHabitService(repo, logger.Nop())
	ctx := context.Background()

	day := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	habit := models.Habit{ID: "h1", Name: "Read", Frequency: models.FrequencyDaily}
	done := habit
	done.Completions = []time.Time{day}
	done.CurrentStreak, done.LongestStreak = 1, 1
	freq := models.FrequencyWeekly

	repo.EXPECT().Create(ctx, models.Habit{Name: "Read", Frequency: models.FrequencyDaily}).Return(habit, nil)
	repo.EXPECT().Get(ctx, "h1").Return(habit, nil)
	repo.EXPECT().ListByUser(ctx).Return([]models.Habit{habit}, nil)
	repo.EXPECT().GetByPeriod(ctx, "p1").Return([]models.Habit{habit}, nil)
	repo.EXPECT().Update(ctx, "h1", models.HabitUpdate{Frequency: &freq}).Return(models.Habit{ID: "h1", Frequency: freq}, nil)
	repo.EXPECT().RecordCompletion(ctx, "h1", day).Return(done, nil)
	repo.EXPECT().RemoveCompletion(ctx, "h1", day).Return(habit, nil)
	repo.EXPECT().Delete(ctx, "h1").Return(nil)

	_, err := svc.Create(ctx, models.Habit{Name: "Read", Frequency: models.FrequencyDaily})
	require.NoError(t, err)
	_, err = svc.Get(ctx, "h1")
	require.NoError(t, err)
	_, err = svc.List(ctx)
	require.NoError(t, err)
	_, err = svc.ListByPeriod(ctx, "p1")
	require.NoError(t, err)

	weekly, err := svc.Update(ctx, "h1", models.HabitUpdate{Frequency: &freq})
	require.NoError(t, err)
	assert.Equal(t, models.FrequencyWeekly, weekly.Frequency)

	completed, err := svc.Complete(ctx, "h1", day)
	require.NoError(t, err)
	assert.Equal(t, 1, completed.CurrentStreak)

	undone, err := svc.Uncomplete(ctx, "h1", day)
	require.NoError(t, err)
	assert.Empty(t, undone.Completions)

	require.NoError(t, svc.Delete(ctx, "h1"))
}

func TestHabitService_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockHabitRepository(ctrl)
	svc := NewHabitService(repo, logger.Nop())
	ctx := context.Background()

	future := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	repo.EXPECT().Create(ctx, gomock.Any()).Return(models.Habit{}, errs.NewValidationError("frequency", `unknown frequency "hourly"`))
	repo.EXPECT().RecordCompletion(ctx, "h1", future).Return(models.Habit{}, errs.NewValidationError("date", "must not be in the future"))
	repo.EXPECT().RemoveCompletion(ctx, "h9", future).Return(models.Habit{}, errs.NewNotFoundError("habits", "h9"))
	repo.EXPECT().Delete(ctx, "h9").Return(errs.ErrAuth)

	_, err := svc.Create(ctx, models.Habit{Name: "Read", Frequency: "hourly"})
	requireCode(t, err, CodeCreateHabit)

	_, err = svc.Complete(ctx, "h1", future)
	assert.Equal(t, "invalid data provided: date must not be in the future", requireCode(t, err, CodeUpdateHabit).Message())

	_, err = svc.Uncomplete(ctx, "h9", future)
	requireCode(t, err, CodeUpdateHabit)

	err = svc.Delete(ctx, "h9")
	requireCode(t, err, CodeDeleteHabit)
	assert.ErrorIs(t, err, errs.ErrAuth)
}
