package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/daybook/internal/errs"
	"github.com/MKhiriev/daybook/internal/logger"
	"github.com/MKhiriev/daybook/internal/mock"
	"github.com/MKhiriev/daybook/internal/repository"
	"github.com/MKhiriev/daybook/models"
)

func requireCode(t *testing.T, err error, code Code) *Error {
	t.Helper()
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, code, svcErr.Code)
	return svcErr
}

// ── Journal ───────────────────────────────────────────────────────────────────

func TestJournalService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockJournalRepository(ctrl)
	svc := NewJournalService(repo, logger.Nop())
	ctx := context.Background()

	in := models.JournalEntry{Date: time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), Content: "Day one"}
	out := in
	out.ID = "e1"
	repo.EXPECT().Create(ctx, in).Return(out, nil)

	got, err := svc.Create(ctx, in)

	require.NoError(t, err)
	assert.Equal(t, "e1", got.ID)
}

func TestJournalService_CreateValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockJournalRepository(ctrl)
	svc := NewJournalService(repo, logger.Nop())

	repo.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return(models.JournalEntry{}, errs.NewValidationError("content", "is required"))

	_, err := svc.Create(context.Background(), models.JournalEntry{})

	svcErr := requireCode(t, err, CodeCreateJournalEntry)
	assert.ErrorIs(t, err, errs.ErrValidation)
	assert.Equal(t, "invalid data provided: content is required", svcErr.Message())
}

func TestJournalService_CreateKeepsEntryWhenEnqueueFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockJournalRepository(ctrl)
	svc := NewJournalService(repo, logger.Nop())

	saved := models.JournalEntry{ID: "e1", Content: "Day one"}
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(saved, repository.ErrEnqueueFailed)

	got, err := svc.Create(context.Background(), models.JournalEntry{Content: "Day one"})

	requireCode(t, err, CodeCreateJournalEntry)
	assert.ErrorIs(t, err, repository.ErrEnqueueFailed)
	assert.Equal(t, "e1", got.ID)
}

func TestJournalService_Reads(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockJournalRepository(ctrl)
	svc := NewJournalService(repo, logger.Nop())
	ctx := context.Background()

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	entries := []models.JournalEntry{{ID: "e1"}, {ID: "e2"}}

	repo.EXPECT().ListByUser(ctx).Return(entries, nil)
	repo.EXPECT().GetByDateRange(ctx, from, to).Return(entries[:1], nil)
	repo.EXPECT().GetByPeriod(ctx, "p1").Return(entries[1:], nil)
	repo.EXPECT().GetEntriesPaginated(ctx, 1, 10).Return(models.Page[models.JournalEntry]{Items: entries, Total: 2, Page: 1, PageSize: 10}, nil)
	repo.EXPECT().Get(ctx, "e1").Return(entries[0], nil)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	inRange, err := svc.ListByDateRange(ctx, from, to)
	require.NoError(t, err)
	assert.Equal(t, "e1", inRange[0].ID)

	inPeriod, err := svc.ListByPeriod(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "e2", inPeriod[0].ID)

	page, err := svc.ListPage(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	assert.False(t, page.HasMore)

	one, err := svc.Get(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "e1", one.ID)
}

func TestJournalService_ReadErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockJournalRepository(ctrl)
	svc := NewJournalService(repo, logger.Nop())
	ctx := context.Background()

	repo.EXPECT().ListByUser(ctx).Return(nil, errs.ErrAuth)
	repo.EXPECT().Get(ctx, "missing").Return(models.JournalEntry{}, errs.NewNotFoundError("entries", "missing"))
	repo.EXPECT().GetEntriesPaginated(ctx, 0, 10).Return(models.Page[models.JournalEntry]{}, errs.NewValidationError("page", "must be >= 1"))

	_, err := svc.List(ctx)
	assert.Equal(t, "session is locked, log in first", requireCode(t, err, CodeGetJournalEntries).Message())

	_, err = svc.Get(ctx, "missing")
	requireCode(t, err, CodeGetJournalEntries)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	_, err = svc.ListPage(ctx, 0, 10)
	requireCode(t, err, CodeGetJournalEntries)
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestJournalService_UpdateAndDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockJournalRepository(ctrl)
	svc := NewJournalService(repo, logger.Nop())
	ctx := context.Background()

	content := "Day two"
	patch := models.JournalEntryUpdate{Content: &content}
	repo.EXPECT().Update(ctx, "e1", patch).Return(models.JournalEntry{ID: "e1", Content: content}, nil)
	repo.EXPECT().Update(ctx, "e2", patch).Return(models.JournalEntry{}, errs.NewNotFoundError("entries", "e2"))
	repo.EXPECT().Delete(ctx, "e1").Return(nil)
	repo.EXPECT().Delete(ctx, "e2").Return(errors.New("disk I/O error"))

	got, err := svc.Update(ctx, "e1", patch)
	require.NoError(t, err)
	assert.Equal(t, content, got.Content)

	_, err = svc.Update(ctx, "e2", patch)
	requireCode(t, err, CodeUpdateJournalEntry)

	require.NoError(t, svc.Delete(ctx, "e1"))

	err = svc.Delete(ctx, "e2")
	assert.Equal(t, "internal error", requireCode(t, err, CodeDeleteJournalEntry).Message())
}
