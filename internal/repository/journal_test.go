package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/daybook/internal/errs"
	"github.com/MKhiriev/daybook/models"
)

func TestJournalRepository_CreateAndGet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.repos.Journal.Create(ctx, models.JournalEntry{
		Date:    day("2026-03-14"),
		Title:   "Saturday",
		Content: "Day one",
		Mood:    "calm",
		Tags:    []string{"first"},
	})
	require.NoError(t, err)
	assert.Equal(t, "user-1", created.UserID)
	assert.False(t, created.Corrupted)

	got, err := f.repos.Journal.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Day one", got.Content)
	assert.Equal(t, "Saturday", got.Title)
	assert.Equal(t, []string{"first"}, got.Tags)
	assert.Equal(t, day("2026-03-14"), got.Date)

	rec, err := f.store.Entries.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-14", rec.Date)
	assert.NotContains(t, rec.EncryptedPayload, "Day one")
}

func TestJournalRepository_EnqueuedDataIsEncrypted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.repos.Journal.Create(ctx, models.JournalEntry{Date: testNow, Title: "secret title", Content: "secret content"})
	require.NoError(t, err)
	_, err = f.repos.Journal.Update(ctx, created.ID, models.JournalEntryUpdate{Content: ptr("another secret")})
	require.NoError(t, err)

	ops := f.queue.all()
	require.Len(t, ops, 2)
	assert.Equal(t, models.OperationCreate, ops[0].Type)
	assert.Equal(t, models.OperationUpdate, ops[1].Type)
	for _, op := range ops {
		assert.Equal(t, models.EntityJournal, op.Entity)
		assert.Equal(t, created.ID, op.EntityID)
		assert.NotContains(t, string(op.Data), "secret")
		assert.Contains(t, string(op.Data), `"encryptedPayload"`)
	}
}

func TestJournalRepository_CreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		entry models.JournalEntry
		field string
	}{
		{name: "missing date", entry: models.JournalEntry{Content: "x"}, field: "date"},
		{name: "blank content", entry: models.JournalEntry{Date: testNow, Content: "  "}, field: "content"},
		{name: "empty tag", entry: models.JournalEntry{Date: testNow, Content: "x", Tags: []string{""}}, field: "tags"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.repos.Journal.Create(ctx, tt.entry)

			var vErr *errs.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}

	all, err := f.store.Entries.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Empty(t, f.queue.all())
}

func TestJournalRepository_Update(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.repos.Journal.Create(ctx, models.JournalEntry{Date: testNow, Content: "draft"})
	require.NoError(t, err)
	before, err := f.store.Entries.Get(ctx, created.ID)
	require.NoError(t, err)

	f.now = testNow.Add(5 * time.Minute)
	updated, err := f.repos.Journal.Update(ctx, created.ID, models.JournalEntryUpdate{
		Content:  ptr("final"),
		Date:     ptr(day("2026-03-10")),
		PeriodID: ptr("period-1"),
	})
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Content)
	assert.Equal(t, day("2026-03-10"), updated.Date)
	require.NotNil(t, updated.PeriodID)
	assert.Equal(t, "period-1", *updated.PeriodID)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	after, err := f.store.Entries.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.NotEqual(t, before.IV, after.IV)
}

func TestJournalRepository_UpdateMissing(t *testing.T) {
	f := newFixture(t)

	_, err := f.repos.Journal.Update(context.Background(), "nope", models.JournalEntryUpdate{Content: ptr("x")})

	var nf *errs.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "nope", nf.ID)
}

func TestJournalRepository_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.repos.Journal.Create(ctx, models.JournalEntry{Date: testNow, Content: "gone soon"})
	require.NoError(t, err)

	require.NoError(t, f.repos.Journal.Delete(ctx, created.ID))

	_, err = f.repos.Journal.Get(ctx, created.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	ops := f.queue.all()
	require.Len(t, ops, 2)
	assert.Equal(t, models.OperationDelete, ops[1].Type)
	assert.JSONEq(t, `{"id":"`+created.ID+`","userId":"user-1"}`, string(ops[1].Data))
}

func TestJournalRepository_GetByDateRange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, d := range []string{"2026-03-01", "2026-03-05", "2026-03-10", "2026-03-12"} {
		_, err := f.repos.Journal.Create(ctx, models.JournalEntry{Date: day(d), Content: d})
		require.NoError(t, err)
	}

	got, err := f.repos.Journal.GetByDateRange(ctx, day("2026-03-05"), day("2026-03-10"))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2026-03-10", got[0].Content)
	assert.Equal(t, "2026-03-05", got[1].Content)

	_, err = f.repos.Journal.GetByDateRange(ctx, day("2026-03-10"), day("2026-03-05"))
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestJournalRepository_GetByPeriod(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.repos.Journal.Create(ctx, models.JournalEntry{Date: testNow, Content: "in", PeriodID: ptr("p1")})
	require.NoError(t, err)
	_, err = f.repos.Journal.Create(ctx, models.JournalEntry{Date: testNow, Content: "out"})
	require.NoError(t, err)
	_, err = f.repos.Journal.Create(ctx, models.JournalEntry{Date: testNow, Content: "blank period", PeriodID: ptr("")})
	require.NoError(t, err)

	got, err := f.repos.Journal.GetByPeriod(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "in", got[0].Content)
}

func TestJournalRepository_GetEntriesPaginated(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	dates := []string{"2026-03-01", "2026-03-02", "2026-03-03", "2026-03-04", "2026-03-05"}
	for _, d := range dates {
		_, err := f.repos.Journal.Create(ctx, models.JournalEntry{Date: day(d), Content: d})
		require.NoError(t, err)
	}

	tests := []struct {
		page, size int
		want       []string
		hasMore    bool
	}{
		{page: 1, size: 2, want: []string{"2026-03-05", "2026-03-04"}, hasMore: true},
		{page: 2, size: 2, want: []string{"2026-03-03", "2026-03-02"}, hasMore: true},
		{page: 3, size: 2, want: []string{"2026-03-01"}, hasMore: false},
		{page: 4, size: 2, want: nil, hasMore: false},
		{page: 1, size: 5, want: []string{"2026-03-05", "2026-03-04", "2026-03-03", "2026-03-02", "2026-03-01"}, hasMore: false},
	}

	for _, tt := range tests {
		p, err := f.repos.Journal.GetEntriesPaginated(ctx, tt.page, tt.size)
		require.NoError(t, err)

		var got []string
		for _, e := range p.Items {
			got = append(got, e.Content)
		}
		assert.Equal(t, tt.want, got, "page %d size %d", tt.page, tt.size)
		assert.Equal(t, 5, p.Total)
		assert.Equal(t, tt.page, p.Page)
		assert.Equal(t, tt.size, p.PageSize)
		assert.Equal(t, tt.hasMore, p.HasMore, "page %d size %d", tt.page, tt.size)
	}
}

func TestJournalRepository_GetEntriesPaginatedValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.repos.Journal.GetEntriesPaginated(ctx, 0, 10)
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = f.repos.Journal.GetEntriesPaginated(ctx, 1, 0)
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestJournalRepository_CorruptedRecordBecomesPlaceholder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	good, err := f.repos.Journal.Create(ctx, models.JournalEntry{Date: day("2026-03-02"), Content: "readable"})
	require.NoError(t, err)

	bad := models.JournalRecord{
		EncryptedEntity: models.EncryptedEntity{
			ID:               "broken",
			UserID:           "user-1",
			EncryptedPayload: "bm90IGNpcGhlcnRleHQ=",
			IV:               "AAAAAAAAAAAAAAAA",
			CreatedAt:        testNow,
			UpdatedAt:        testNow,
		},
		Date: "2026-03-01",
	}
	require.NoError(t, f.store.Entries.Put(ctx, bad))

	list, err := f.repos.Journal.ListByUser(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, good.ID, list[0].ID)
	assert.False(t, list[0].Corrupted)

	assert.Equal(t, "broken", list[1].ID)
	assert.True(t, list[1].Corrupted)
	assert.Empty(t, list[1].Content)
	assert.Equal(t, day("2026-03-01"), list[1].Date)

	_, err = f.repos.Journal.Get(ctx, "broken")
	assert.ErrorIs(t, err, errs.ErrDecryption)
}
