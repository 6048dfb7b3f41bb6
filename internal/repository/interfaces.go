package repository

import (
	"context"
	"time"

	"github.com/MKhiriev/daybook/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/repository_mock.go -package=mock

// Guard exposes the session state repositories need.
type Guard interface {
	RequireAuth() error
	AuthenticatedUserID() (string, error)
}

// Enqueuer records a local mutation for later upload. data is marshalled to
// JSON as the operation payload.
type Enqueuer interface {
	AddOperation(ctx context.Context, opType models.OperationType, entity models.EntityKind, entityID string, data any) error
}

// IDGenerator produces new record ids.
type IDGenerator interface {
	Generate() string
}

// UserRepository manages the signed-in user.
type UserRepository interface {
	GetCurrent(ctx context.Context) (models.User, error)
	Update(ctx context.Context, patch models.UserUpdate) (models.User, error)
	DeleteAccount(ctx context.Context) error
}

// JournalRepository manages encrypted journal entries.
type JournalRepository interface {
	Create(ctx context.Context, entry models.JournalEntry) (models.JournalEntry, error)
	Get(ctx context.Context, id string) (models.JournalEntry, error)
	ListByUser(ctx context.Context) ([]models.JournalEntry, error)
	GetByDateRange(ctx context.Context, from, to time.Time) ([]models.JournalEntry, error)
	GetByPeriod(ctx context.Context, periodID string) ([]models.JournalEntry, error)
	GetEntriesPaginated(ctx context.Context, page, pageSize int) (models.Page[models.JournalEntry], error)
	Update(ctx context.Context, id string, patch models.JournalEntryUpdate) (models.JournalEntry, error)
	Delete(ctx context.Context, id string) error
}

// GoalRepository manages encrypted goals and their milestones.
type GoalRepository interface {
	Create(ctx context.Context, goal models.Goal) (models.Goal, error)
	Get(ctx context.Context, id string) (models.Goal, error)
	ListByUser(ctx context.Context) ([]models.Goal, error)
	GetByStatus(ctx context.Context, status models.GoalStatus) ([]models.Goal, error)
	GetByPeriod(ctx context.Context, periodID string) ([]models.Goal, error)
	Update(ctx context.Context, id string, patch models.GoalUpdate) (models.Goal, error)
	ToggleMilestone(ctx context.Context, goalID, milestoneID string) (models.Goal, error)
	AddMilestone(ctx context.Context, goalID, title string) (models.Goal, error)
	UpdateProgress(ctx context.Context, goalID string, progress int) (models.Goal, error)
	Delete(ctx context.Context, id string) error
}

// HabitRepository manages encrypted habits and their completions.
type HabitRepository interface {
	Create(ctx context.Context, habit models.Habit) (models.Habit, error)
	Get(ctx context.Context, id string) (models.Habit, error)
	ListByUser(ctx context.Context) ([]models.Habit, error)
	GetByPeriod(ctx context.Context, periodID string) ([]models.Habit, error)
	Update(ctx context.Context, id string, patch models.HabitUpdate) (models.Habit, error)
	RecordCompletion(ctx context.Context, habitID string, date time.Time) (models.Habit, error)
	RemoveCompletion(ctx context.Context, habitID string, date time.Time) (models.Habit, error)
	Delete(ctx context.Context, id string) error
}

// PeriodRepository manages tracking periods.
type PeriodRepository interface {
	Create(ctx context.Context, period models.Period) (models.Period, error)
	Get(ctx context.Context, id string) (models.Period, error)
	ListByUser(ctx context.Context) ([]models.Period, error)
	GetActive(ctx context.Context) (models.Period, error)
	SetActive(ctx context.Context, id string) (models.Period, error)
	End(ctx context.Context, id string, endDate time.Time) (models.Period, error)
	Delete(ctx context.Context, id string) error
}
