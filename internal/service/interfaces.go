package service

import (
	"context"
	"time"

	"github.com/MKhiriev/daybook/internal/auth"
	"github.com/MKhiriev/daybook/models"
)

//go:generate mockgen -destination=../mock/service_mock.go -package=mock github.com/MKhiriev/daybook/internal/service Authenticator,SyncQueue,SyncService,AppInfoService

// JournalService is the journal API the UI and CLI use. Every error it
// returns is an *Error.
type JournalService interface {
	Create(ctx context.Context, entry models.JournalEntry) (models.JournalEntry, error)
	Get(ctx context.Context, id string) (models.JournalEntry, error)
	List(ctx context.Context) ([]models.JournalEntry, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]models.JournalEntry, error)
	ListByPeriod(ctx context.Context, periodID string) ([]models.JournalEntry, error)
	ListPage(ctx context.Context, page, pageSize int) (models.Page[models.JournalEntry], error)
	Update(ctx context.Context, id string, patch models.JournalEntryUpdate) (models.JournalEntry, error)
	Delete(ctx context.Context, id string) error
}

// GoalService is the goal API.
type GoalService interface {
	Create(ctx context.Context, goal models.Goal) (models.Goal, error)
	Get(ctx context.Context, id string) (models.Goal, error)
	List(ctx context.Context) ([]models.Goal, error)
	ListByStatus(ctx context.Context, status models.GoalStatus) ([]models.Goal, error)
	ListByPeriod(ctx context.Context, periodID string) ([]models.Goal, error)
	Update(ctx context.Context, id string, patch models.GoalUpdate) (models.Goal, error)
	ToggleMilestone(ctx context.Context, goalID, milestoneID string) (models.Goal, error)
	AddMilestone(ctx context.Context, goalID, title string) (models.Goal, error)
	SetProgress(ctx context.Context, goalID string, progress int) (models.Goal, error)
	Delete(ctx context.Context, id string) error
}

// HabitService is the habit API.
type HabitService interface {
	Create(ctx context.Context, habit models.Habit) (models.Habit, error)
	Get(ctx context.Context, id string) (models.Habit, error)
	List(ctx context.Context) ([]models.Habit, error)
	ListByPeriod(ctx context.Context, periodID string) ([]models.Habit, error)
	Update(ctx context.Context, id string, patch models.HabitUpdate) (models.Habit, error)
	Complete(ctx context.Context, habitID string, date time.Time) (models.Habit, error)
	Uncomplete(ctx context.Context, habitID string, date time.Time) (models.Habit, error)
	Delete(ctx context.Context, id string) error
}

// PeriodService is the tracking period API.
type PeriodService interface {
	Create(ctx context.Context, period models.Period) (models.Period, error)
	Get(ctx context.Context, id string) (models.Period, error)
	List(ctx context.Context) ([]models.Period, error)
	Active(ctx context.Context) (models.Period, error)
	Activate(ctx context.Context, id string) (models.Period, error)
	End(ctx context.Context, id string, endDate time.Time) (models.Period, error)
	Delete(ctx context.Context, id string) error
}

// AccountService covers the device account and the session.
type AccountService interface {
	State() auth.State
	CreateAccount(ctx context.Context, birthDate time.Time, passphrase string) (models.User, error)
	Login(ctx context.Context, passphrase string) error
	Logout()
	Current(ctx context.Context) (models.User, error)
	UpdateProfile(ctx context.Context, patch models.UserUpdate) (models.User, error)
	DeleteAccount(ctx context.Context) error
}

// SyncService exposes the sync queue to the status API and the CLI.
type SyncService interface {
	Status(ctx context.Context) models.SyncStatus
	Operations(ctx context.Context) []models.SyncOperation
	Drain(ctx context.Context) (models.DrainResult, error)
	RetryFailed(ctx context.Context) (int, error)
	ClearFailed(ctx context.Context) (int, error)
	SetOnline(ctx context.Context, online bool)
}

// AppInfoService reports build metadata.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}

// Authenticator is the part of the session gate the account service drives.
type Authenticator interface {
	State() auth.State
	CreateAccount(ctx context.Context, birthDate time.Time, passphrase string) (models.User, error)
	Authenticate(ctx context.Context, passphrase string) error
	Logout()
	Forget()
	RefreshUser(u models.User)
}

// SyncQueue is the part of the sync queue the sync service drives.
type SyncQueue interface {
	Status() models.SyncStatus
	Operations() []models.SyncOperation
	ProcessSyncQueue(ctx context.Context) (models.DrainResult, error)
	RetryFailedOperations(ctx context.Context) (int, error)
	ClearFailedOperations(ctx context.Context) (int, error)
	SetOnline(online bool)
}
