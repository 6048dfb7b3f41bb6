package service

import (
	"context"
	"time"

	"github.com/MKhiriev/daybook/internal/logger"
	"github.com/MKhiriev/daybook/internal/repository"
	"github.com/MKhiriev/daybook/models"
)

type habitService struct {
	repo   repository.HabitRepository
	logger *logger.Logger
}

func NewHabitService(repo repository.HabitRepository, log *logger.Logger) HabitService {
	return &habitService{repo: repo, logger: log}
}

func (s *habitService) Create(ctx context.Context, habit models.Habit) (models.Habit, error) {
	created, err := s.repo.Create(ctx, habit)
	if err != nil {
		return created, fail(s.logger, CodeCreateHabit, "*habitService.Create", err)
	}
	return created, nil
}

func (s *habitService) Get(ctx context.Context, id string) (models.Habit, error) {
	habit, err := s.repo.Get(ctx, id)
	if err != nil {
		return models.Habit{}, fail(s.logger, CodeGetHabits, "*habitService.Get", err)
	}
	return habit, nil
}

func (s *habitService) List(ctx context.Context) ([]models.Habit, error) {
	habits, err := s.repo.ListByUser(ctx)
	if err != nil {
		return nil, fail(s.logger, CodeGetHabits, "*habitService.List", err)
	}
	return habits, nil
}

func (s *habitService) ListByPeriod(ctx context.Context, periodID string) ([]models.Habit, error) {
	habits, err := s.repo.GetByPeriod(ctx, periodID)
	if err != nil {
		return nil, fail(s.logger, CodeGetHabits, "*habitService.ListByPeriod", err)
	}
	return habits, nil
}

func (s *habitService) Update(ctx context.Context, id string, patch models.HabitUpdate) (models.Habit, error) {
	habit, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return habit, fail(s.logger, CodeUpdateHabit, "*habitService.Update", err)
	}
	return habit, nil
}

// Complete records a completion for date. Completing the same day twice
// is not an error.
func (s *habitService) Complete(ctx context.Context, habitID string, date time.Time) (models.Habit, error) {
	habit, err := s.repo.RecordCompletion(ctx, habitID, date)
	if err != nil {
		return habit, fail(s.logger, CodeUpdateHabit, "*habitService.Complete", err)
	}
	return habit, nil
}

func (s *habitService) Uncomplete(ctx context.Context, habitID string, date time.Time) (models.Habit, error) {
	habit, err := s.repo.RemoveCompletion(ctx, habitID, date)
	if err != nil {
		return habit, fail(s.logger, CodeUpdateHabit, "*habitService.Uncomplete", err)
	}
	return habit, nil
}

func (s *habitService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fail(s.logger, CodeDeleteHabit, "*habitService.Delete", err)
	}
	return nil
}
