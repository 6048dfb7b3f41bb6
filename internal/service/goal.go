package service

import (
	"context"

	"github.com/MKhiriev/daybook/internal/logger"
	"github.com/MKhiriev/daybook/internal/repository"
	"github.com/MKhiriev/daybook/models"
)

type goalService struct {
	repo   repository.GoalRepository
	logger *logger.Logger
}

func NewGoalService(repo repository.GoalRepository, log *logger.Logger) GoalService {
	return &goalService{repo: repo, logger: log}
}

func (s *goalService) Create(ctx context.Context, goal models.Goal) (models.Goal, error) {
	created, err := s.repo.Create(ctx, goal)
	if err != nil {
		return created, fail(s.logger, CodeCreateGoal, "*goalService.Create", err)
	}
	return created, nil
}

func (s *goalService) Get(ctx context.Context, id string) (models.Goal, error) {
	goal, err := s.repo.Get(ctx, id)
	if err != nil {
		return models.Goal{}, fail(s.logger, CodeGetGoals, "*goalService.Get", err)
	}
	return goal, nil
}

func (s *goalService) List(ctx context.Context) ([]models.Goal, error) {
	goals, err := s.repo.ListByUser(ctx)
	if err != nil {
		return nil, fail(s.logger, CodeGetGoals, "*goalService.List", err)
	}
	return goals, nil
}

func (s *goalService) ListByStatus(ctx context.Context, status models.GoalStatus) ([]models.Goal, error) {
	goals, err := s.repo.GetByStatus(ctx, status)
	if err != nil {
		return nil, fail(s.logger, CodeGetGoals, "*goalService.ListByStatus", err)
	}
	return goals, nil
}

func (s *goalService) ListByPeriod(ctx context.Context, periodID string) ([]models.Goal, error) {
	goals, err := s.repo.GetByPeriod(ctx, periodID)
	if err != nil {
		return nil, fail(s.logger, CodeGetGoals, "*goalService.ListByPeriod", err)
	}
	return goals, nil
}

func (s *goalService) Update(ctx context.Context, id string, patch models.GoalUpdate) (models.Goal, error) {
	return s.update("*goalService.Update", func() (models.Goal, error) {
		return s.repo.Update(ctx, id, patch)
	})
}

func (s *goalService) ToggleMilestone(ctx context.Context, goalID, milestoneID string) (models.Goal, error) {
	return s.update("*goalService.ToggleMilestone", func() (models.Goal, error) {
		return s.repo.ToggleMilestone(ctx, goalID, milestoneID)
	})
}

func (s *goalService) AddMilestone(ctx context.Context, goalID, title string) (models.Goal, error) {
	return s.update("*goalService.AddMilestone", func() (models.Goal, error) {
		return s.repo.AddMilestone(ctx, goalID, title)
	})
}

func (s *goalService) SetProgress(ctx context.Context, goalID string, progress int) (models.Goal, error) {
	return s.update("*goalService.SetProgress", func() (models.Goal, error) {
		return s.repo.UpdateProgress(ctx, goalID, progress)
	})
}

func (s *goalService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fail(s.logger, CodeDeleteGoal, "*goalService.Delete", err)
	}
	return nil
}

func (s *goalService) update(op string, call func() (models.Goal, error)) (models.Goal, error) {
	goal, err := call()
	if err != nil {
		return goal, fail(s.logger, CodeUpdateGoal, op, err)
	}
	return goal, nil
}
