package service

import (
	"context"
	"time"

	"github.com/MKhiriev/daybook/internal/logger"
	"github.com/MKhiriev/daybook/internal/repository"
	"github.com/MKhiriev/daybook/models"
)

type periodService struct {
	repo   repository.PeriodRepository
	logger *logger.Logger
}

func NewPeriodService(repo repository.PeriodRepository, log *logger.Logger) PeriodService {
	return &periodService{repo: repo, logger: log}
}

func (s *periodService) Create(ctx context.Context, period models.Period) (models.Period, error) {
	created, err := s.repo.Create(ctx, period)
	if err != nil {
		return created, fail(s.logger, CodeCreatePeriod, "*periodService.Create", err)
	}
	return created, nil
}

func (s *periodService) Get(ctx context.Context, id string) (models.Period, error) {
	period, err := s.repo.Get(ctx, id)
	if err != nil {
		return models.Period{}, fail(s.logger, CodeGetPeriods, "*periodService.Get", err)
	}
	return period, nil
}

func (s *periodService) List(ctx context.Context) ([]models.Period, error) {
	periods, err := s.repo.ListByUser(ctx)
	if err != nil {
		return nil, fail(s.logger, CodeGetPeriods, "*periodService.List", err)
	}
	return periods, nil
}

func (s *periodService) Active(ctx context.Context) (models.Period, error) {
	period, err := s.repo.GetActive(ctx)
	if err != nil {
		return models.Period{}, fail(s.logger, CodeGetPeriods, "*periodService.Active", err)
	}
	return period, nil
}

func (s *periodService) Activate(ctx context.Context, id string) (models.Period, error) {
	period, err := s.repo.SetActive(ctx, id)
	if err != nil {
		return period, fail(s.logger, CodeUpdatePeriod, "*periodService.Activate", err)
	}
	return period, nil
}

func (s *periodService) End(ctx context.Context, id string, endDate time.Time) (models.Period, error) {
	period, err := s.repo.End(ctx, id, endDate)
	if err != nil {
		return period, fail(s.logger, CodeUpdatePeriod, "*periodService.End", err)
	}
	return period, nil
}

func (s *periodService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fail(s.logger, CodeDeletePeriod, "*periodService.Delete", err)
	}
	return nil
}
