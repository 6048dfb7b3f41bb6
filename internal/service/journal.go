package service

import (
	"context"
	"time"

	"github.com/MKhiriev/daybook/internal/logger"
	"github.com/MKhiriev/daybook/internal/repository"
	"github.com/MKhiriev/daybook/models"
)

type journalService struct {
	repo   repository.JournalRepository
	logger *logger.Logger
}

func NewJournalService(repo repository.JournalRepository, log *logger.Logger) JournalService {
	return &journalService{repo: repo, logger: log}
}

func (s *journalService) Create(ctx context.Context, entry models.JournalEntry) (models.JournalEntry, error) {
	created, err := s.repo.Create(ctx, entry)
	if err != nil {
		return created, fail(s.logger, CodeCreateJournalEntry, "*journalService.Create", err)
	}
	return created, nil
}

func (s *journalService) Get(ctx context.Context, id string) (models.JournalEntry, error) {
	entry, err := s.repo.Get(ctx, id)
	if err != nil {
		return models.JournalEntry{}, fail(s.logger, CodeGetJournalEntries, "*journalService.Get", err)
	}
	return entry, nil
}

func (s *journalService) List(ctx context.Context) ([]models.JournalEntry, error) {
	entries, err := s.repo.ListByUser(ctx)
	if err != nil {
		return nil, fail(s.logger, CodeGetJournalEntries, "*journalService.List", err)
	}
	return entries, nil
}

func (s *journalService) ListByDateRange(ctx context.Context, from, to time.Time) ([]models.JournalEntry, error) {
	entries, err := s.repo.GetByDateRange(ctx, from, to)
	if err != nil {
		return nil, fail(s.logger, CodeGetJournalEntries, "*journalService.ListByDateRange", err)
	}
	return entries, nil
}

func (s *journalService) ListByPeriod(ctx context.Context, periodID string) ([]models.JournalEntry, error) {
	entries, err := s.repo.GetByPeriod(ctx, periodID)
	if err != nil {
		return nil, fail(s.logger, CodeGetJournalEntries, "*journalService.ListByPeriod", err)
	}
	return entries, nil
}

func (s *journalService) ListPage(ctx context.Context, page, pageSize int) (models.Page[models.JournalEntry], error) {
	p, err := s.repo.GetEntriesPaginated(ctx, page, pageSize)
	if err != nil {
		return models.Page[models.JournalEntry]{}, fail(s.logger, CodeGetJournalEntries, "*journalService.ListPage", err)
	}
	return p, nil
}

func (s *journalService) Update(ctx context.Context, id string, patch models.JournalEntryUpdate) (models.JournalEntry, error) {
	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return updated, fail(s.logger, CodeUpdateJournalEntry, "*journalService.Update", err)
	}
	return updated, nil
}

func (s *journalService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fail(s.logger, CodeDeleteJournalEntry, "*journalService.Delete", err)
	}
	return nil
}
