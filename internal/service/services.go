// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service is the API the UI, the CLI and the status handlers call.
//
// Each service forwards to a repository, the session gate or the sync
// queue and turns every failure into an *Error carrying a stable Code and
// a user-facing Message. Raw causes are logged, never shown.
package service

import (
	"github.com/MKhiriev/daybook/internal/config"
	"github.com/MKhiriev/daybook/internal/logger"
	"github.com/MKhiriev/daybook/internal/repository"
	"github.com/MKhiriev/daybook/models"
)

// Services groups every domain service.
type Services struct {
	Journal JournalService
	Goals   GoalService
	Habits  HabitService
	Periods PeriodService
	Account AccountService
	Sync    SyncService
	AppInfo AppInfoService
}

// NewServices wires the services over repos, gate and queue.
func NewServices(repos *repository.Repositories, gate Authenticator, queue SyncQueue, cfg config.App, build models.AppBuildInfo, log *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg, build, log)
	if err != nil {
		return nil, err
	}

	return &Services{
		Journal: NewJournalService(repos.Journal, log),
		Goals:   NewGoalService(repos.Goals, log),
		Habits:  NewHabitService(repos.Habits, log),
		Periods: NewPeriodService(repos.Periods, log),
		Account: NewAccountService(gate, repos.Users, log),
		Sync:    NewSyncService(queue, log),
		AppInfo: appInfo,
	}, nil
}
