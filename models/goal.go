// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strings"
	"time"

	"github.com/MKhiriev/daybook/internal/errs"
)

// GoalStatus is the lifecycle state of a goal. It is stored in plaintext so
// goals can be filtered without decryption.
type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalAbandoned GoalStatus = "abandoned"
)

// Valid reports whether s is a known goal status.
func (s GoalStatus) Valid() bool {
	switch s {
	case GoalActive, GoalCompleted, GoalAbandoned:
		return true
	}
	return false
}

// Milestone is a checkable step of a goal.
type Milestone struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Goal is a decrypted goal as returned to callers.
type Goal struct {
	ID       string  `json:"id"`
	UserID   string  `json:"userId"`
	PeriodID *string `json:"periodId,omitempty"`

	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Milestones  []Milestone `json:"milestones,omitempty"`
	TargetDate  *time.Time  `json:"targetDate,omitempty"`

	Status      GoalStatus `json:"status"`
	Progress    int        `json:"progress"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	Corrupted bool `json:"corrupted,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GoalPayload is the encrypted part of a goal.
type GoalPayload struct {
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Milestones  []Milestone `json:"milestones,omitempty"`
	TargetDate  *time.Time  `json:"targetDate,omitempty"`
}

// Kind implements codec.Payload.
func (GoalPayload) Kind() EntityKind { return EntityGoal }

// Validate implements codec.Payload.
func (p GoalPayload) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return errs.NewValidationError("title", "is required")
	}
	for _, m := range p.Milestones {
		if m.ID == "" {
			return errs.NewValidationError("milestones.id", "is required")
		}
		if strings.TrimSpace(m.Title) == "" {
			return errs.NewValidationError("milestones.title", "is required")
		}
	}
	return nil
}

// GoalRecord is the stored row of a goal.
type GoalRecord struct {
	EncryptedEntity

	Status      GoalStatus `json:"status"`
	Progress    int        `json:"progress"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// TableName returns the name of the local table holding goals.
func (GoalRecord) TableName() string {
	return "goals"
}

// GoalUpdate is a partial update of a goal. A status change to completed
// stamps CompletedAt; any other status clears it.
type GoalUpdate struct {
	PeriodID    *string     `json:"periodId,omitempty"`
	Title       *string     `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	TargetDate  *time.Time  `json:"targetDate,omitempty"`
	Status      *GoalStatus `json:"status,omitempty"`
}
