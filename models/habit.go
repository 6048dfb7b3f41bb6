// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strings"
	"time"

	"github.com/MKhiriev/daybook/internal/errs"
)

// Frequency is how often a habit is expected to be completed.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// Valid reports whether f is a known frequency.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// Habit is a decrypted habit as returned to callers.
type Habit struct {
	ID       string  `json:"id"`
	UserID   string  `json:"userId"`
	PeriodID *string `json:"periodId,omitempty"`

	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Frequency   Frequency `json:"frequency"`

	// Completions holds completion days in ascending order, one per day.
	Completions []time.Time `json:"completions,omitempty"`

	CurrentStreak int `json:"currentStreak"`
	LongestStreak int `json:"longestStreak"`

	Corrupted bool `json:"corrupted,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HabitPayload is the encrypted part of a habit. Completion days are kept
// encrypted as [DateLayout] strings.
type HabitPayload struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Completions []string `json:"completions,omitempty"`
}

// Kind implements codec.Payload.
func (HabitPayload) Kind() EntityKind { return EntityHabit }

// Validate implements codec.Payload.
func (p HabitPayload) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errs.NewValidationError("name", "is required")
	}
	for _, d := range p.Completions {
		if _, err := time.Parse(DateLayout, d); err != nil {
			return errs.NewValidationError("completions", "contains a malformed date")
		}
	}
	return nil
}

// HabitRecord is the stored row of a habit.
type HabitRecord struct {
	EncryptedEntity

	Frequency     Frequency `json:"frequency"`
	CurrentStreak int       `json:"currentStreak"`
	LongestStreak int       `json:"longestStreak"`
}

// TableName returns the name of the local table holding habits.
func (HabitRecord) TableName() string {
	return "habits"
}

// HabitUpdate is a partial update of a habit.
type HabitUpdate struct {
	PeriodID    *string    `json:"periodId,omitempty"`
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	Frequency   *Frequency `json:"frequency,omitempty"`
}

// Streaks is the result of a streak calculation.
type Streaks struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}
