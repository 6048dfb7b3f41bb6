// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strings"
	"time"

	"github.com/MKhiriev/daybook/internal/errs"
)

// DateLayout is the calendar date format used for plaintext date columns
// and for dates inside encrypted payloads.
const DateLayout = "2006-01-02"

// JournalEntry is a decrypted journal entry as returned to callers.
type JournalEntry struct {
	ID       string  `json:"id"`
	UserID   string  `json:"userId"`
	PeriodID *string `json:"periodId,omitempty"`

	// Date is the calendar day the entry belongs to.
	Date time.Time `json:"date"`

	Title   string   `json:"title,omitempty"`
	Content string   `json:"content"`
	Mood    string   `json:"mood,omitempty"`
	Tags    []string `json:"tags,omitempty"`

	// Corrupted marks a placeholder returned in place of an entry that
	// could not be decrypted. Only ID, Date and timestamps are meaningful.
	Corrupted bool `json:"corrupted,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// JournalPayload is the encrypted part of a journal entry.
type JournalPayload struct {
	Title   string   `json:"title,omitempty"`
	Content string   `json:"content"`
	Mood    string   `json:"mood,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

// Kind implements codec.Payload.
func (JournalPayload) Kind() EntityKind { return EntityJournal }

// Validate implements codec.Payload.
func (p JournalPayload) Validate() error {
	if strings.TrimSpace(p.Content) == "" {
		return errs.NewValidationError("content", "is required")
	}
	for _, tag := range p.Tags {
		if strings.TrimSpace(tag) == "" {
			return errs.NewValidationError("tags", "must not contain empty tags")
		}
	}
	return nil
}

// JournalRecord is the stored row of a journal entry.
type JournalRecord struct {
	EncryptedEntity

	// Date is the entry day in [DateLayout]; kept plaintext for range queries.
	Date string `json:"date"`
}

// TableName returns the name of the local table holding journal entries.
func (JournalRecord) TableName() string {
	return "entries"
}

// JournalEntryUpdate is a partial update of a journal entry.
type JournalEntryUpdate struct {
	Date     *time.Time `json:"date,omitempty"`
	PeriodID *string    `json:"periodId,omitempty"`
	Title    *string    `json:"title,omitempty"`
	Content  *string    `json:"content,omitempty"`
	Mood     *string    `json:"mood,omitempty"`
	Tags     []string   `json:"tags,omitempty"`
}

// Page is one page of a paginated listing.
type Page[T any] struct {
	Items    []T  `json:"items"`
	Total    int  `json:"total"`
	Page     int  `json:"page"`
	PageSize int  `json:"pageSize"`
	HasMore  bool `json:"hasMore"`
}
