// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Ciphertext is the output of a single authenticated encryption call.
// Both fields are standard base64. IV is 12 random bytes, unique per call.
type Ciphertext struct {
	Data string `json:"ciphertext"`
	IV   string `json:"iv"`
}

// EncryptedEntity is the storage shape shared by journal entries, goals and
// habits. EncryptedPayload and IV never carry plaintext; everything the store
// must filter on lives in the entity-specific plaintext columns next to it.
type EncryptedEntity struct {
	ID       string  `json:"id"`
	UserID   string  `json:"userId"`
	PeriodID *string `json:"periodId,omitempty"`

	EncryptedPayload string `json:"encryptedPayload"`
	IV               string `json:"iv"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Entity returns the entity itself; records embedding EncryptedEntity
// inherit it.
func (e EncryptedEntity) Entity() EncryptedEntity {
	return e
}

// Ciphertext returns the encrypted part of the entity.
func (e EncryptedEntity) Ciphertext() Ciphertext {
	return Ciphertext{Data: e.EncryptedPayload, IV: e.IV}
}

// SetCiphertext replaces the encrypted part of the entity.
func (e *EncryptedEntity) SetCiphertext(c Ciphertext) {
	e.EncryptedPayload = c.Data
	e.IV = c.IV
}

// EntityKind tags an encrypted payload with the entity it belongs to.
type EntityKind string

const (
	EntityJournal EntityKind = "journal"
	EntityGoal    EntityKind = "goal"
	EntityHabit   EntityKind = "habit"
	EntityUser    EntityKind = "user"
	EntityPeriod  EntityKind = "period"
)

// Valid reports whether k is one of the known entity kinds.
func (k EntityKind) Valid() bool {
	switch k {
	case EntityJournal, EntityGoal, EntityHabit, EntityUser, EntityPeriod:
		return true
	}
	return false
}
