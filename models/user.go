// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User is the single account that owns a device install.
//
// The passphrase is never stored. Salt is the only persisted artifact tying
// future logins to the original key derivation; it is not secret and is kept
// in plaintext as standard base64.
type User struct {
	// ID is the UUID of the user.
	ID string `json:"id"`

	// BirthDate is the user's birth date (time part is ignored).
	BirthDate time.Time `json:"birthDate"`

	// Salt is the base64 encoded key derivation salt.
	Salt string `json:"salt"`

	// Theme is the UI appearance preference ("system", "light", "dark").
	Theme string `json:"theme"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the local table holding users.
func (u User) TableName() string {
	return "users"
}

// UserUpdate is a partial update of the mutable user fields.
// Nil fields are left untouched.
type UserUpdate struct {
	BirthDate *time.Time `json:"birthDate,omitempty"`
	Theme     *string    `json:"theme,omitempty"`
}

// Known theme values.
const (
	ThemeSystem = "system"
	ThemeLight  = "light"
	ThemeDark   = "dark"
)
