// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// DefaultPeriodName is the name of the tracking period created together with
// a new account.
const DefaultPeriodName = "Initial period"

// Period is a tracking period goals, habits and entries can be attached to.
// At most one period per user is active at a time.
type Period struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Name      string     `json:"name"`
	StartDate time.Time  `json:"startDate"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	IsActive  bool       `json:"isActive"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// TableName returns the name of the local table holding periods.
func (p Period) TableName() string {
	return "periods"
}
