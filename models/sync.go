// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// OperationType is the kind of mutation a SyncOperation replays.
type OperationType string

const (
	OperationCreate OperationType = "create"
	OperationUpdate OperationType = "update"
	OperationDelete OperationType = "delete"
)

// Valid reports whether t is a known operation type.
func (t OperationType) Valid() bool {
	switch t {
	case OperationCreate, OperationUpdate, OperationDelete:
		return true
	}
	return false
}

// OperationStatus is the lifecycle state of a SyncOperation.
//
//	pending -> syncing -> (removed on success)
//	                   -> pending (retryCount < max) | failed (retryCount >= max)
type OperationStatus string

const (
	StatusPending   OperationStatus = "pending"
	StatusSyncing   OperationStatus = "syncing"
	StatusFailed    OperationStatus = "failed"
	StatusCompleted OperationStatus = "completed"
)

// SyncOperation is one queued, retryable mutation destined for the remote
// store. Data is exactly what gets transmitted; content fields inside it are
// already encrypted.
type SyncOperation struct {
	ID         string          `json:"id"`
	Type       OperationType   `json:"type"`
	Entity     EntityKind      `json:"entity"`
	EntityID   string          `json:"entityId"`
	Data       json.RawMessage `json:"data,omitempty"`
	Timestamp  time.Time       `json:"timestamp"`
	RetryCount int             `json:"retryCount"`
	Status     OperationStatus `json:"status"`
	Error      string          `json:"error,omitempty"`
}

// SyncQueueState is the persisted representation of the sync queue stored
// under the "sync-queue" key.
type SyncQueueState struct {
	Operations        []SyncOperation `json:"operations"`
	LastSyncTimestamp *time.Time      `json:"lastSyncTimestamp"`
	IsSyncing         bool            `json:"isSyncing"`
}

// SyncStatus is a read-only snapshot of queue health for status indicators.
type SyncStatus struct {
	Pending           int        `json:"pending"`
	Failed            int        `json:"failed"`
	Online            bool       `json:"online"`
	Syncing           bool       `json:"syncing"`
	LastSyncTimestamp *time.Time `json:"lastSyncTimestamp,omitempty"`
}

// DrainResult summarises one drain of the sync queue.
type DrainResult struct {
	// Skipped is set when the drain did nothing because another drain was
	// running or the queue is offline.
	Skipped bool `json:"skipped"`
	Offline bool `json:"offline,omitempty"`

	Attempted int `json:"attempted"`
	Succeeded int `json:"succeeded"`
	Requeued  int `json:"requeued"`
	Failed    int `json:"failed"`
}

// OperationsResponse lists the queued operations in FIFO order.
type OperationsResponse struct {
	Operations []SyncOperation `json:"operations"`
	Length     int             `json:"length"`
}

// AffectedResponse reports how many operations a queue action changed.
type AffectedResponse struct {
	Affected int `json:"affected"`
}
