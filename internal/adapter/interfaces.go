// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter talks to the remote sync endpoint.
//
// [RemoteAdapter] decouples the sync queue and the connectivity monitor
// from the transport. The package ships an HTTP/REST implementation
// ([NewHTTPRemoteAdapter]) built on resty.
//
// Non-2xx responses are mapped to the sentinels in errors.go by
// mapHTTPError so callers can use [errors.Is] (e.g. [ErrUnauthorized] for
// 401, [ErrRateLimited] for 429).
package adapter

import (
	"context"

	"github.com/MKhiriev/daybook/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_adapter_mock.go -package=mock

// RemoteAdapter replays queued operations against the remote store.
type RemoteAdapter interface {
	// SetToken stores the bearer token attached to every subsequent
	// request.
	SetToken(token string)

	// Token returns the stored bearer token, or "".
	Token() string

	// Push sends one operation. The operation JSON is the request body; its
	// data already carries ciphertext only. An expired bearer token fails
	// with [ErrTokenExpired] before any request is made.
	Push(ctx context.Context, op models.SyncOperation) error

	// Ping reports whether the remote endpoint is reachable.
	Ping(ctx context.Context) error
}
