// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/daybook/internal/config"
	"github.com/MKhiriev/daybook/internal/logger"
	"github.com/MKhiriev/daybook/internal/utils"
	"github.com/MKhiriev/daybook/models"
)

const testHashKey = "testhashkey"

// signedToken returns a bearer token shaped like the ones the remote issues,
// expiring after ttl.
func signedToken(t *testing.T, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwt.RegisteredClaims{
		Issuer:    "daybook",
		Subject:   "device-1",
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}).SignedString([]byte("sign"))
	require.NoError(t, err)
	return token
}

func newTestAdapter(t *testing.T, serverURL, hashKey string) *httpRemoteAdapter {
	t.Helper()
	adapterCfg := config.Adapter{HTTPAddress: serverURL, RequestTimeout: 5 * time.Second}
	appCfg := config.App{HashKey: hashKey}

	a, err := NewHTTPRemoteAdapter(adapterCfg, appCfg, logger.Nop())
	require.NoError(t, err)
	return a.(*httpRemoteAdapter)
}

func testOperation() models.SyncOperation {
	return models.SyncOperation{
		ID:        "op-1",
		Type:      models.OperationCreate,
		Entity:    models.EntityJournal,
		EntityID:  "e1",
		Data:      json.RawMessage(`{"id":"e1","encryptedPayload":"Y2lwaGVy","iv":"aXY="}`),
		Timestamp: time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC),
		Status:    models.StatusSyncing,
	}
}

// ── constructor ─────────────────────────────────────────────────────────────

func TestNewHTTPRemoteAdapter_Address(t *testing.T) {
	tests := []struct {
		name    string
		address string
		wantURL string
		wantErr error
	}{
		{name: "scheme kept", address: "https://sync.example.com/", wantURL: "https://sync.example.com"},
		{name: "scheme defaulted", address: "localhost:9000", wantURL: "http://localhost:9000"},
		{name: "empty", address: "  ", wantErr: ErrNoRemoteEndpoint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewHTTPRemoteAdapter(config.Adapter{HTTPAddress: tt.address}, config.App{}, logger.Nop())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, a.(*httpRemoteAdapter).client.BaseURL)
		})
	}
}

// ── Push ────────────────────────────────────────────────────────────────────

func TestPush_Success(t *testing.T) {
	op := testOperation()
	token := signedToken(t, time.Hour)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/sync/operations", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer "+token, r.Header.Get("Authorization"))
		assert.Equal(t, "op-1", r.Header.Get("Idempotency-Key"))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.True(t, utils.VerifyHash(body, r.Header.Get(HashHeader), testHashKey))

		var got models.SyncOperation
		assert.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, op.EntityID, got.EntityID)
		assert.JSONEq(t, string(op.Data), string(got.Data))

		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, testHashKey)
	a.SetToken(" " + token + " ")

	require.NoError(t, a.Push(context.Background(), op))
	assert.Equal(t, token, a.Token())
}

func TestPush_NoHashKeyNoHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get(HashHeader))
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")

	require.NoError(t, a.Push(context.Background(), testOperation()))
}

func TestPush_ExpiredTokenFailsLocally(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	token := signedToken(t, -time.Minute)

	a := newTestAdapter(t, srv.URL, testHashKey)
	a.SetToken(token)

	err := a.Push(context.Background(), testOperation())

	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.Zero(t, calls)
}

func TestPush_MalformedToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")
	a.SetToken("not-a-jwt")

	assert.ErrorIs(t, a.Push(context.Background(), testOperation()), ErrUnauthorized)
}

func TestPush_ErrorMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, ErrBadRequest},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusConflict, ErrConflict},
		{http.StatusTooManyRequests, ErrRateLimited},
		{http.StatusInternalServerError, ErrInternalServerError},
		{http.StatusBadGateway, ErrServiceUnavailable},
		{http.StatusServiceUnavailable, ErrServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("nope"))
			}))
			defer srv.Close()

			err := newTestAdapter(t, srv.URL, "").Push(context.Background(), testOperation())

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "nope")
		})
	}
}

func TestPush_UnmappedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	err := newTestAdapter(t, srv.URL, "").Push(context.Background(), testOperation())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 418")
}

func TestPush_ServerUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := newTestAdapter(t, url, "").Push(context.Background(), testOperation())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "push request")
}

// ── Ping ────────────────────────────────────────────────────────────────────

func TestPing(t *testing.T) {
	healthy := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ping", r.URL.Path)
		if !healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL, "")

	require.NoError(t, a.Ping(context.Background()))

	healthy = false
	assert.ErrorIs(t, a.Ping(context.Background()), ErrServiceUnavailable)
}
