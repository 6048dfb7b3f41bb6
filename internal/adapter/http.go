package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/daybook/internal/config"
	"github.com/MKhiriev/daybook/internal/logger"
	"github.com/MKhiriev/daybook/internal/utils"
	"github.com/MKhiriev/daybook/models"
)

// HashHeader carries the hex HMAC-SHA256 of the request body.
const HashHeader = "HashSHA256"

const (
	pushPath = "/api/sync/operations"
	pingPath = "/api/ping"
)

type httpRemoteAdapter struct {
	client *utils.HTTPClient

	hashKey string
	clock   func() time.Time

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPRemoteAdapter constructs the HTTP/REST implementation of
// [RemoteAdapter]. adapterCfg.HTTPAddress is normalised to a base URL; a
// missing scheme defaults to http. The HashSHA256 header is sent only when
// appCfg.HashKey is set.
func NewHTTPRemoteAdapter(adapterCfg config.Adapter, appCfg config.App, log *logger.Logger) (RemoteAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout)

	a := &httpRemoteAdapter{
		client:  client,
		hashKey: appCfg.HashKey,
		clock:   time.Now,
		logger:  log,
	}
	a.SetToken(adapterCfg.Token)
	return a, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrNoRemoteEndpoint
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [RemoteAdapter]. The token is whitespace-trimmed.
func (h *httpRemoteAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [RemoteAdapter].
func (h *httpRemoteAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Push implements [RemoteAdapter]. It POSTs the operation to
// POST /api/sync/operations.
func (h *httpRemoteAdapter) Push(ctx context.Context, op models.SyncOperation) error {
	body, err := json.Marshal(op)
	if err != nil {
		return fmt.Errorf("encode sync operation: %w", err)
	}

	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}
	if h.hashKey != "" {
		req.SetHeader(HashHeader, utils.HashString(string(body), h.hashKey))
	}

	resp, err := req.
		SetHeader("Content-Type", "application/json").
		SetHeader("Idempotency-Key", op.ID).
		SetBody(body).
		Post(pushPath)
	if err != nil {
		return fmt.Errorf("push request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		h.logger.Debug().
			Str("func", "*httpRemoteAdapter.Push").
			Str("op_id", op.ID).
			Int("status", resp.StatusCode()).
			Err(err).
			Msg("remote rejected operation")
		return err
	}

	return nil
}

// Ping implements [RemoteAdapter]. It GETs /api/ping; any 2xx is reachable.
func (h *httpRemoteAdapter) Ping(ctx context.Context) error {
	resp, err := h.client.R().SetContext(ctx).Get(pingPath)
	if err != nil {
		return fmt.Errorf("ping request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpRemoteAdapter) authedRequest(ctx context.Context) (*resty.Request, error) {
	req := h.client.R().SetContext(ctx)

	token := h.Token()
	if token == "" {
		return req, nil
	}

	exp, err := utils.TokenExpiry(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	if !exp.IsZero() && !h.clock().Before(exp) {
		return nil, fmt.Errorf("%w: expired at %s", ErrTokenExpired, exp.UTC().Format(time.RFC3339))
	}

	req.SetHeader("Authorization", "Bearer "+token)
	return req, nil
}
