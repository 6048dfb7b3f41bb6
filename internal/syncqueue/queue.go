// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package syncqueue is the durable, ordered log of local mutations waiting
// to be replayed against the remote store.
//
// Every AddOperation is persisted before it returns, so no local write
// depends on the network. Drains are single-flight and run only while the
// queue is online.
package syncqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MKhiriev/daybook/internal/errs"
	"github.com/MKhiriev/daybook/internal/logger"
	"github.com/MKhiriev/daybook/internal/utils"
	"github.com/MKhiriev/daybook/models"
)

// StorageKey is the KV key the queue state is stored under.
const StorageKey = "sync-queue"

// DefaultMaxRetries is how many failed pushes turn an operation failed.
const DefaultMaxRetries = 3

type idGenerator interface {
	Generate() string
}

// Option configures a Queue.
type Option func(*Queue)

// WithMaxRetries overrides DefaultMaxRetries.
func WithMaxRetries(n int) Option {
	return func(q *Queue) {
		if n > 0 {
			q.maxRetries = n
		}
	}
}

// WithClock replaces time.Now for operation and sync timestamps.
func WithClock(clock func() time.Time) Option {
	return func(q *Queue) {
		q.clock = clock
	}
}

// WithIDGenerator replaces the UUIDv7 operation ids.
func WithIDGenerator(ids idGenerator) Option {
	return func(q *Queue) {
		q.ids = ids
	}
}

// WithOnline sets the initial network state. The default is offline.
func WithOnline(online bool) Option {
	return func(q *Queue) {
		q.online.Store(online)
	}
}

// Queue is the sync queue. It is safe for concurrent use.
type Queue struct {
	kv         KV
	remote     Remote
	logger     *logger.Logger
	ids        idGenerator
	clock      func() time.Time
	maxRetries int

	mu       sync.Mutex
	loaded   bool
	ops      []models.SyncOperation
	lastSync *time.Time

	online   atomic.Bool
	draining atomic.Bool

	listenersMu sync.Mutex
	listeners   map[int]Listener
	nextID      int

	lifeMu sync.Mutex
	closed bool
	ctx    context.Context
	cancel context.CancelFunc
	drains sync.WaitGroup
}

// New returns a queue persisting into kv and pushing to remote. The
// persisted state is loaded by Init or by the first call that needs it.
func New(kv KV, remote Remote, log *logger.Logger, opts ...Option) *Queue {
	ctx, cancel := context.WithCancel(context.Background())
	q := &Queue{
		kv:         kv,
		remote:     remote,
		logger:     log,
		ids:        utils.NewUUIDGenerator(),
		clock:      time.Now,
		maxRetries: DefaultMaxRetries,
		listeners:  make(map[int]Listener),
		ctx:        ctx,
		cancel:     cancel,
	}
	if q.logger == nil {
		q.logger = logger.Nop()
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Init loads the persisted queue. A missing or unreadable blob yields an
// empty queue. Operations left in syncing by an interrupted drain are
// pending again.
func (q *Queue) Init(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.ensureLoaded(ctx)
}

// ensureLoaded reads the persisted state once. Callers hold q.mu.
func (q *Queue) ensureLoaded(ctx context.Context) error {
	if q.loaded {
		return nil
	}

	raw, err := q.kv.Get(ctx, StorageKey)
	if err != nil {
		q.logger.Err(err).Str("func", "Queue.Init").Msg("failed to read sync queue")
		return fmt.Errorf("%w: %w", ErrLoadingQueue, err)
	}

	var state models.SyncQueueState
	if len(raw) > 0 {
		if err = json.Unmarshal(raw, &state); err != nil {
			q.logger.Err(err).Str("func", "Queue.Init").Msg("persisted sync queue is corrupted, starting empty")
			state = models.SyncQueueState{}
		}
	}

	reset := 0
	for i := range state.Operations {
		if state.Operations[i].Status == models.StatusSyncing {
			state.Operations[i].Status = models.StatusPending
			reset++
		}
	}

	q.ops = state.Operations
	q.lastSync = state.LastSyncTimestamp
	q.loaded = true

	if reset > 0 || state.IsSyncing {
		q.logger.Info().Str("func", "Queue.Init").Int("reset", reset).Msg("recovered interrupted drain")
	}
	if err = q.persist(ctx); err != nil {
		return err
	}

	q.updateGauges()
	return nil
}

// AddOperation appends a pending operation and persists the queue before
// returning. data is marshalled to JSON unless it already is raw JSON.
// When online, a drain is started in the background.
func (q *Queue) AddOperation(ctx context.Context, opType models.OperationType, entity models.EntityKind, entityID string, data any) error {
	if !opType.Valid() {
		return errs.NewValidationError("type", fmt.Sprintf("unknown operation type %q", opType))
	}
	if !entity.Valid() {
		return errs.NewValidationError("entity", fmt.Sprintf("unknown entity %q", entity))
	}
	if entityID == "" {
		return errs.NewValidationError("entityId", "is required")
	}

	payload, err := marshalData(data)
	if err != nil {
		return err
	}

	if q.isClosed() {
		return ErrQueueClosed
	}

	op := models.SyncOperation{
		ID:        q.ids.Generate(),
		Type:      opType,
		Entity:    entity,
		EntityID:  entityID,
		Data:      payload,
		Timestamp: q.clock().UTC(),
		Status:    models.StatusPending,
	}

	q.mu.Lock()
	if err = q.ensureLoaded(ctx); err != nil {
		q.mu.Unlock()
		return err
	}
	q.ops = append(q.ops, op)
	if err = q.persist(ctx); err != nil {
		q.ops = q.ops[:len(q.ops)-1]
		q.mu.Unlock()
		return err
	}
	q.mu.Unlock()

	logger.FromContext(ctx).Debug().
		Str("func", "Queue.AddOperation").
		Str("op_id", op.ID).
		Str("entity", string(entity)).
		Str("type", string(opType)).
		Msg("operation queued")

	q.notify()
	q.drainAsync()
	return nil
}

// RetryFailedOperations makes every failed operation pending again with a
// zero retry count and starts a drain when online. It returns how many
// operations were reset.
func (q *Queue) RetryFailedOperations(ctx context.Context) (int, error) {
	q.mu.Lock()
	if err := q.ensureLoaded(ctx); err != nil {
		q.mu.Unlock()
		return 0, err
	}

	n := 0
	for i := range q.ops {
		if q.ops[i].Status == models.StatusFailed {
			q.ops[i].Status = models.StatusPending
			q.ops[i].RetryCount = 0
			q.ops[i].Error = ""
			n++
		}
	}
	err := q.persist(ctx)
	q.mu.Unlock()
	if err != nil {
		return 0, err
	}

	q.notify()
	q.drainAsync()
	return n, nil
}

// ClearFailedOperations deletes every failed operation. The mutations they
// described are never sent.
func (q *Queue) ClearFailedOperations(ctx context.Context) (int, error) {
	q.mu.Lock()
	if err := q.ensureLoaded(ctx); err != nil {
		q.mu.Unlock()
		return 0, err
	}

	kept := q.ops[:0:0]
	for _, op := range q.ops {
		if op.Status != models.StatusFailed {
			kept = append(kept, op)
		}
	}
	n := len(q.ops) - len(kept)
	prev := q.ops
	q.ops = kept
	if err := q.persist(ctx); err != nil {
		q.ops = prev
		q.mu.Unlock()
		return 0, err
	}
	q.mu.Unlock()

	if n > 0 {
		q.logger.Warn().Str("func", "Queue.ClearFailedOperations").Int("cleared", n).Msg("failed operations discarded")
	}
	q.notify()
	return n, nil
}

// SetOnline records the network state. Going online starts a drain; going
// offline only flips the flag.
func (q *Queue) SetOnline(online bool) {
	prev := q.online.Swap(online)
	if prev == online {
		return
	}

	q.logger.Info().Str("func", "Queue.SetOnline").Bool("online", online).Msg("network state changed")
	q.notify()
	if online {
		q.drainAsync()
	}
}

// OnQueueChange registers listener and returns a function removing it.
// Listeners run synchronously on the goroutine that changed the queue.
func (q *Queue) OnQueueChange(listener Listener) (unsubscribe func()) {
	q.listenersMu.Lock()
	id := q.nextID
	q.nextID++
	q.listeners[id] = listener
	q.listenersMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			q.listenersMu.Lock()
			delete(q.listeners, id)
			q.listenersMu.Unlock()
		})
	}
}

// Status returns a snapshot of the queue health.
func (q *Queue) Status() models.SyncStatus {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.statusLocked()
}

func (q *Queue) statusLocked() models.SyncStatus {
	s := models.SyncStatus{
		Online:  q.online.Load(),
		Syncing: q.draining.Load(),
	}
	for _, op := range q.ops {
		switch op.Status {
		case models.StatusPending, models.StatusSyncing:
			s.Pending++
		case models.StatusFailed:
			s.Failed++
		}
	}
	if q.lastSync != nil {
		t := *q.lastSync
		s.LastSyncTimestamp = &t
	}
	return s
}

// GetPendingCount returns the operations not yet pushed, including the
// one being pushed.
func (q *Queue) GetPendingCount() int {
	return q.Status().Pending
}

// GetFailedCount returns the operations that reached the retry ceiling.
func (q *Queue) GetFailedCount() int {
	return q.Status().Failed
}

func (q *Queue) IsNetworkOnline() bool {
	return q.online.Load()
}

func (q *Queue) IsSyncInProgress() bool {
	return q.draining.Load()
}

// Operations returns a copy of the queued operations in insertion order.
func (q *Queue) Operations() []models.SyncOperation {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]models.SyncOperation, len(q.ops))
	for i, op := range q.ops {
		op.Data = append(json.RawMessage(nil), op.Data...)
		out[i] = op
	}
	return out
}

// LastSyncTimestamp returns the end of the last drain, or nil.
func (q *Queue) LastSyncTimestamp() *time.Time {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.lastSync == nil {
		return nil
	}
	t := *q.lastSync
	return &t
}

// Close cancels running drains and waits for them to return. Operations
// they did not finish stay pending.
func (q *Queue) Close() {
	q.lifeMu.Lock()
	q.closed = true
	q.lifeMu.Unlock()

	q.cancel()
	q.drains.Wait()
}

func (q *Queue) isClosed() bool {
	q.lifeMu.Lock()
	defer q.lifeMu.Unlock()
	return q.closed
}

// persist writes the queue. Callers hold q.mu.
func (q *Queue) persist(ctx context.Context) error {
	state := models.SyncQueueState{
		Operations:        q.ops,
		LastSyncTimestamp: q.lastSync,
		IsSyncing:         q.draining.Load(),
	}
	if state.Operations == nil {
		state.Operations = []models.SyncOperation{}
	}

	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistingQueue, err)
	}

	if err = q.kv.Put(context.WithoutCancel(ctx), StorageKey, raw); err != nil {
		q.logger.Err(err).Str("func", "Queue.persist").Msg("failed to persist sync queue")
		return fmt.Errorf("%w: %w", ErrPersistingQueue, err)
	}
	return nil
}

func (q *Queue) notify() {
	q.mu.Lock()
	status := q.statusLocked()
	q.mu.Unlock()

	pendingGauge.Set(float64(status.Pending))
	failedGauge.Set(float64(status.Failed))

	q.listenersMu.Lock()
	listeners := make([]Listener, 0, len(q.listeners))
	for _, l := range q.listeners {
		listeners = append(listeners, l)
	}
	q.listenersMu.Unlock()

	for _, l := range listeners {
		l(status)
	}
}

// updateGauges refreshes the metrics. Callers hold q.mu.
func (q *Queue) updateGauges() {
	status := q.statusLocked()
	pendingGauge.Set(float64(status.Pending))
	failedGauge.Set(float64(status.Failed))
}

func marshalData(data any) (json.RawMessage, error) {
	switch v := data.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		if !json.Valid(v) {
			return nil, fmt.Errorf("%w: invalid raw JSON", ErrMarshalingData)
		}
		return append(json.RawMessage(nil), v...), nil
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMarshalingData, err)
	}
	return raw, nil
}
