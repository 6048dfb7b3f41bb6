// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/daybook/internal/logger"
	"github.com/MKhiriev/daybook/internal/mock"
	"github.com/MKhiriev/daybook/models"
)

const tick = 5 * time.Millisecond

func waitFor(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for worker")
	}
}

// ── Workers ───────────────────────────────────────────────────────────────────

type recordingWorker struct {
	id    int
	order *[]string
}

func (w *recordingWorker) Start(context.Context) {
	*w.order = append(*w.order, "start", string(rune('0'+w.id)))
}

func (w *recordingWorker) Stop() {
	*w.order = append(*w.order, "stop", string(rune('0'+w.id)))
}

func TestWorkers_StartStopOrder(t *testing.T) {
	var order []string
	ws := NewWorkers(
		&recordingWorker{id: 1, order: &order},
		&recordingWorker{id: 2, order: &order},
	)

	ws.Start(context.Background())
	ws.Stop()

	assert.Equal(t, []string{"start", "1", "start", "2", "stop", "2", "stop", "1"}, order)
}

func TestWorkers_Empty(t *testing.T) {
	ws := NewWorkers()
	ws.Start(context.Background())
	ws.Stop()
}

// ── ConnectivityMonitor ───────────────────────────────────────────────────────

func TestConnectivityMonitor_ReportsChangesOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mock.NewMockRemoteAdapter(ctrl)
	sink := mock.NewMockSyncQueue(ctrl)

	wentOffline := make(chan struct{})
	unreachable := errors.New("connection refused")

	gomock.InOrder(
		remote.EXPECT().Ping(gomock.Any()).Return(nil).Times(3),
		remote.EXPECT().Ping(gomock.Any()).Return(unreachable).AnyTimes(),
	)
	gomock.InOrder(
		sink.EXPECT().SetOnline(true),
		sink.EXPECT().SetOnline(false).Do(func(bool) { close(wentOffline) }),
	)

	m := NewConnectivityMonitor(remote, sink, tick, 0, logger.Nop())
	m.Start(context.Background())
	waitFor(t, wentOffline)
	m.Stop()
}

func TestConnectivityMonitor_FirstProbeIsImmediate(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mock.NewMockRemoteAdapter(ctrl)
	sink := mock.NewMockSyncQueue(ctrl)

	reported := make(chan struct{})
	remote.EXPECT().Ping(gomock.Any()).Return(errors.New("no route to host")).MinTimes(1)
	sink.EXPECT().SetOnline(false).Do(func(bool) { close(reported) })

	m := NewConnectivityMonitor(remote, sink, time.Hour, 0, logger.Nop())
	m.Start(context.Background())
	waitFor(t, reported)
	m.Stop()
}

func TestConnectivityMonitor_ProbeIsBoundedByTimeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mock.NewMockRemoteAdapter(ctrl)
	sink := mock.NewMockSyncQueue(ctrl)

	reported := make(chan struct{})
	remote.EXPECT().Ping(gomock.Any()).DoAndReturn(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}).MinTimes(1)
	sink.EXPECT().SetOnline(false).Do(func(bool) { close(reported) })

	m := NewConnectivityMonitor(remote, sink, time.Hour, 10*time.Millisecond, logger.Nop())
	m.Start(context.Background())
	waitFor(t, reported)
	m.Stop()
}

func TestConnectivityMonitor_StopDuringProbeReportsNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	remote := mock.NewMockRemoteAdapter(ctrl)
	sink := mock.NewMockSyncQueue(ctrl)

	inPing := make(chan struct{})
	remote.EXPECT().Ping(gomock.Any()).DoAndReturn(func(ctx context.Context) error {
		close(inPing)
		<-ctx.Done()
		return ctx.Err()
	})

	m := NewConnectivityMonitor(remote, sink, time.Hour, 0, logger.Nop())
	m.Start(context.Background())
	waitFor(t, inPing)
	m.Stop()
}

func TestNewConnectivityMonitor_Defaults(t *testing.T) {
	m := NewConnectivityMonitor(nil, nil, 0, time.Hour, logger.Nop())
	assert.Equal(t, DefaultProbeInterval, m.interval)
	assert.Equal(t, DefaultProbeInterval, m.timeout)
	assert.True(t, m.immediate)
}

// ── SyncJob ───────────────────────────────────────────────────────────────────

func TestSyncJob_DrainsOnEveryTick(t *testing.T) {
	ctrl := gomock.NewController(t)
	queue := mock.NewMockSyncQueue(ctrl)

	var calls atomic.Int32
	done := make(chan struct{})
	queue.EXPECT().ProcessSyncQueue(gomock.Any()).DoAndReturn(func(context.Context) (models.DrainResult, error) {
		switch calls.Add(1) {
		case 1:
			return models.DrainResult{Skipped: true, Offline: true}, nil
		case 2:
			return models.DrainResult{}, errors.New("persist failed")
		case 3:
			close(done)
		}
		return models.DrainResult{Attempted: 1, Succeeded: 1}, nil
	}).MinTimes(3)

	j := NewSyncJob(queue, tick, logger.Nop())
	j.Start(context.Background())
	waitFor(t, done)
	j.Stop()

	assert.GreaterOrEqual(t, calls.Load(), int32(3))
}

func TestSyncJob_NoDrainBeforeFirstTick(t *testing.T) {
	ctrl := gomock.NewController(t)
	queue := mock.NewMockSyncQueue(ctrl)

	j := NewSyncJob(queue, time.Hour, logger.Nop())
	j.Start(context.Background())
	j.Stop()
}

func TestSyncJob_StopsWithParentContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	queue := mock.NewMockSyncQueue(ctrl)
	queue.EXPECT().ProcessSyncQueue(gomock.Any()).Return(models.DrainResult{Skipped: true}, nil).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	j := NewSyncJob(queue, tick, logger.Nop())
	j.Start(ctx)
	cancel()

	stopped := make(chan struct{})
	go func() {
		j.wg.Wait()
		close(stopped)
	}()
	waitFor(t, stopped)
	j.Stop()
}

func TestSyncJob_RestartReplacesRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	queue := mock.NewMockSyncQueue(ctrl)
	queue.EXPECT().ProcessSyncQueue(gomock.Any()).Return(models.DrainResult{Skipped: true}, nil).AnyTimes()

	j := NewSyncJob(queue, tick, logger.Nop())
	j.Start(context.Background())
	j.Start(context.Background())

	j.mu.Lock()
	require.NotNil(t, j.cancel)
	j.mu.Unlock()

	j.Stop()
	j.Stop()
}
