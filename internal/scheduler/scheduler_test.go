package scheduler_test

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagebooks/voyage_backoffice/internal/core/domain"
	"github.com/voyagebooks/voyage_backoffice/internal/scheduler"
)

// countingSyncSvc counts Sync invocations.
type countingSyncSvc struct {
	calls atomic.Int64
}

func (s *countingSyncSvc) Sync(ctx context.Context) (*domain.SyncResult, error) {
	s.calls.Add(1)
	return &domain.SyncResult{Success: true, Errors: []string{}}, nil
}

// staticSettings serves a fixed cadence.
type staticSettings struct {
	frequency domain.SyncFrequency
}

func (s *staticSettings) ListAccountMappings(ctx context.Context) ([]domain.AccountMapping, error) {
	return nil, nil
}

func (s *staticSettings) GetSyncSettings(ctx context.Context) (*domain.SyncSettings, error) {
	return &domain.SyncSettings{SyncFrequency: s.frequency}, nil
}

// fastSpecs compresses the recurring cadences so tests observe timer fires
// without waiting an hour.
func fastSpecs() map[domain.SyncFrequency]string {
	return map[domain.SyncFrequency]string{
		domain.SyncHourly: "@every 10ms",
		domain.SyncDaily:  "@every 10ms",
	}
}

func waitForCalls(t *testing.T, svc *countingSyncSvc, atLeast int64) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if svc.calls.Load() >= atLeast {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected at least %d sync calls, got %d", atLeast, svc.calls.Load())
}

func TestScheduler_HourlyCadenceFires(t *testing.T) {
	syncSvc := &countingSyncSvc{}
	s := scheduler.New(syncSvc, &staticSettings{frequency: domain.SyncHourly}, slog.Default(), scheduler.WithCronSpecs(fastSpecs()))

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	waitForCalls(t, syncSvc, 2)
}

func TestScheduler_RescheduleToManualCancelsTimer(t *testing.T) {
	syncSvc := &countingSyncSvc{}
	s := scheduler.New(syncSvc, &staticSettings{frequency: domain.SyncHourly}, slog.Default(), scheduler.WithCronSpecs(fastSpecs()))

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()
	waitForCalls(t, syncSvc, 1)

	require.NoError(t, s.Reschedule(domain.SyncManual))

	// Let any already-started fire drain, then confirm the counter stops.
	time.Sleep(50 * time.Millisecond)
	before := syncSvc.calls.Load()
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, before, syncSvc.calls.Load(), "no timer fires after switching to MANUAL")
}

func TestScheduler_RescheduleReplacesTimerWithoutDoubling(t *testing.T) {
	syncSvc := &countingSyncSvc{}
	s := scheduler.New(syncSvc, &staticSettings{frequency: domain.SyncHourly}, slog.Default(), scheduler.WithCronSpecs(fastSpecs()))

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	// Rescheduling between the recurring cadences must replace, not stack.
	require.NoError(t, s.Reschedule(domain.SyncDaily))
	require.NoError(t, s.Reschedule(domain.SyncHourly))
	require.NoError(t, s.Reschedule(domain.SyncManual))

	time.Sleep(50 * time.Millisecond)
	before := syncSvc.calls.Load()
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, before, syncSvc.calls.Load())
}

func TestScheduler_ManualCadenceRegistersNoTimer(t *testing.T) {
	syncSvc := &countingSyncSvc{}
	s := scheduler.New(syncSvc, &staticSettings{frequency: domain.SyncManual}, slog.Default(), scheduler.WithCronSpecs(fastSpecs()))

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, syncSvc.calls.Load())
}

func TestScheduler_OnSaleRecorded_RealtimeSyncsInline(t *testing.T) {
	syncSvc := &countingSyncSvc{}
	s := scheduler.New(syncSvc, &staticSettings{frequency: domain.SyncRealtime}, slog.Default(), scheduler.WithCronSpecs(fastSpecs()))

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	s.OnSaleRecorded(context.Background())
	assert.Equal(t, int64(1), syncSvc.calls.Load())
}

func TestScheduler_OnSaleRecorded_NonRealtimeIgnored(t *testing.T) {
	syncSvc := &countingSyncSvc{}
	s := scheduler.New(syncSvc, &staticSettings{frequency: domain.SyncDaily}, slog.Default(), scheduler.WithCronSpecs(map[domain.SyncFrequency]string{}))

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	s.OnSaleRecorded(context.Background())
	assert.Zero(t, syncSvc.calls.Load())
}

func TestScheduler_TriggerNowRunsOutsideSchedule(t *testing.T) {
	syncSvc := &countingSyncSvc{}
	s := scheduler.New(syncSvc, &staticSettings{frequency: domain.SyncManual}, slog.Default())

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	s.TriggerNow(context.Background())
	assert.Equal(t, int64(1), syncSvc.calls.Load())
}
