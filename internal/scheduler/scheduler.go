// Package scheduler owns the timers that drive the sales-to-accounting sync.
// The cadence is configured, not self-deciding: MANUAL registers no timer,
// REALTIME posts at the point of sale via OnSaleRecorded, and HOURLY/DAILY
// install a recurring cron entry. Changing the cadence always removes the
// previous entry before adding a new one, so two timers never run for the
// same settings instance.
package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/voyagebooks/voyage_backoffice/internal/core/domain"
	portsrepo "github.com/voyagebooks/voyage_backoffice/internal/core/ports/repositories"
	portssvc "github.com/voyagebooks/voyage_backoffice/internal/core/ports/services"
	"github.com/voyagebooks/voyage_backoffice/internal/core/services"
	"github.com/voyagebooks/voyage_backoffice/internal/middleware"
)

// defaultCronSpecs maps the recurring cadences to cron expressions. MANUAL
// and REALTIME deliberately have no entry.
var defaultCronSpecs = map[domain.SyncFrequency]string{
	domain.SyncHourly: "@hourly",
	domain.SyncDaily:  "@daily",
}

// Scheduler triggers the sync engine at the configured cadence. It implements
// both the rescheduler and the sale-recorded notifier ports.
type Scheduler struct {
	cron     *cron.Cron
	syncSvc  portssvc.SyncSvcFacade
	settings portsrepo.SyncConfigReader
	logger   *slog.Logger
	specs    map[domain.SyncFrequency]string

	mu       sync.Mutex
	entryID  cron.EntryID
	hasEntry bool
}

var (
	_ portssvc.SyncRescheduler      = (*Scheduler)(nil)
	_ portssvc.SaleRecordedNotifier = (*Scheduler)(nil)
)

// Option customises a Scheduler.
type Option func(*Scheduler)

// WithCronSpecs overrides the cadence-to-cron-expression table. Tests use
// this to shrink an hour to a few milliseconds.
func WithCronSpecs(specs map[domain.SyncFrequency]string) Option {
	return func(s *Scheduler) {
		s.specs = specs
	}
}

// New creates a Scheduler. Call Start to read the persisted cadence and begin
// firing; call Stop on teardown.
func New(syncSvc portssvc.SyncSvcFacade, settings portsrepo.SyncConfigReader, logger *slog.Logger, opts ...Option) *Scheduler {
	s := &Scheduler{
		cron:     cron.New(),
		syncSvc:  syncSvc,
		settings: settings,
		logger:   logger,
		specs:    defaultCronSpecs,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start installs the timer for the currently persisted cadence and starts the
// cron runner.
func (s *Scheduler) Start(ctx context.Context) error {
	settings, err := s.settings.GetSyncSettings(ctx)
	if err != nil {
		return err
	}
	if err := s.Reschedule(settings.SyncFrequency); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Reschedule cancels any previously scheduled recurring timer and, for the
// recurring cadences, installs a new one. It is safe to call whether or not
// the cron runner has been started.
func (s *Scheduler) Reschedule(frequency domain.SyncFrequency) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hasEntry {
		s.cron.Remove(s.entryID)
		s.hasEntry = false
	}

	spec, ok := s.specs[frequency]
	if !ok {
		// MANUAL and REALTIME run without a timer.
		s.logger.Info("Sync timer cleared", slog.String("frequency", string(frequency)))
		return nil
	}

	id, err := s.cron.AddFunc(spec, s.runScheduledSync)
	if err != nil {
		return err
	}
	s.entryID = id
	s.hasEntry = true
	s.logger.Info("Sync timer scheduled", slog.String("frequency", string(frequency)), slog.String("spec", spec))
	return nil
}

// OnSaleRecorded posts immediately when the cadence is REALTIME; all other
// cadences ignore the signal.
func (s *Scheduler) OnSaleRecorded(ctx context.Context) {
	settings, err := s.settings.GetSyncSettings(ctx)
	if err != nil {
		s.logger.Error("Failed to read sync settings after sale", slog.String("error", err.Error()))
		return
	}
	if settings.SyncFrequency != domain.SyncRealtime {
		return
	}
	s.runSync(ctx)
}

// TriggerNow runs a sync pass outside any schedule, e.g. from an admin task.
func (s *Scheduler) TriggerNow(ctx context.Context) {
	s.runSync(ctx)
}

// Stop cancels all timers and waits for an in-flight scheduled run to finish.
// Safe to call more than once.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runScheduledSync() {
	ctx := middleware.ContextWithLogger(context.Background(), s.logger.With(slog.String("trigger", "timer")))
	s.runSync(ctx)
}

func (s *Scheduler) runSync(ctx context.Context) {
	result, err := s.syncSvc.Sync(ctx)
	if err != nil {
		if errors.Is(err, services.ErrSyncInProgress) {
			// The previous pass is still draining the queue; this fire is
			// skipped rather than overlapped.
			s.logger.Warn("Sync fire skipped, previous pass still running")
			return
		}
		s.logger.Error("Scheduled sync failed", slog.String("error", err.Error()))
		return
	}
	if !result.Success {
		s.logger.Warn("Sync completed with failures",
			slog.Int("synced", result.SyncedCount),
			slog.Int("failed", result.FailedCount),
		)
	}
}
