// Package schedule runs budget refreshes at period boundaries.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Veraticus/spend/internal/model"
	"github.com/Veraticus/spend/internal/service"
)

// ErrInvalidInterval is returned for negative refresh intervals.
var ErrInvalidInterval = errors.New("refresh interval cannot be negative")

// PeriodSpecs are the cron descriptors at which each budget period rolls
// over. Weeks start on Sunday.
var PeriodSpecs = map[model.Period]string{
	model.PeriodDaily:   "@daily",
	model.PeriodWeekly:  "@weekly",
	model.PeriodMonthly: "@monthly",
	model.PeriodYearly:  "@yearly",
}

// Scheduler refreshes budget progress when a period rolls over and,
// optionally, on a fixed interval.
type Scheduler struct {
	refresher service.BudgetRefresher
	cron      *cron.Cron
	logger    *slog.Logger
	now       func() time.Time
	location  *time.Location
	runs      int
	mu        sync.Mutex
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLocation sets the time zone period boundaries are computed in.
func WithLocation(loc *time.Location) Option {
	return func(s *Scheduler) {
		s.location = loc
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		s.now = now
	}
}

// New creates a scheduler for refresher.
func New(refresher service.BudgetRefresher, opts ...Option) *Scheduler {
	s := &Scheduler{
		refresher: refresher,
		logger:    slog.Default(),
		now:       time.Now,
		location:  time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}

	log := cronLogger{logger: s.logger}
	s.cron = cron.New(
		cron.WithLocation(s.location),
		cron.WithLogger(log),
		cron.WithChain(cron.Recover(log), cron.SkipIfStillRunning(log)),
	)
	return s
}

// Register adds one job per budget period plus, when interval is positive,
// a job every interval. Jobs run with ctx.
func (s *Scheduler) Register(ctx context.Context, interval time.Duration) error {
	if interval < 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInterval, interval)
	}

	for _, period := range model.Periods {
		spec := PeriodSpecs[period]
		reason := string(period) + " rollover"
		if _, err := s.cron.AddFunc(spec, func() { s.run(ctx, reason) }); err != nil {
			return fmt.Errorf("failed to schedule %s refresh: %w", period, err)
		}
	}

	if interval > 0 {
		spec := fmt.Sprintf("@every %s", interval)
		if _, err := s.cron.AddFunc(spec, func() { s.run(ctx, "interval") }); err != nil {
			return fmt.Errorf("failed to schedule interval refresh: %w", err)
		}
	}

	s.logger.Debug("registered budget refresh jobs", "jobs", len(s.cron.Entries()), "interval", interval)
	return nil
}

// Start runs the scheduler in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Run starts the scheduler and blocks until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	s.Start()
	<-ctx.Done()
	s.Stop()
	if errors.Is(ctx.Err(), context.Canceled) {
		return nil
	}
	return ctx.Err()
}

// RefreshNow refreshes budgets immediately.
func (s *Scheduler) RefreshNow(ctx context.Context) (int, error) {
	return s.refresh(ctx, "manual")
}

// Entries returns the scheduled jobs.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// Runs returns how many refreshes have completed, successful or not.
func (s *Scheduler) Runs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs
}

func (s *Scheduler) run(ctx context.Context, reason string) {
	if ctx.Err() != nil {
		return
	}
	if _, err := s.refresh(ctx, reason); err != nil {
		s.logger.Error("budget refresh failed", "reason", reason, "error", err)
	}
}

func (s *Scheduler) refresh(ctx context.Context, reason string) (int, error) {
	now := s.now().In(s.location)
	changed, err := s.refresher.RefreshBudgets(ctx, now)

	s.mu.Lock()
	s.runs++
	s.mu.Unlock()

	if err != nil {
		return 0, fmt.Errorf("refresh budgets: %w", err)
	}
	s.logger.Info("refreshed budgets", "reason", reason, "changed", changed, "at", now.Format(time.RFC3339))
	return changed, nil
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append([]any{"error", err}, keysAndValues...)...)
}
