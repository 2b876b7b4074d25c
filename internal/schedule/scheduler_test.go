package schedule

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/spend/internal/model"
	"github.com/Veraticus/spend/internal/store"
)

type fakeRefresher struct {
	err   error
	calls []time.Time
	mu    sync.Mutex
}

func (f *fakeRefresher) RefreshBudgets(_ context.Context, now time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, now)
	if f.err != nil {
		return 0, f.err
	}
	return 2, nil
}

func (f *fakeRefresher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestPeriodSpecsCoverEveryPeriod(t *testing.T) {
	for _, p := range model.Periods {
		assert.NotEmpty(t, PeriodSpecs[p], "period %s has no schedule", p)
	}
}

func TestScheduler_Register(t *testing.T) {
	tests := []struct {
		name     string
		interval time.Duration
		entries  int
		wantErr  error
	}{
		{name: "periods only", interval: 0, entries: 4},
		{name: "with interval", interval: time.Hour, entries: 5},
		{name: "negative interval", interval: -time.Minute, wantErr: ErrInvalidInterval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(&fakeRefresher{}, WithLocation(time.UTC))
			err := s.Register(context.Background(), tt.interval)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, s.Entries(), tt.entries)
		})
	}
}

func TestScheduler_PeriodBoundaries(t *testing.T) {
	s := New(&fakeRefresher{}, WithLocation(time.UTC))
	require.NoError(t, s.Register(context.Background(), 0))

	// Scheduling is computed when the cron starts; parse the descriptors
	// the same way to check the boundaries they produce.
	from := time.Date(2023, time.May, 17, 15, 4, 0, 0, time.UTC) // a Wednesday
	want := map[model.Period]time.Time{
		model.PeriodDaily:   time.Date(2023, time.May, 18, 0, 0, 0, 0, time.UTC),
		model.PeriodWeekly:  time.Date(2023, time.May, 21, 0, 0, 0, 0, time.UTC),
		model.PeriodMonthly: time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC),
		model.PeriodYearly:  time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	}

	for i, entry := range s.Entries() {
		period := model.Periods[i]
		assert.Equal(t, want[period], entry.Schedule.Next(from), "next %s boundary", period)

		start, _ := period.Window(want[period])
		assert.Equal(t, want[period], start, "%s boundary starts a new window", period)
	}
}

func TestScheduler_RefreshNow(t *testing.T) {
	refresher := &fakeRefresher{}
	fixed := time.Date(2023, time.May, 31, 12, 0, 0, 0, time.UTC)
	s := New(refresher, WithClock(func() time.Time { return fixed }), WithLocation(time.UTC))

	changed, err := s.RefreshNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, changed)
	require.Len(t, refresher.calls, 1)
	assert.True(t, fixed.Equal(refresher.calls[0]))
	assert.Equal(t, 1, s.Runs())

	refresher.err = errors.New("disk full")
	_, err = s.RefreshNow(context.Background())
	assert.ErrorIs(t, err, refresher.err)
	assert.Equal(t, 2, s.Runs())
}

func TestScheduler_JobFailureIsLogged(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	refresher := &fakeRefresher{err: errors.New("locked")}
	s := New(refresher, WithLogger(logger))

	s.run(context.Background(), "test")
	assert.Equal(t, 1, refresher.count())
	assert.Contains(t, logs.String(), "budget refresh failed")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.run(ctx, "test")
	assert.Equal(t, 1, refresher.count(), "canceled jobs do not refresh")
}

func TestScheduler_RunsIntervalJobs(t *testing.T) {
	refresher := &fakeRefresher{}
	s := New(refresher)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Register(ctx, time.Second))

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	assert.Eventually(t, func() bool { return refresher.count() > 0 }, 3*time.Second, 50*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestScheduler_WithStore(t *testing.T) {
	ctx := context.Background()
	ledger, err := store.Open(ctx, store.NewMemoryPersister(nil))
	require.NoError(t, err)

	june := time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)
	s := New(ledger, WithClock(func() time.Time { return june }), WithLocation(time.UTC))

	changed, err := s.RefreshNow(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, changed)
	for _, b := range ledger.Budgets() {
		assert.True(t, b.Current.IsZero(), "budget %s resets in a new month", b.ID)
	}
}
