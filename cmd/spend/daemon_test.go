package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/spend/internal/store"
	"github.com/Veraticus/spend/internal/testutil"
)

func TestDaemonRunsUntilCanceled(t *testing.T) {
	env := newTestEnv(t)

	ctx, cancel := context.WithCancel(context.Background())
	timer := time.AfterFunc(500*time.Millisecond, cancel)
	defer timer.Stop()
	defer cancel()

	_, stderr, err := env.runContext(ctx, "", "daemon", "--interval", "0", "--timezone", "UTC")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Starting budget daemon")
	assert.Contains(t, stderr, "Initial refresh complete")
	assert.Contains(t, stderr, "Budget daemon stopped")

	// The initial refresh ran against today, so the seeded May 2023 budgets
	// now count no spending.
	out := env.mustRun("budgets", "list")
	assert.Contains(t, out, "RM0.00")
}

func TestDaemonFlagErrors(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.run("", "daemon", "--timezone", "Mars/Olympus")
	require.Error(t, err)
	assert.Contains(t, userMessage(t, err), "Unknown time zone")

	_, _, err = env.run("", "daemon", "--interval=-1m")
	require.Error(t, err)
	assert.Contains(t, userMessage(t, err), "must not be negative")
}

func TestFlushLoop(t *testing.T) {
	ctx := context.Background()
	persister := store.NewMemoryPersister(nil)
	s, err := store.Open(ctx, persister, store.WithLogger(testutil.DiscardLogger()))
	require.NoError(t, err)

	persister.SetSaveError(errors.New("database is locked"))
	require.NoError(t, s.DeleteExpense(ctx, "exp1"))
	require.True(t, s.Dirty())
	persister.SetSaveError(nil)

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() {
		done <- flushLoop(loopCtx, &ledger{Store: s}, 10*time.Millisecond)
	}()

	require.Eventually(t, func() bool { return !s.Dirty() }, time.Second, 10*time.Millisecond)
	cancel()
	require.NoError(t, <-done)

	reopened, err := store.Open(ctx, store.NewMemoryPersister(persister.Payload()))
	require.NoError(t, err)
	assert.Len(t, reopened.Expenses(), len(store.SeedState().Expenses)-1)
}

func clearSheetsEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH",
		"GOOGLE_SHEETS_CLIENT_ID",
		"GOOGLE_SHEETS_CLIENT_SECRET",
		"GOOGLE_SHEETS_REFRESH_TOKEN",
		"GOOGLE_SHEETS_SPREADSHEET_ID",
		"GOOGLE_SHEETS_SPREADSHEET_NAME",
	} {
		t.Setenv(key, "")
	}
}

func TestExportSheetsRequiresCredentials(t *testing.T) {
	env := newTestEnv(t)
	clearSheetsEnv(t)

	_, _, err := env.run("", "export", "sheets")
	require.Error(t, err)
	assert.Contains(t, userMessage(t, err), "Google Sheets is not configured")
}

func TestAuthSheetsRequiresClient(t *testing.T) {
	env := newTestEnv(t)
	clearSheetsEnv(t)

	_, _, err := env.run("", "auth", "sheets")
	require.Error(t, err)
	assert.Contains(t, userMessage(t, err), "OAuth2 credentials not found")
}
