// Package testutil provides test helpers for building ledgers backed by real
// SQLite storage.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/Veraticus/spend/internal/storage"
	"github.com/Veraticus/spend/internal/store"
)

// TestStore is a store persisted to a migrated SQLite database.
type TestStore struct {
	Store   *store.Store
	Storage *storage.SQLiteStorage
	t       *testing.T
}

// TestStoreOptions configures SetupTestStore.
type TestStoreOptions struct {
	// State is saved before the store opens. Nil opens an empty database,
	// which the store fills with the sample ledger.
	State *store.State
	// OnDisk places the database in a temp directory instead of memory,
	// which checkpoints require.
	OnDisk bool
}

// SetupTestStore creates a migrated database, optionally seeds it, and opens
// a store on it. Cleanup is registered with t.
//
// Example:
//
//	ts := testutil.SetupTestStore(t, testutil.TestStoreOptions{
//		State: testutil.NewLedgerBuilder().WithSampleData().Build(),
//	})
func SetupTestStore(t *testing.T, opts TestStoreOptions) *TestStore {
	t.Helper()

	path := storage.MemoryPath
	if opts.OnDisk {
		path = filepath.Join(t.TempDir(), "spend.db")
	}

	db, err := storage.NewSQLiteStorage(path)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	ctx := context.Background()
	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	persister := db.Persister(store.RecordKey)
	if opts.State != nil {
		payload, err := store.Encode(*opts.State)
		if err != nil {
			t.Fatalf("failed to encode seed state: %v", err)
		}
		if err := persister.Save(ctx, payload); err != nil {
			t.Fatalf("failed to seed ledger: %v", err)
		}
	}

	s, err := store.Open(ctx, persister, store.WithLogger(DiscardLogger()))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}

	return &TestStore{
		Store:   s,
		Storage: db,
		t:       t,
	}
}

// Reopen opens a fresh store on the same database, as a restarted process
// would see it.
func (ts *TestStore) Reopen() *store.Store {
	ts.t.Helper()
	s, err := store.Open(context.Background(), ts.Storage.Persister(store.RecordKey), store.WithLogger(DiscardLogger()))
	if err != nil {
		ts.t.Fatalf("failed to reopen store: %v", err)
	}
	return s
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
