package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/spend/internal/cli"
	"github.com/Veraticus/spend/internal/common"
	"github.com/Veraticus/spend/internal/model"
	"github.com/Veraticus/spend/internal/storage"
	"github.com/Veraticus/spend/internal/store"
)

// ledger is an open store together with the database backing it.
type ledger struct {
	Store *store.Store
	DB    *storage.SQLiteStorage
}

// initStorage opens the configured database and applies migrations.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	db, err := storage.NewSQLiteStorage(databasePath())
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// openLedger opens the database and rehydrates the store from it. The CLI
// styles follow the stored theme.
func openLedger(ctx context.Context) (*ledger, error) {
	db, err := initStorage(ctx)
	if err != nil {
		return nil, err
	}

	s, err := store.Open(ctx, db.Persister(store.RecordKey), store.WithLogger(slog.Default()))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	cli.SetTheme(s.Settings().Theme)
	return &ledger{Store: s, DB: db}, nil
}

// closeLedger retries any failed save, closes the database and folds both
// errors into *errp.
func closeLedger(ctx context.Context, l *ledger, errp *error) {
	flushErr := l.Store.Flush(context.WithoutCancel(ctx))
	if flushErr != nil {
		flushErr = common.NewUserError("Your latest changes could not be saved", flushErr)
	}
	closeErr := l.DB.Close()
	*errp = errors.Join(*errp, flushErr, closeErr)
}

// explain turns store errors into messages for the user.
func explain(kind, id string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrNotFound):
		return common.NewUserError(fmt.Sprintf("No %s with id %q", kind, id), err)
	case errors.Is(err, common.ErrInvalidInput):
		return common.NewUserError(err.Error(), err)
	default:
		return err
	}
}

// requireCategory fails unless id names an existing category.
func requireCategory(s *store.Store, id string) error {
	if _, err := s.Category(id); err != nil {
		return explain("category", id, err)
	}
	return nil
}

func parseAmountFlag(name, value string) (decimal.Decimal, error) {
	amount, err := model.ParseAmount(value)
	if err != nil {
		return amount, common.NewUserError(fmt.Sprintf("--%s: %v", name, err), err)
	}
	return amount, nil
}

func parseDateFlag(name, value string) (model.Date, error) {
	date, err := model.ParseDate(value)
	if err != nil {
		return date, common.NewUserError(fmt.Sprintf("--%s: %v", name, err), err)
	}
	return date, nil
}

// formatFileSize formats bytes into human-readable size.
func formatFileSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
