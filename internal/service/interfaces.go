// Package service defines the interfaces shared between application packages.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/spend/internal/report"
)

// StatePersister stores the encoded ledger state as a single opaque record.
type StatePersister interface {
	// Load returns the stored payload, or an error wrapping
	// common.ErrNotFound when nothing has been saved yet.
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, payload []byte) error
}

// ReportWriter exports a ledger report to an external destination.
type ReportWriter interface {
	Write(ctx context.Context, ledger report.Ledger) error
}

// BudgetRefresher recomputes the accumulated amount of every budget.
type BudgetRefresher interface {
	RefreshBudgets(ctx context.Context, now time.Time) (int, error)
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
