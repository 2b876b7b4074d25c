package sheets

import (
	"context"
	"sync"

	"github.com/Veraticus/spend/internal/report"
	"github.com/Veraticus/spend/internal/service"
)

var _ service.ReportWriter = (*MockWriter)(nil)

// MockWriter is a mock implementation of service.ReportWriter for testing.
type MockWriter struct {
	WriteFunc  func(ctx context.Context, ledger report.Ledger) error
	LastLedger *report.Ledger
	WriteCalls []WriteCall
	mu         sync.Mutex
}

// WriteCall represents a single call to Write.
type WriteCall struct {
	Error  error
	Ledger report.Ledger
}

// NewMockWriter creates a new mock writer.
func NewMockWriter() *MockWriter {
	return &MockWriter{}
}

// Write records the call and returns the configured error, if any.
func (m *MockWriter) Write(ctx context.Context, ledger report.Ledger) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastLedger = &ledger

	var err error
	if m.WriteFunc != nil {
		err = m.WriteFunc(ctx, ledger)
	}

	m.WriteCalls = append(m.WriteCalls, WriteCall{Ledger: ledger, Error: err})
	return err
}

// Reset clears all recorded calls.
func (m *MockWriter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCalls = nil
	m.LastLedger = nil
}

// GetWriteCalls returns a copy of all write calls.
func (m *MockWriter) GetWriteCalls() []WriteCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]WriteCall, len(m.WriteCalls))
	copy(calls, m.WriteCalls)
	return calls
}

// SetWriteError makes every following Write return err.
func (m *MockWriter) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteFunc = func(context.Context, report.Ledger) error {
		return err
	}
}
