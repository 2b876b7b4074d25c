package store

import (
	"context"
	"slices"
	"sync"

	"github.com/Veraticus/spend/internal/common"
)

// MemoryPersister keeps the encoded state in memory. It backs tests and
// throwaway sessions.
type MemoryPersister struct {
	saveErr error
	loadErr error
	payload []byte
	saves   int
	mu      sync.Mutex
}

// NewMemoryPersister creates a persister, optionally preloaded with payload.
func NewMemoryPersister(payload []byte) *MemoryPersister {
	return &MemoryPersister{payload: slices.Clone(payload)}
}

// Load returns the stored payload or common.ErrNotFound.
func (m *MemoryPersister) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.payload == nil {
		return nil, common.ErrNotFound
	}
	return slices.Clone(m.payload), nil
}

// Save replaces the stored payload.
func (m *MemoryPersister) Save(ctx context.Context, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveErr != nil {
		return m.saveErr
	}
	m.payload = slices.Clone(payload)
	m.saves++
	return nil
}

// Payload returns the last saved payload.
func (m *MemoryPersister) Payload() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.payload)
}

// Saves returns how many saves succeeded.
func (m *MemoryPersister) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// SetSaveError makes every following Save fail with err. Pass nil to clear.
func (m *MemoryPersister) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

// SetLoadError makes every following Load fail with err.
func (m *MemoryPersister) SetLoadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loadErr = err
}
