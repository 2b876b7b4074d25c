package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/spend/internal/common"
)

// Record is a stored payload with its envelope version.
type Record struct {
	UpdatedAt time.Time
	Key       string
	Payload   []byte
	Version   int
}

// LoadRecord returns the record stored under key, or an error wrapping
// common.ErrNotFound.
func (s *SQLiteStorage) LoadRecord(ctx context.Context, key string) (Record, error) {
	if err := validateContext(ctx); err != nil {
		return Record{}, err
	}
	if err := validateKey(key); err != nil {
		return Record{}, err
	}

	var (
		rec     = Record{Key: key}
		payload string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT version, payload, updated_at FROM store_records WHERE key = ?`, key,
	).Scan(&rec.Version, &payload, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("record %q: %w", key, common.ErrNotFound)
	}
	if err != nil {
		return Record{}, fmt.Errorf("failed to load record %q: %w", key, err)
	}

	rec.Payload = []byte(payload)
	return rec, nil
}

// SaveRecord inserts or replaces the record stored under key.
func (s *SQLiteStorage) SaveRecord(ctx context.Context, key string, version int, payload []byte) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateKey(key); err != nil {
		return err
	}
	if payload == nil {
		return fmt.Errorf("%w: payload", ErrNilParameter)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO store_records (key, version, payload)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			version = excluded.version,
			payload = excluded.payload,
			updated_at = CURRENT_TIMESTAMP
	`, key, version, string(payload))
	if err != nil {
		return fmt.Errorf("failed to save record %q: %w", key, err)
	}
	return nil
}

// DeleteRecord removes the record stored under key.
func (s *SQLiteStorage) DeleteRecord(ctx context.Context, key string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateKey(key); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM store_records WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete record %q: %w", key, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("record %q: %w", key, common.ErrNotFound)
	}
	return nil
}

// RecordPersister binds one record key of a SQLiteStorage to the
// service.StatePersister contract.
type RecordPersister struct {
	storage *SQLiteStorage
	key     string
}

// Persister returns a persister for the record stored under key.
func (s *SQLiteStorage) Persister(key string) *RecordPersister {
	return &RecordPersister{storage: s, key: key}
}

// Load returns the stored payload.
func (p *RecordPersister) Load(ctx context.Context) ([]byte, error) {
	rec, err := p.storage.LoadRecord(ctx, p.key)
	if err != nil {
		return nil, err
	}
	return rec.Payload, nil
}

// Save stores payload, recording the envelope version it declares.
func (p *RecordPersister) Save(ctx context.Context, payload []byte) error {
	return p.storage.SaveRecord(ctx, p.key, envelopeVersion(payload), payload)
}

// envelopeVersion reads the top-level "version" field, defaulting to 0.
func envelopeVersion(payload []byte) int {
	var head struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(payload, &head); err != nil {
		return 0
	}
	return head.Version
}
