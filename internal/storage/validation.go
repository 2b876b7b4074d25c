// Package storage provides the SQLite persistence layer for the ledger.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrInvalidKey   = errors.New("invalid record key")
	ErrInvalidTag   = errors.New("invalid checkpoint tag: cannot contain path separators")
)

// validateContext ensures the context is usable.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return ctx.Err()
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateKey ensures a record key is non-empty and has no surrounding space.
func validateKey(key string) error {
	if err := validateString(key, "key"); err != nil {
		return err
	}
	if strings.TrimSpace(key) != key {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// validateTag rejects checkpoint tags that could escape the checkpoints
// directory.
func validateTag(tag string) error {
	if strings.Contains(tag, "/") || strings.Contains(tag, "\\") || strings.Contains(tag, "..") {
		return ErrInvalidTag
	}
	return nil
}
