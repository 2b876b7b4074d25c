package common

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/spend/internal/service"
)

var errFlaky = errors.New("flaky")

func fastRetry(attempts int) service.RetryOptions {
	return service.RetryOptions{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2,
	}
}

func TestWithRetry(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := WithRetry(ctx, func() error {
			calls++
			if calls < 3 {
				return errFlaky
			}
			return nil
		}, fastRetry(5))
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up and keeps the cause", func(t *testing.T) {
		calls := 0
		err := WithRetry(ctx, func() error {
			calls++
			return errFlaky
		}, fastRetry(2))
		require.Error(t, err)
		assert.Equal(t, 2, calls)
		assert.ErrorIs(t, err, ErrMaxRetries)
		assert.ErrorIs(t, err, errFlaky)
	})

	t.Run("non retryable errors stop immediately", func(t *testing.T) {
		calls := 0
		err := WithRetry(ctx, func() error {
			calls++
			return Permanent(errFlaky)
		}, fastRetry(5))
		assert.ErrorIs(t, err, errFlaky)
		assert.Equal(t, 1, calls)
	})

	t.Run("rate limits wait the maximum delay", func(t *testing.T) {
		calls := 0
		start := time.Now()
		err := WithRetry(ctx, func() error {
			calls++
			if calls == 1 {
				return fmt.Errorf("%w: sheets quota", ErrRateLimit)
			}
			return nil
		}, service.RetryOptions{MaxAttempts: 2, InitialDelay: time.Millisecond, MaxDelay: 20 * time.Millisecond})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		err := WithRetry(cctx, func() error { return errFlaky }, service.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: time.Second,
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestUserError(t *testing.T) {
	err := NewUserError("expense not found", ErrNotFound)
	assert.Equal(t, "expense not found: not found", err.Error())
	assert.ErrorIs(t, err, ErrNotFound)

	var userErr *UserError
	require.ErrorAs(t, err, &userErr)
	assert.Equal(t, "expense not found", userErr.UserMessage)
}
