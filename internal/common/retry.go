package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/spend/internal/service"
)

var (
	// ErrRateLimit indicates that a remote API rate limit has been exceeded.
	ErrRateLimit = errors.New("rate limit exceeded")
	// ErrMaxRetries indicates that all retry attempts have been exhausted.
	ErrMaxRetries = errors.New("max retries exceeded")
)

// Defaults for zero fields of service.RetryOptions.
const (
	defaultAttempts     = 3
	defaultInitialDelay = 100 * time.Millisecond
	defaultMaxDelay     = 30 * time.Second
	defaultMultiplier   = 2.0
)

// RetryableError wraps an error with retry-specific metadata.
type RetryableError struct {
	Err       error
	Retryable bool
}

func (e *RetryableError) Error() string {
	return e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// Permanent marks err so WithRetry returns it without another attempt.
func Permanent(err error) error {
	return &RetryableError{Err: err, Retryable: false}
}

// WithRetry calls operation until it succeeds, fails permanently, or
// opts.MaxAttempts is used up. Delays grow by opts.Multiplier up to
// opts.MaxDelay; a rate-limited attempt waits the full MaxDelay.
func WithRetry(ctx context.Context, operation func() error, opts service.RetryOptions) error {
	opts = withDefaults(opts)
	delay := opts.InitialDelay

	for attempt := 1; ; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}
		if permanent(err) {
			return err
		}
		if attempt >= opts.MaxAttempts {
			return fmt.Errorf("%w after %d attempts: %w", ErrMaxRetries, attempt, err)
		}

		wait := delay
		if errors.Is(err, ErrRateLimit) {
			wait = opts.MaxDelay
		}
		LogWarn(err, "Operation failed, retrying", Fields{
			"attempt":      attempt,
			"max_attempts": opts.MaxAttempts,
			"wait":         wait.String(),
		})

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay = min(time.Duration(float64(delay)*opts.Multiplier), opts.MaxDelay)
	}
}

func withDefaults(opts service.RetryOptions) service.RetryOptions {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = defaultAttempts
	}
	if opts.InitialDelay <= 0 {
		opts.InitialDelay = defaultInitialDelay
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = defaultMaxDelay
	}
	if opts.Multiplier <= 0 {
		opts.Multiplier = defaultMultiplier
	}
	return opts
}

func permanent(err error) bool {
	var retryable *RetryableError
	if errors.As(err, &retryable) && !retryable.Retryable {
		return true
	}
	return errors.Is(err, context.Canceled)
}
