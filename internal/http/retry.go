package http

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// Config holds retry parameters for ExecuteWithRetry.
type Config struct {
	// MaxAttempts is the maximum number of attempts, including the first.
	MaxAttempts int
	// InitialDelay is the base delay for exponential backoff.
	InitialDelay time.Duration
	// MaxDelay caps the backoff between attempts.
	MaxDelay time.Duration
	// OnRetry is an optional callback invoked before each retry attempt.
	OnRetry func(attempt int, err error)
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  10,
		InitialDelay: 200 * time.Millisecond,
		MaxDelay:     15 * time.Second,
	}
}

// Permanent wraps an error that must not be retried.
type Permanent struct {
	Err error
}

func (p Permanent) Error() string {
	return p.Err.Error()
}

func (p Permanent) Unwrap() error {
	return p.Err
}

// CalculateBackoff returns the exponential backoff duration for an attempt
// with full jitter: random(0, min(maxDelay, initialDelay * 2^attempt)).
// Full jitter spreads out polls so repeated existence checks do not
// hammer the API in lockstep.
func CalculateBackoff(attempt int, initialDelay, maxDelay time.Duration) time.Duration {
	if attempt <= 0 {
		return 0
	}

	base := time.Duration(1<<uint(attempt)) * initialDelay
	if base > maxDelay || base <= 0 {
		base = maxDelay
	}

	return time.Duration(rand.Int63n(int64(base)))
}

// ExecuteWithRetry runs an operation until it succeeds, fails permanently,
// or the attempt budget is exhausted.
//
//   - nil return: success, stop
//   - Permanent-wrapped error: returned immediately without retry
//   - any other error: retried after exponential backoff with jitter
//   - context cancellation: returned immediately, including mid-backoff
//
// When all attempts fail the last error is wrapped with the attempt count,
// so callers can report a bounded-timeout failure instead of hanging.
func ExecuteWithRetry(ctx context.Context, cfg Config, operation func() error) error {
	var lastErr error

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := operation()
		if err == nil {
			return nil
		}
		if perm, ok := err.(Permanent); ok {
			return perm.Err
		}
		lastErr = err

		if attempt == cfg.MaxAttempts-1 {
			break
		}

		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt+1, err)
		}

		backoff := CalculateBackoff(attempt+1, cfg.InitialDelay, cfg.MaxDelay)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}

	return fmt.Errorf("operation failed after %d attempts: %w", cfg.MaxAttempts, lastErr)
}
