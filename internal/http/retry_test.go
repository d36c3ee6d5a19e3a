package http

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

// TestExecuteWithRetry_Success verifies a succeeding operation runs exactly once.
func TestExecuteWithRetry_Success(t *testing.T) {
	ctx := context.Background()
	cfg := Config{
		MaxAttempts:  3,
		InitialDelay: 10 * time.Millisecond,
		MaxDelay:     100 * time.Millisecond,
	}

	calls := 0
	err := ExecuteWithRetry(ctx, cfg, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("expected nil error, got: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

// TestExecuteWithRetry_EventualSuccess verifies retries continue until success.
func TestExecuteWithRetry_EventualSuccess(t *testing.T) {
	ctx := context.Background()
	cfg := Config{
		MaxAttempts:  5,
		InitialDelay: time.Millisecond,
		MaxDelay:     10 * time.Millisecond,
	}

	calls := 0
	err := ExecuteWithRetry(ctx, cfg, func() error {
		calls++
		if calls < 3 {
			return fmt.Errorf("still there")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected nil error, got: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

// TestExecuteWithRetry_Exhaustion verifies the attempt budget is honored
// and the final error names the attempt count.
func TestExecuteWithRetry_Exhaustion(t *testing.T) {
	ctx := context.Background()
	cfg := Config{
		MaxAttempts:  4,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
	}

	underlying := errors.New("object still exists")
	calls := 0
	err := ExecuteWithRetry(ctx, cfg, func() error {
		calls++
		return underlying
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if calls != 4 {
		t.Errorf("expected 4 calls, got %d", calls)
	}
	if !errors.Is(err, underlying) {
		t.Errorf("expected final error to wrap the last failure, got: %v", err)
	}
}

// TestExecuteWithRetry_Permanent verifies no retry on permanent errors.
func TestExecuteWithRetry_Permanent(t *testing.T) {
	ctx := context.Background()
	cfg := Config{
		MaxAttempts:  5,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
	}

	underlying := errors.New("400 bad request")
	calls := 0
	err := ExecuteWithRetry(ctx, cfg, func() error {
		calls++
		return Permanent{Err: underlying}
	})
	if err != underlying {
		t.Fatalf("expected the unwrapped permanent error, got: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call (no retry on permanent), got %d", calls)
	}
}

// TestExecuteWithRetry_ContextCancelledDuringSleep verifies retry returns
// quickly when the context is cancelled mid-backoff.
func TestExecuteWithRetry_ContextCancelledDuringSleep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := Config{
		MaxAttempts:  5,
		InitialDelay: 5 * time.Second, // long backoff to ensure we'd be sleeping
		MaxDelay:     30 * time.Second,
	}

	calls := 0
	start := time.Now()

	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	err := ExecuteWithRetry(ctx, cfg, func() error {
		calls++
		return fmt.Errorf("connection reset")
	})

	elapsed := time.Since(start)

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got: %v", err)
	}
	if elapsed > 1*time.Second {
		t.Errorf("expected quick return after context cancel, but took %v", elapsed)
	}
	if calls < 1 {
		t.Errorf("expected at least 1 call, got %d", calls)
	}
}

// TestCalculateBackoff_Bounds verifies the jittered backoff stays within
// [0, min(maxDelay, initialDelay*2^attempt)).
func TestCalculateBackoff_Bounds(t *testing.T) {
	initial := 100 * time.Millisecond
	max := time.Second

	if got := CalculateBackoff(0, initial, max); got != 0 {
		t.Errorf("attempt 0: expected 0, got %v", got)
	}

	for attempt := 1; attempt <= 12; attempt++ {
		for i := 0; i < 50; i++ {
			got := CalculateBackoff(attempt, initial, max)
			if got < 0 || got >= max+initial {
				t.Fatalf("attempt %d: backoff %v out of range", attempt, got)
			}
		}
	}
}
