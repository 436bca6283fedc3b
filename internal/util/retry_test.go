// ABOUTME: Tests for retry utilities including exponential backoff
// ABOUTME: Validates backoff bounds, jitter, and the retry loop
package util

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCalculateBackoff_ZeroAttempt(t *testing.T) {
	if result := CalculateBackoff(time.Second, 0); result != 0 {
		t.Errorf("expected 0 for attempt 0, got %v", result)
	}
}

func TestCalculateBackoff_ExponentialGrowth(t *testing.T) {
	baseDelay := 10 * time.Millisecond

	for attempt := 1; attempt <= 5; attempt++ {
		expectedBase := baseDelay * time.Duration(1<<uint(attempt))
		minExpected := expectedBase * 3 / 4
		maxExpected := expectedBase * 5 / 4

		result := CalculateBackoff(baseDelay, attempt)
		if result < minExpected || result > maxExpected {
			t.Errorf("attempt %d: expected backoff between %v and %v, got %v",
				attempt, minExpected, maxExpected, result)
		}
	}
}

func TestCalculateBackoff_Capped(t *testing.T) {
	maxExpected := maxBackoff * 5 / 4

	for _, attempt := range []int{10, 30, 100} {
		if result := CalculateBackoff(time.Second, attempt); result > maxExpected {
			t.Errorf("attempt %d: backoff %v exceeds cap %v", attempt, result, maxExpected)
		}
	}
}

var errBusy = errors.New("busy")

func isBusy(err error) bool { return errors.Is(err, errBusy) }

func TestRetry_SucceedsAfterTransientErrors(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 5, time.Millisecond, isBusy, func() error {
		calls++
		if calls < 3 {
			return errBusy
		}
		return nil
	})

	if err != nil {
		t.Fatalf("Retry() error = %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetry_StopsOnPermanentError(t *testing.T) {
	permanent := errors.New("bad schema")
	calls := 0
	err := Retry(context.Background(), 5, time.Millisecond, isBusy, func() error {
		calls++
		return permanent
	})

	if !errors.Is(err, permanent) {
		t.Errorf("Retry() error = %v, want %v", err, permanent)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetry_GivesUp(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, isBusy, func() error {
		calls++
		return errBusy
	})

	if !errors.Is(err, errBusy) {
		t.Errorf("Retry() error = %v, want errBusy", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := Retry(ctx, 3, time.Millisecond, isBusy, func() error {
		calls++
		return errBusy
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Retry() error = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
