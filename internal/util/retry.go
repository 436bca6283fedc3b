// ABOUTME: Retry helpers with exponential backoff and jitter
// ABOUTME: Used to reopen the database while another process holds the lock
package util

import (
	"context"
	"math/rand/v2"
	"time"
)

// maxBackoff caps a single wait
const maxBackoff = 5 * time.Second

// CalculateBackoff returns base*2^attempt with ±25% jitter, capped at maxBackoff
func CalculateBackoff(baseDelay time.Duration, attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	if attempt > 30 {
		attempt = 30
	}
	backoff := baseDelay * time.Duration(1<<uint(attempt))
	if backoff > maxBackoff || backoff <= 0 {
		backoff = maxBackoff
	}
	jitter := time.Duration(rand.Int64N(int64(backoff)/2)) - backoff/4
	return backoff + jitter
}

// Retry calls fn up to attempts times while retryable reports the error as
// transient. It returns the last error, or ctx.Err() if ctx ends first.
func Retry(ctx context.Context, attempts int, baseDelay time.Duration, retryable func(error) bool, fn func() error) error {
	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(CalculateBackoff(baseDelay, attempt))
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}

		err = fn()
		if err == nil || !retryable(err) {
			return err
		}
	}
	return err
}
