package retry

import (
	"context"
	"errors"
	"time"
)

// ErrAttemptsExhausted wraps the last error once every attempt has failed.
var ErrAttemptsExhausted = errors.New("retry attempts exhausted")

// Do runs fn up to attempts times with a fixed delay between tries,
// retrying only while shouldRetry returns true for the returned error.
// An error that shouldRetry rejects is returned immediately. The context
// cancels the wait between attempts, not a running fn.
func Do(ctx context.Context, attempts int, delay time.Duration, shouldRetry func(error) bool, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if shouldRetry != nil && !shouldRetry(lastErr) {
			return lastErr
		}
		if i == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return errors.Join(ErrAttemptsExhausted, lastErr)
}
