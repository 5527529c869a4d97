package http

import (
	"context"
	"errors"
	"time"
)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// permanentError marks a failure that retrying cannot fix.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

func permanent(err error) error {
	return &permanentError{err: err}
}

// withRetry calls fn until it succeeds, returns a permanent error, or the
// delays are exhausted. It makes len(delays)+1 attempts at most.
func withRetry(ctx context.Context, url string, delays []time.Duration, logf LogFunc, fn func() error) error {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		var perm *permanentError
		if errors.As(err, &perm) {
			return perm.err
		}

		if attempt >= maxAttempts-1 {
			break
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		if logf != nil {
			logf("retry %s (attempt %d): %v", url, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return lastErr
}
