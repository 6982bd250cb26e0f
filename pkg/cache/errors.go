package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork marks backend failures such as timeouts and refused
// connections, as opposed to a plain miss.
var ErrNetwork = errors.New("network error")

// RetryableError marks an error as transient, eligible for retry.
type RetryableError struct{ Err error }

// Retryable wraps an error as a RetryableError. A nil error stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// Error implements the error interface.
func (e *RetryableError) Error() string { return e.Err.Error() }

// Unwrap returns the wrapped error.
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err is marked retryable anywhere in its chain.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff runs fn up to 3 times with exponential backoff, starting
// at one second. Only errors marked Retryable trigger another attempt;
// anything else fails immediately.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	const attempts = 3
	delay := time.Second
	var lastErr error

	for i := 0; i < attempts; i++ {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}
