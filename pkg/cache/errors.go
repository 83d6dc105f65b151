package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork marks backend failures caused by the connection to a remote
// cache, such as timeouts or refused connections.
var ErrNetwork = errors.New("cache network error")

// RetryableError marks a transient failure. Backoff.Do only repeats calls
// whose error chain contains one.
type RetryableError struct{ Err error }

// Retryable wraps err so that Backoff.Do retries it. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err was marked with [Retryable].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Backoff describes how often and how patiently a call is repeated.
// The wait doubles after every failed attempt.
type Backoff struct {
	Attempts int
	Initial  time.Duration
}

// DefaultBackoff is used by the Redis backend: three attempts, starting
// with a 100ms pause.
var DefaultBackoff = Backoff{Attempts: 3, Initial: 100 * time.Millisecond}

// Do calls fn until it succeeds, fails permanently, the attempts run out
// or ctx is done. The last error from fn is returned on exhaustion.
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	attempts := max(b.Attempts, 1)
	wait := b.Initial

	var err error
	for n := 1; ; n++ {
		if err = fn(); err == nil || !IsRetryable(err) || n == attempts {
			return err
		}
		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		wait *= 2
	}
}

// RetryWithBackoff runs fn under [DefaultBackoff].
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return DefaultBackoff.Do(ctx, fn)
}
