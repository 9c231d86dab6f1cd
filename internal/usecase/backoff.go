package usecase

import (
	"context"
	"time"
)

// Backoff waits between optimistic transfer attempts. attempt is the
// 1-based index of the attempt that just failed. Implementations must
// return early with ctx.Err() when the context is cancelled, so a
// caller never sits in a wait it cannot abort. Tests substitute a
// zero-delay implementation.
type Backoff func(ctx context.Context, attempt int) error

// LinearBackoff waits attempt * base between attempts.
func LinearBackoff(base time.Duration) Backoff {
	return func(ctx context.Context, attempt int) error {
		timer := time.NewTimer(time.Duration(attempt) * base)
		defer timer.Stop()

		select {
		case <-timer.C:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// NoBackoff retries immediately. Used in tests.
func NoBackoff() Backoff {
	return func(ctx context.Context, _ int) error {
		return ctx.Err()
	}
}
