package usecase

import "time"

const (
	// DefaultMaxAttempts bounds the optimistic retry loop.
	DefaultMaxAttempts = 10

	// DefaultRetryDelay is the base delay of the linear backoff between
	// optimistic attempts; attempt n waits n * DefaultRetryDelay.
	DefaultRetryDelay = 100 * time.Millisecond

	// DefaultLockWaitTimeout bounds exclusive lock acquisition in the
	// pessimistic strategy.
	DefaultLockWaitTimeout = 3 * time.Second
)
