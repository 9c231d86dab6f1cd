package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Request validation errors. These are detected before any store access
// and are never retried.
var (
	ErrMissingField  = errors.New("missing required field")
	ErrInvalidAmount = errors.New("amount must be positive")
	ErrSameBenefit   = errors.New("source and destination benefits must differ")
)

// Concurrency errors.
var (
	// ErrVersionConflict means a conditional write lost a race. It is
	// contained inside the optimistic retry loop and only escapes once
	// the attempt budget is exhausted.
	ErrVersionConflict = errors.New("benefit was modified concurrently")

	// ErrConcurrencyExhausted means the optimistic strategy ran out of
	// retry attempts.
	ErrConcurrencyExhausted = errors.New("transfer failed after repeated concurrent modifications")

	// ErrLockTimeout means the pessimistic strategy timed out waiting
	// for an exclusive lock.
	ErrLockTimeout = errors.New("timed out waiting for benefit lock")
)

// NotFoundError is returned when a referenced benefit does not exist.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("benefit not found: %s", e.ID)
}

// InactiveError is returned when a transfer touches a deactivated benefit.
type InactiveError struct {
	ID   string
	Role Role
}

func (e *InactiveError) Error() string {
	return fmt.Sprintf("%s benefit is inactive: %s", e.Role, e.ID)
}

// InsufficientBalanceError is returned when the source benefit cannot
// cover the requested amount.
type InsufficientBalanceError struct {
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: available %s, requested %s",
		e.Available.StringFixed(2), e.Requested.StringFixed(2))
}

// NameTakenError is returned when a benefit name is already in use.
type NameTakenError struct {
	Name string
}

func (e *NameTakenError) Error() string {
	return fmt.Sprintf("benefit name already in use: %s", e.Name)
}

// KindOf classifies an error into a stable label, used for metrics.
func KindOf(err error) string {
	var (
		notFound     *NotFoundError
		inactive     *InactiveError
		insufficient *InsufficientBalanceError
		nameTaken    *NameTakenError
	)

	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrMissingField), errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrSameBenefit):
		return "invalid_argument"
	case errors.As(err, &notFound):
		return "not_found"
	case errors.As(err, &inactive):
		return "inactive"
	case errors.As(err, &insufficient):
		return "insufficient_balance"
	case errors.As(err, &nameTaken):
		return "name_taken"
	case errors.Is(err, ErrVersionConflict):
		return "version_conflict"
	case errors.Is(err, ErrConcurrencyExhausted):
		return "concurrency_exhausted"
	case errors.Is(err, ErrLockTimeout):
		return "lock_timeout"
	default:
		return "internal"
	}
}
