package usecase

import (
	"context"
	"time"

	"github.com/lftbrito/bip-teste-integrado/internal/domain"
)

// LockMode selects how a benefit is read inside a session.
type LockMode int

const (
	// LockNone reads a snapshot of the committed record.
	LockNone LockMode = iota
	// LockExclusive blocks until the record's lock is granted or the
	// store's lock-wait timeout elapses (domain.ErrLockTimeout).
	LockExclusive
)

// BenefitStore is the keyed store of benefit records. All coordination
// state (versions, locks) lives here; use cases hold no cross-call state.
type BenefitStore interface {
	// Begin opens a unit of work. Exclusive locks acquired through the
	// returned session are released when the session completes, on
	// Commit and Rollback alike.
	Begin(ctx context.Context) (StoreSession, error)

	Create(ctx context.Context, benefit *domain.Benefit) error
	GetByID(ctx context.Context, id string) (*domain.Benefit, error)
	List(ctx context.Context) ([]*domain.Benefit, error)
	ListActive(ctx context.Context) ([]*domain.Benefit, error)
	ExistsByName(ctx context.Context, name, excludeID string) (bool, error)
}

// StoreSession is a single unit of work against the store.
type StoreSession interface {
	Get(ctx context.Context, id string, mode LockMode) (*domain.Benefit, error)

	// ConditionalWrite stages a write of the benefit as read. It fails
	// with domain.ErrVersionConflict if the stored version no longer
	// matches. Committing a conditional write is the sole path that
	// advances a benefit's version.
	ConditionalWrite(ctx context.Context, benefit *domain.Benefit) error

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransferStrategy executes the locking/retry algorithm of a transfer.
// The engine is constructed with exactly one and is unaware of which.
type TransferStrategy interface {
	Execute(ctx context.Context, req domain.TransferRequest) (*domain.TransferDetail, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
