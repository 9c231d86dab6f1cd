// Package memory provides an in-process BenefitStore. It implements the
// same locking and versioning contract as the PostgreSQL store: exclusive
// locks with a bounded wait, and conditional writes that are the sole
// authority over record versions. Used in tests and as a dependency-free
// backend for local runs.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/lftbrito/bip-teste-integrado/internal/domain"
	"github.com/lftbrito/bip-teste-integrado/internal/usecase"
)

var errSessionClosed = errors.New("store session already finished")

// Store is an in-memory implementation of usecase.BenefitStore.
type Store struct {
	mu       sync.RWMutex
	records  map[string]*record
	lockWait time.Duration
}

type record struct {
	benefit domain.Benefit
	// lock is a capacity-1 channel. Holding the token means holding the
	// record's exclusive lock; channel sends compose with ctx and timer
	// in select, which a sync.Mutex cannot.
	lock chan struct{}
}

// NewStore creates a Store. lockWait bounds exclusive lock acquisition;
// zero means usecase.DefaultLockWaitTimeout.
func NewStore(lockWait time.Duration) *Store {
	if lockWait <= 0 {
		lockWait = usecase.DefaultLockWaitTimeout
	}

	return &Store{
		records:  make(map[string]*record),
		lockWait: lockWait,
	}
}

// Create inserts a new benefit. The name must be unused.
func (s *Store) Create(_ context.Context, benefit *domain.Benefit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.records {
		if rec.benefit.Name == benefit.Name {
			return &domain.NameTakenError{Name: benefit.Name}
		}
	}

	s.records[benefit.ID] = &record{
		benefit: *benefit,
		lock:    make(chan struct{}, 1),
	}

	return nil
}

// GetByID returns a snapshot of a benefit.
func (s *Store) GetByID(_ context.Context, id string) (*domain.Benefit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, &domain.NotFoundError{ID: id}
	}

	b := rec.benefit
	return &b, nil
}

// List returns all benefits ordered by ID.
func (s *Store) List(_ context.Context) ([]*domain.Benefit, error) {
	return s.list(func(*domain.Benefit) bool { return true }), nil
}

// ListActive returns active benefits ordered by ID.
func (s *Store) ListActive(_ context.Context) ([]*domain.Benefit, error) {
	return s.list(func(b *domain.Benefit) bool { return b.Active }), nil
}

// ExistsByName reports whether another benefit already uses name.
func (s *Store) ExistsByName(_ context.Context, name, excludeID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for id, rec := range s.records {
		if id != excludeID && rec.benefit.Name == name {
			return true, nil
		}
	}

	return false, nil
}

// Begin opens a unit of work.
func (s *Store) Begin(_ context.Context) (usecase.StoreSession, error) {
	return &session{
		store:  s,
		staged: make(map[string]domain.Benefit),
		held:   make(map[string]bool),
	}, nil
}

func (s *Store) list(keep func(*domain.Benefit) bool) []*domain.Benefit {
	s.mu.RLock()
	defer s.mu.RUnlock()

	benefits := make([]*domain.Benefit, 0, len(s.records))
	for _, rec := range s.records {
		if keep(&rec.benefit) {
			b := rec.benefit
			benefits = append(benefits, &b)
		}
	}

	sort.Slice(benefits, func(i, j int) bool { return benefits[i].ID < benefits[j].ID })

	return benefits
}

// session implements usecase.StoreSession. Writes are staged and become
// visible atomically at Commit; exclusive locks are released when the
// session finishes, on Commit and Rollback alike.
type session struct {
	store  *Store
	staged map[string]domain.Benefit
	held   map[string]bool
	order  []string
	done   bool
}

func (s *session) Get(ctx context.Context, id string, mode usecase.LockMode) (*domain.Benefit, error) {
	if s.done {
		return nil, errSessionClosed
	}

	s.store.mu.RLock()
	rec, ok := s.store.records[id]
	s.store.mu.RUnlock()

	if !ok {
		return nil, &domain.NotFoundError{ID: id}
	}

	if mode == usecase.LockExclusive && !s.held[id] {
		timer := time.NewTimer(s.store.lockWait)
		defer timer.Stop()

		select {
		case rec.lock <- struct{}{}:
			s.held[id] = true
			s.order = append(s.order, id)
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
			return nil, domain.ErrLockTimeout
		}
	}

	// Read the committed state only after the lock, if any, is held.
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	b := rec.benefit
	return &b, nil
}

func (s *session) ConditionalWrite(_ context.Context, benefit *domain.Benefit) error {
	if s.done {
		return errSessionClosed
	}

	s.store.mu.RLock()
	rec, ok := s.store.records[benefit.ID]
	var current int64
	if ok {
		current = rec.benefit.Version
	}
	s.store.mu.RUnlock()

	if !ok {
		return &domain.NotFoundError{ID: benefit.ID}
	}

	if current != benefit.Version {
		return domain.ErrVersionConflict
	}

	s.staged[benefit.ID] = *benefit

	return nil
}

// Commit re-validates every staged version and applies all writes
// atomically, bumping each record's version by exactly one. A racing
// session that committed between stage and commit still surfaces as a
// version conflict here, so no partial write ever becomes visible.
// Staged records whose locks are held by another session are waited on
// first, in ascending id order, mirroring row-lock behavior in SQL.
func (s *session) Commit(ctx context.Context) error {
	if s.done {
		return errSessionClosed
	}

	if err := s.acquireStagedLocks(ctx); err != nil {
		s.finish()
		return err
	}

	s.store.mu.Lock()

	for id, staged := range s.staged {
		if s.store.records[id].benefit.Version != staged.Version {
			s.store.mu.Unlock()
			s.finish()
			return domain.ErrVersionConflict
		}
	}

	now := time.Now().UTC()
	for id, staged := range s.staged {
		staged.Version++
		staged.UpdatedAt = now
		s.store.records[id].benefit = staged
	}

	s.store.mu.Unlock()
	s.finish()

	return nil
}

// Rollback discards staged writes and releases held locks. Safe to call
// after Commit.
func (s *session) Rollback(_ context.Context) error {
	if s.done {
		return nil
	}

	s.staged = nil
	s.finish()

	return nil
}

func (s *session) acquireStagedLocks(ctx context.Context) error {
	pending := make([]string, 0, len(s.staged))
	for id := range s.staged {
		if !s.held[id] {
			pending = append(pending, id)
		}
	}

	sort.Strings(pending)

	for _, id := range pending {
		s.store.mu.RLock()
		rec := s.store.records[id]
		s.store.mu.RUnlock()

		timer := time.NewTimer(s.store.lockWait)

		select {
		case rec.lock <- struct{}{}:
			timer.Stop()
			s.held[id] = true
			s.order = append(s.order, id)
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
			return domain.ErrLockTimeout
		}
	}

	return nil
}

func (s *session) finish() {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	for i := len(s.order) - 1; i >= 0; i-- {
		<-s.store.records[s.order[i]].lock
	}

	s.order = nil
	s.held = nil
	s.done = true
}
