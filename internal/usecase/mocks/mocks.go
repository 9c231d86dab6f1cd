package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/lftbrito/bip-teste-integrado/internal/domain"
	"github.com/lftbrito/bip-teste-integrado/internal/usecase"
)

// MockBenefitStore is a mock implementation of BenefitStore. Without
// overrides it behaves as a map-backed store whose sessions stage
// version-checked writes, so strategy tests get real conflict semantics.
type MockBenefitStore struct {
	mu       sync.RWMutex
	benefits map[string]*domain.Benefit

	BeginFunc        func(ctx context.Context) (usecase.StoreSession, error)
	CreateFunc       func(ctx context.Context, benefit *domain.Benefit) error
	GetByIDFunc      func(ctx context.Context, id string) (*domain.Benefit, error)
	ListFunc         func(ctx context.Context) ([]*domain.Benefit, error)
	ListActiveFunc   func(ctx context.Context) ([]*domain.Benefit, error)
	ExistsByNameFunc func(ctx context.Context, name, excludeID string) (bool, error)
}

func NewMockBenefitStore() *MockBenefitStore {
	return &MockBenefitStore{
		benefits: make(map[string]*domain.Benefit),
	}
}

// Seed installs a benefit directly, bypassing Create validation.
func (m *MockBenefitStore) Seed(benefit *domain.Benefit) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := *benefit
	m.benefits[b.ID] = &b
}

func (m *MockBenefitStore) Begin(ctx context.Context) (usecase.StoreSession, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockStoreSession{
		store:  m,
		staged: make(map[string]domain.Benefit),
	}, nil
}

func (m *MockBenefitStore) Create(ctx context.Context, benefit *domain.Benefit) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, benefit)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.benefits {
		if b.Name == benefit.Name {
			return &domain.NameTakenError{Name: benefit.Name}
		}
	}
	b := *benefit
	m.benefits[b.ID] = &b
	return nil
}

func (m *MockBenefitStore) GetByID(ctx context.Context, id string) (*domain.Benefit, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if b, ok := m.benefits[id]; ok {
		copied := *b
		return &copied, nil
	}
	return nil, &domain.NotFoundError{ID: id}
}

func (m *MockBenefitStore) List(ctx context.Context) ([]*domain.Benefit, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var benefits []*domain.Benefit
	for _, b := range m.benefits {
		copied := *b
		benefits = append(benefits, &copied)
	}
	return benefits, nil
}

func (m *MockBenefitStore) ListActive(ctx context.Context) ([]*domain.Benefit, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	all, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	var active []*domain.Benefit
	for _, b := range all {
		if b.Active {
			active = append(active, b)
		}
	}
	return active, nil
}

func (m *MockBenefitStore) ExistsByName(ctx context.Context, name, excludeID string) (bool, error) {
	if m.ExistsByNameFunc != nil {
		return m.ExistsByNameFunc(ctx, name, excludeID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, b := range m.benefits {
		if b.Name == name && b.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

// MockStoreSession is a mock implementation of StoreSession backed by a
// MockBenefitStore. Field overrides replace individual operations.
type MockStoreSession struct {
	store  *MockBenefitStore
	staged map[string]domain.Benefit

	GetFunc              func(ctx context.Context, id string, mode usecase.LockMode) (*domain.Benefit, error)
	ConditionalWriteFunc func(ctx context.Context, benefit *domain.Benefit) error
	CommitFunc           func(ctx context.Context) error
	RollbackFunc         func(ctx context.Context) error
}

// NewMockStoreSession creates a session over store with default staging
// behavior. Used by tests that need to override single operations.
func NewMockStoreSession(store *MockBenefitStore) *MockStoreSession {
	return &MockStoreSession{
		store:  store,
		staged: make(map[string]domain.Benefit),
	}
}

func (s *MockStoreSession) Get(ctx context.Context, id string, mode usecase.LockMode) (*domain.Benefit, error) {
	if s.GetFunc != nil {
		return s.GetFunc(ctx, id, mode)
	}
	return s.store.GetByID(ctx, id)
}

func (s *MockStoreSession) ConditionalWrite(ctx context.Context, benefit *domain.Benefit) error {
	if s.ConditionalWriteFunc != nil {
		return s.ConditionalWriteFunc(ctx, benefit)
	}
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()
	current, ok := s.store.benefits[benefit.ID]
	if !ok {
		return &domain.NotFoundError{ID: benefit.ID}
	}
	if current.Version != benefit.Version {
		return domain.ErrVersionConflict
	}
	s.staged[benefit.ID] = *benefit
	return nil
}

func (s *MockStoreSession) Commit(ctx context.Context) error {
	if s.CommitFunc != nil {
		return s.CommitFunc(ctx)
	}
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	for id, staged := range s.staged {
		current, ok := s.store.benefits[id]
		if !ok {
			return &domain.NotFoundError{ID: id}
		}
		if current.Version != staged.Version {
			return domain.ErrVersionConflict
		}
	}
	now := time.Now().UTC()
	for id, staged := range s.staged {
		staged.Version++
		staged.UpdatedAt = now
		copied := staged
		s.store.benefits[id] = &copied
	}
	s.staged = make(map[string]domain.Benefit)
	return nil
}

func (s *MockStoreSession) Rollback(ctx context.Context) error {
	if s.RollbackFunc != nil {
		return s.RollbackFunc(ctx)
	}
	s.staged = make(map[string]domain.Benefit)
	return nil
}
