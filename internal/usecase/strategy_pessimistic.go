package usecase

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/lftbrito/bip-teste-integrado/internal/domain"
	"github.com/lftbrito/bip-teste-integrado/internal/infrastructure/metrics"
)

// PessimisticStrategy resolves write conflicts by preventing them:
// both benefits are locked exclusively before they are read, always in
// ascending id order. Any two transfers touching an overlapping pair
// contend for locks in the same relative order, so no wait cycle can
// form. Contention is resolved by blocking, never by retrying.
type PessimisticStrategy struct {
	store   BenefitStore
	metrics *metrics.Metrics
}

// NewPessimisticStrategy creates a PessimisticStrategy. metrics may be nil.
func NewPessimisticStrategy(store BenefitStore, m *metrics.Metrics) *PessimisticStrategy {
	return &PessimisticStrategy{store: store, metrics: m}
}

// Execute acquires both locks in canonical order, validates, mutates
// and commits. A lock-wait timeout surfaces as domain.ErrLockTimeout.
func (s *PessimisticStrategy) Execute(ctx context.Context, req domain.TransferRequest) (*domain.TransferDetail, error) {
	firstID, secondID := req.SourceID, req.DestinationID
	if secondID < firstID {
		firstID, secondID = secondID, firstID
	}

	sess, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.Rollback(ctx)

	first, err := sess.Get(ctx, firstID, LockExclusive)
	if err != nil {
		return nil, s.observe(err)
	}

	second, err := sess.Get(ctx, secondID, LockExclusive)
	if err != nil {
		return nil, s.observe(err)
	}

	source, destination := first, second
	if req.SourceID != firstID {
		source, destination = second, first
	}

	detail, err := mutatePair(ctx, sess, source, destination, req.Amount)
	if err != nil {
		return nil, err
	}

	if err := sess.Commit(ctx); err != nil {
		return nil, err
	}

	return detail, nil
}

func (s *PessimisticStrategy) observe(err error) error {
	if s.metrics != nil && errors.Is(err, domain.ErrLockTimeout) {
		s.metrics.LockTimeouts.Inc()
	}
	return err
}

// mutatePair runs the invariant checks against the freshest reads and
// stages both balance writes on the session. Shared by both strategies;
// the session's commit decides atomicity.
func mutatePair(ctx context.Context, sess StoreSession, source, destination *domain.Benefit, amount decimal.Decimal) (*domain.TransferDetail, error) {
	if err := source.EnsureActive(domain.RoleSource); err != nil {
		return nil, err
	}

	if err := destination.EnsureActive(domain.RoleDestination); err != nil {
		return nil, err
	}

	if err := source.EnsureSufficientBalance(amount); err != nil {
		return nil, err
	}

	detail := &domain.TransferDetail{
		SourceID:                 source.ID,
		DestinationID:            destination.ID,
		Amount:                   amount,
		SourceBalanceBefore:      source.Amount,
		DestinationBalanceBefore: destination.Amount,
		SourceBalanceAfter:       source.ApplyDebit(amount),
		DestinationBalanceAfter:  destination.ApplyCredit(amount),
	}

	updatedSource := *source
	updatedSource.Amount = detail.SourceBalanceAfter

	if err := sess.ConditionalWrite(ctx, &updatedSource); err != nil {
		return nil, err
	}

	updatedDestination := *destination
	updatedDestination.Amount = detail.DestinationBalanceAfter

	if err := sess.ConditionalWrite(ctx, &updatedDestination); err != nil {
		return nil, err
	}

	return detail, nil
}
