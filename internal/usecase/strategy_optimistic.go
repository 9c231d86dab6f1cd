package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/lftbrito/bip-teste-integrado/internal/domain"
	"github.com/lftbrito/bip-teste-integrado/internal/infrastructure/metrics"
)

// OptimisticStrategy resolves write conflicts by detecting them after
// the fact and retrying with fresh reads. Reads take no locks; the
// version check on the conditional write is what prevents lost updates.
type OptimisticStrategy struct {
	store       BenefitStore
	maxAttempts int
	backoff     Backoff
	metrics     *metrics.Metrics
}

// NewOptimisticStrategy creates an OptimisticStrategy. metrics may be nil.
func NewOptimisticStrategy(store BenefitStore, maxAttempts int, backoff Backoff, m *metrics.Metrics) *OptimisticStrategy {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	if backoff == nil {
		backoff = LinearBackoff(DefaultRetryDelay)
	}

	return &OptimisticStrategy{
		store:       store,
		maxAttempts: maxAttempts,
		backoff:     backoff,
		metrics:     m,
	}
}

// Execute runs the bounded retry loop. Version conflicts trigger a
// fresh attempt after a linear backoff; every other failure is terminal
// on first detection because it is not a concurrency artifact.
func (s *OptimisticStrategy) Execute(ctx context.Context, req domain.TransferRequest) (*domain.TransferDetail, error) {
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		detail, err := s.attempt(ctx, req)
		if err == nil {
			return detail, nil
		}

		if !errors.Is(err, domain.ErrVersionConflict) {
			return nil, err
		}

		log.Warn().
			Str("source_id", req.SourceID).
			Str("destination_id", req.DestinationID).
			Int("attempt", attempt).
			Int("max_attempts", s.maxAttempts).
			Msg("transfer hit version conflict, retrying")

		if s.metrics != nil {
			s.metrics.TransferRetries.Inc()
		}

		if attempt == s.maxAttempts {
			break
		}

		if err := s.backoff(ctx, attempt); err != nil {
			return nil, err
		}
	}

	return nil, domain.ErrConcurrencyExhausted
}

func (s *OptimisticStrategy) attempt(ctx context.Context, req domain.TransferRequest) (*domain.TransferDetail, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sess, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.Rollback(ctx)

	source, err := sess.Get(ctx, req.SourceID, LockNone)
	if err != nil {
		return nil, err
	}

	destination, err := sess.Get(ctx, req.DestinationID, LockNone)
	if err != nil {
		return nil, err
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
