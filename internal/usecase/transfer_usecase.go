package usecase

import (
	"context"
	"time"

	"github.com/lftbrito/bip-teste-integrado/internal/domain"
	"github.com/lftbrito/bip-teste-integrado/internal/infrastructure/metrics"
)

// TransferUseCase orchestrates a two-party value transfer: request
// validation, then delegation to the configured conflict resolution
// strategy. It is stateless; all coordination state lives in the store.
type TransferUseCase struct {
	strategy TransferStrategy
	metrics  *metrics.Metrics
}

// NewTransferUseCase creates a TransferUseCase. metrics may be nil.
func NewTransferUseCase(strategy TransferStrategy, m *metrics.Metrics) *TransferUseCase {
	return &TransferUseCase{strategy: strategy, metrics: m}
}

// Transfer moves an amount between two benefits. Shape validation runs
// before any store access; every failure kind from the strategy is
// propagated unchanged.
func (uc *TransferUseCase) Transfer(ctx context.Context, req domain.TransferRequest) (*domain.TransferResult, error) {
	if err := req.Validate(); err != nil {
		uc.observeFailure(err)
		return nil, err
	}

	start := time.Now()

	detail, err := uc.strategy.Execute(ctx, req)
	if err != nil {
		uc.observeFailure(err)
		return nil, err
	}

	detail.Timestamp = time.Now().UTC()

	if uc.metrics != nil {
		uc.metrics.TransfersSucceeded.Inc()
		uc.metrics.TransferDuration.Observe(time.Since(start).Seconds())
		amount, _ := detail.Amount.Float64()
		uc.metrics.TransferAmount.Observe(amount)
	}

	return &domain.TransferResult{
		Success: true,
		Message: "transfer completed",
		Detail:  detail,
	}, nil
}

func (uc *TransferUseCase) observeFailure(err error) {
	if uc.metrics != nil {
		uc.metrics.TransfersFailed.WithLabelValues(domain.KindOf(err)).Inc()
	}
}
