package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lftbrito/bip-teste-integrado/internal/domain"
	"github.com/lftbrito/bip-teste-integrado/internal/infrastructure/metrics"
)

// BenefitUseCase handles benefit lifecycle outside of transfers:
// creation, lookup, updates and soft deletion. Updates go through the
// store's conditional write so every external mutation also bumps the
// record version; conflicts with racing transfers are retried.
type BenefitUseCase struct {
	store   BenefitStore
	idGen   IDGenerator
	retrier *Retrier
	metrics *metrics.Metrics
}

// NewBenefitUseCase creates a BenefitUseCase. metrics may be nil.
func NewBenefitUseCase(store BenefitStore, idGen IDGenerator, retrier *Retrier, m *metrics.Metrics) *BenefitUseCase {
	return &BenefitUseCase{
		store:   store,
		idGen:   idGen,
		retrier: retrier,
		metrics: m,
	}
}

// CreateBenefitInput represents input for creating a benefit.
type CreateBenefitInput struct {
	Name        string
	Description string
	Amount      decimal.Decimal
}

// UpdateBenefitInput represents input for updating a benefit. Active is
// optional; nil leaves the flag unchanged.
type UpdateBenefitInput struct {
	Name        string
	Description string
	Amount      decimal.Decimal
	Active      *bool
}

// Create creates a new active benefit with version at its initial value.
func (uc *BenefitUseCase) Create(ctx context.Context, input CreateBenefitInput) (*domain.Benefit, error) {
	if err := validateBenefitFields(input.Name, input.Amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	benefit := &domain.Benefit{
		ID:          uc.idGen.Generate(),
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Amount:      input.Amount,
		Active:      true,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.store.Create(ctx, benefit); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.BenefitsCreated.Inc()
	}

	return benefit, nil
}

// Get retrieves a benefit by ID.
func (uc *BenefitUseCase) Get(ctx context.Context, id string) (*domain.Benefit, error) {
	return uc.store.GetByID(ctx, id)
}

// List lists all benefits, active and inactive.
func (uc *BenefitUseCase) List(ctx context.Context) ([]*domain.Benefit, error) {
	return uc.store.List(ctx)
}

// ListActive lists only active benefits.
func (uc *BenefitUseCase) ListActive(ctx context.Context) ([]*domain.Benefit, error) {
	return uc.store.ListActive(ctx)
}

// Update replaces the mutable fields of a benefit.
func (uc *BenefitUseCase) Update(ctx context.Context, id string, input UpdateBenefitInput) (*domain.Benefit, error) {
	if err := validateBenefitFields(input.Name, input.Amount); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)

	taken, err := uc.store.ExistsByName(ctx, name, id)
	if err != nil {
		return nil, err
	}

	if taken {
		return nil, &domain.NameTakenError{Name: name}
	}

	return uc.mutate(ctx, id, func(b *domain.Benefit) {
		b.Name = name
		b.Description = input.Description
		b.Amount = input.Amount
		if input.Active != nil {
			b.Active = *input.Active
		}
	})
}

// Deactivate soft-deletes a benefit. The record is kept; transfers
// touching it fail with an inactive error from then on.
func (uc *BenefitUseCase) Deactivate(ctx context.Context, id string) error {
	_, err := uc.mutate(ctx, id, func(b *domain.Benefit) {
		b.Active = false
	})
	if err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.BenefitsDeactivated.Inc()
	}

	return nil
}

// mutate applies fn to a fresh read of the benefit and commits it via a
// conditional write, retrying when a concurrent transfer wins the race.
func (uc *BenefitUseCase) mutate(ctx context.Context, id string, fn func(*domain.Benefit)) (*domain.Benefit, error) {
	var updated *domain.Benefit

	err := uc.retrier.Retry(ctx, func() error {
		sess, err := uc.store.Begin(ctx)
		if err != nil {
			return err
		}
		defer sess.Rollback(ctx)

		benefit, err := sess.Get(ctx, id, LockNone)
		if err != nil {
			return err
		}

		fn(benefit)

		if benefit.Amount.IsNegative() {
			return fmt.Errorf("%w: benefit amount must not go negative", domain.ErrInvalidAmount)
		}

		if err := sess.ConditionalWrite(ctx, benefit); err != nil {
			return err
		}

		if err := sess.Commit(ctx); err != nil {
			return err
		}

		benefit.Version++
		benefit.UpdatedAt = time.Now().UTC()
		updated = benefit
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func validateBenefitFields(name string, amount decimal.Decimal) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name", domain.ErrMissingField)
	}

	if amount.IsNegative() {
		return fmt.Errorf("%w: benefit amount must not be negative", domain.ErrInvalidAmount)
	}

	return nil
}
