package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/lftbrito/bip-teste-integrado/internal/domain"
	"github.com/lftbrito/bip-teste-integrado/internal/usecase"
	"github.com/lftbrito/bip-teste-integrado/internal/usecase/mocks"
)

func newBenefitUseCase(t *testing.T, store *mocks.MockBenefitStore) *usecase.BenefitUseCase {
	t.Helper()

	ctrl := gomock.NewController(t)
	idGen := mocks.NewMockIDGenerator(ctrl)
	idGen.EXPECT().Generate().Return("generated-id").AnyTimes()

	return usecase.NewBenefitUseCase(store, idGen, usecase.NewRetrier(), nil)
}

func TestBenefitUseCase_Create(t *testing.T) {
	store := mocks.NewMockBenefitStore()
	uc := newBenefitUseCase(t, store)

	benefit, err := uc.Create(context.Background(), usecase.CreateBenefitInput{
		Name:        "Meal voucher",
		Description: "monthly meal allowance",
		Amount:      decimal.NewFromInt(500),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if benefit.ID != "generated-id" {
		t.Errorf("expected generated id, got %s", benefit.ID)
	}
	if !benefit.Active {
		t.Error("new benefit must be active")
	}
	if benefit.Version != 1 {
		t.Errorf("expected initial version 1, got %d", benefit.Version)
	}
}

func TestBenefitUseCase_Create_Validation(t *testing.T) {
	store := mocks.NewMockBenefitStore()
	uc := newBenefitUseCase(t, store)

	tests := []struct {
		name    string
		input   usecase.CreateBenefitInput
		wantErr error
	}{
		{
			name:    "blank name",
			input:   usecase.CreateBenefitInput{Name: "   ", Amount: decimal.NewFromInt(10)},
			wantErr: domain.ErrMissingField,
		},
		{
			name:    "negative amount",
			input:   usecase.CreateBenefitInput{Name: "x", Amount: decimal.NewFromInt(-1)},
			wantErr: domain.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestBenefitUseCase_Create_DuplicateName(t *testing.T) {
	store := mocks.NewMockBenefitStore()
	store.Seed(&domain.Benefit{ID: "b1", Name: "Meal voucher", Active: true, Version: 1})

	uc := newBenefitUseCase(t, store)

	_, err := uc.Create(context.Background(), usecase.CreateBenefitInput{
		Name:   "Meal voucher",
		Amount: decimal.NewFromInt(10),
	})

	var nameTaken *domain.NameTakenError
	if !errors.As(err, &nameTaken) {
		t.Fatalf("expected NameTakenError, got %v", err)
	}
}

func TestBenefitUseCase_Update(t *testing.T) {
	store := mocks.NewMockBenefitStore()
	store.Seed(&domain.Benefit{
		ID: "b1", Name: "Old name", Amount: decimal.NewFromInt(100),
		Active: true, Version: 3,
	})

	uc := newBenefitUseCase(t, store)

	inactive := false
	benefit, err := uc.Update(context.Background(), "b1", usecase.UpdateBenefitInput{
		Name:        "New name",
		Description: "updated",
		Amount:      decimal.NewFromInt(250),
		Active:      &inactive,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if benefit.Name != "New name" {
		t.Errorf("expected updated name, got %s", benefit.Name)
	}
	if benefit.Active {
		t.Error("expected benefit deactivated via update")
	}
	if benefit.Version != 4 {
		t.Errorf("expected version bump to 4, got %d", benefit.Version)
	}
}

func TestBenefitUseCase_Update_NameTaken(t *testing.T) {
	store := mocks.NewMockBenefitStore()
	store.Seed(&domain.Benefit{ID: "b1", Name: "First", Active: true, Version: 1})
	store.Seed(&domain.Benefit{ID: "b2", Name: "Second", Active: true, Version: 1})

	uc := newBenefitUseCase(t, store)

	_, err := uc.Update(context.Background(), "b2", usecase.UpdateBenefitInput{
		Name:   "First",
		Amount: decimal.NewFromInt(10),
	})

	var nameTaken *domain.NameTakenError
	if !errors.As(err, &nameTaken) {
		t.Fatalf("expected NameTakenError, got %v", err)
	}
}

func TestBenefitUseCase_Update_RetriesVersionConflict(t *testing.T) {
	store := mocks.NewMockBenefitStore()
	store.Seed(&domain.Benefit{
		ID: "b1", Name: "Name", Amount: decimal.NewFromInt(100),
		Active: true, Version: 1,
	})

	begins := 0
	store.BeginFunc = func(ctx context.Context) (usecase.StoreSession, error) {
		begins++
		sess := mocks.NewMockStoreSession(store)
		if begins == 1 {
			sess.ConditionalWriteFunc = func(ctx context.Context, b *domain.Benefit) error {
				return domain.ErrVersionConflict
			}
		}
		return sess, nil
	}

	uc := newBenefitUseCase(t, store)

	_, err := uc.Update(context.Background(), "b1", usecase.UpdateBenefitInput{
		Name:   "Name",
		Amount: decimal.NewFromInt(150),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if begins != 2 {
		t.Errorf("expected conflict to be retried once, got %d attempts", begins)
	}
}

func TestBenefitUseCase_Deactivate(t *testing.T) {
	store := mocks.NewMockBenefitStore()
	store.Seed(&domain.Benefit{
		ID: "b1", Name: "Name", Amount: decimal.NewFromInt(100),
		Active: true, Version: 1,
	})

	uc := newBenefitUseCase(t, store)

	if err := uc.Deactivate(context.Background(), "b1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	benefit, _ := store.GetByID(context.Background(), "b1")
	if benefit.Active {
		t.Error("expected benefit to be inactive")
	}
	if benefit.Version != 2 {
		t.Errorf("soft delete must bump the version, got %d", benefit.Version)
	}
}

func TestBenefitUseCase_Deactivate_NotFound(t *testing.T) {
	store := mocks.NewMockBenefitStore()
	uc := newBenefitUseCase(t, store)

	err := uc.Deactivate(context.Background(), "missing")

	var notFound *domain.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
