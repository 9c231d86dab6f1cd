package dto

import (
	"github.com/shopspring/decimal"

	"github.com/lftbrito/bip-teste-integrado/internal/domain"
	"github.com/lftbrito/bip-teste-integrado/internal/usecase"
)

// CreateBenefitRequest represents a request to create a benefit.
type CreateBenefitRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateBenefitRequest) ToUseCaseInput() usecase.CreateBenefitInput {
	return usecase.CreateBenefitInput{
		Name:        r.Name,
		Description: r.Description,
		Amount:      r.Amount,
	}
}

// UpdateBenefitRequest represents a request to update a benefit.
type UpdateBenefitRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Active      *bool           `json:"active,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateBenefitRequest) ToUseCaseInput() usecase.UpdateBenefitInput {
	return usecase.UpdateBenefitInput{
		Name:        r.Name,
		Description: r.Description,
		Amount:      r.Amount,
		Active:      r.Active,
	}
}

// TransferRequest represents a request to transfer value between benefits.
type TransferRequest struct {
	SourceID      string          `json:"source_id"`
	DestinationID string          `json:"destination_id"`
	Amount        decimal.Decimal `json:"amount"`
}

// ToDomain converts to a domain transfer request.
func (r *TransferRequest) ToDomain() domain.TransferRequest {
	return domain.TransferRequest{
		SourceID:      r.SourceID,
		DestinationID: r.DestinationID,
		Amount:        r.Amount,
	}
}
