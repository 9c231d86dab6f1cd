package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lftbrito/bip-teste-integrado/internal/domain"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// BenefitResponse represents a benefit in API responses.
type BenefitResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Active      bool            `json:"active"`
	Version     int64           `json:"version"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// BenefitFromDomain converts a domain benefit to a response.
func BenefitFromDomain(b *domain.Benefit) BenefitResponse {
	return BenefitResponse{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		Amount:      b.Amount,
		Active:      b.Active,
		Version:     b.Version,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// BenefitsFromDomain converts a slice of domain benefits.
func BenefitsFromDomain(benefits []*domain.Benefit) []BenefitResponse {
	out := make([]BenefitResponse, 0, len(benefits))
	for _, b := range benefits {
		out = append(out, BenefitFromDomain(b))
	}

	return out
}

// TransferDetailResponse captures balances around a completed transfer.
type TransferDetailResponse struct {
	SourceID                 string          `json:"source_id"`
	DestinationID            string          `json:"destination_id"`
	Amount                   decimal.Decimal `json:"amount"`
	SourceBalanceBefore      decimal.Decimal `json:"source_balance_before"`
	SourceBalanceAfter       decimal.Decimal `json:"source_balance_after"`
	DestinationBalanceBefore decimal.Decimal `json:"destination_balance_before"`
	DestinationBalanceAfter  decimal.Decimal `json:"destination_balance_after"`
	Timestamp                time.Time       `json:"timestamp"`
}

// TransferResponse represents the outcome of a transfer.
type TransferResponse struct {
	Success bool                    `json:"success"`
	Message string                  `json:"message"`
	Detail  *TransferDetailResponse `json:"detail,omitempty"`
}

// TransferFromDomain converts a domain transfer result to a response.
func TransferFromDomain(r *domain.TransferResult) TransferResponse {
	resp := TransferResponse{
		Success: r.Success,
		Message: r.Message,
	}

	if r.Detail != nil {
		resp.Detail = &TransferDetailResponse{
			SourceID:                 r.Detail.SourceID,
			DestinationID:            r.Detail.DestinationID,
			Amount:                   r.Detail.Amount,
			SourceBalanceBefore:      r.Detail.SourceBalanceBefore,
			SourceBalanceAfter:       r.Detail.SourceBalanceAfter,
			DestinationBalanceBefore: r.Detail.DestinationBalanceBefore,
			DestinationBalanceAfter:  r.Detail.DestinationBalanceAfter,
			Timestamp:                r.Detail.Timestamp,
		}
	}

	return resp
}
