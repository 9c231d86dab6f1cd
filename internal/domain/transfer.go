package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransferRequest asks for a value movement between two benefits.
type TransferRequest struct {
	SourceID      string
	DestinationID string
	Amount        decimal.Decimal
}

// Validate checks the request shape. It runs before any store access.
func (r TransferRequest) Validate() error {
	if r.SourceID == "" {
		return fmt.Errorf("%w: source_id", ErrMissingField)
	}

	if r.DestinationID == "" {
		return fmt.Errorf("%w: destination_id", ErrMissingField)
	}

	if r.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if r.SourceID == r.DestinationID {
		return ErrSameBenefit
	}

	return nil
}

// TransferDetail captures balances around a completed transfer.
type TransferDetail struct {
	SourceID                 string
	DestinationID            string
	Amount                   decimal.Decimal
	SourceBalanceBefore      decimal.Decimal
	SourceBalanceAfter       decimal.Decimal
	DestinationBalanceBefore decimal.Decimal
	DestinationBalanceAfter  decimal.Decimal
	Timestamp                time.Time
}

// TransferResult is the outcome of a successful transfer.
type TransferResult struct {
	Success bool
	Message string
	Detail  *TransferDetail
}
