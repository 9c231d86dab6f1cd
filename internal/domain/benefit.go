// Package domain holds the benefit model and the errors the transfer
// engine distinguishes. Balances are exact decimals; every committed
// mutation of a benefit advances its version by one.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role names the side a benefit plays in a transfer.
type Role string

const (
	RoleSource      Role = "source"
	RoleDestination Role = "destination"
)

// Benefit is a named balance holder. Version counts committed
// mutations and backs the optimistic conflict check.
type Benefit struct {
	ID          string
	Name        string
	Description string
	Amount      decimal.Decimal
	Active      bool
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EnsureActive fails with an InactiveError if the benefit has been
// soft-deleted. role identifies the side for the error message.
func (b *Benefit) EnsureActive(role Role) error {
	if !b.Active {
		return &InactiveError{ID: b.ID, Role: role}
	}

	return nil
}

// EnsureSufficientBalance fails if the benefit cannot cover amount.
func (b *Benefit) EnsureSufficientBalance(amount decimal.Decimal) error {
	if b.Amount.LessThan(amount) {
		return &InsufficientBalanceError{Available: b.Amount, Requested: amount}
	}

	return nil
}

// ApplyDebit returns the balance after subtracting amount.
func (b *Benefit) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return b.Amount.Sub(amount)
}

// ApplyCredit returns the balance after adding amount.
func (b *Benefit) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return b.Amount.Add(amount)
}
