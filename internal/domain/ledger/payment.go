// Package ledger holds the balance and stock bookkeeping primitives every
// document mutation goes through. Callers pass entity copies obtained
// inside their transaction; the primitives mutate those copies in place.
package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/swairua/invoicing-software-sub001/internal/domain"
	"github.com/swairua/invoicing-software-sub001/internal/domain/entity"
)

// ApplyPayment applies amount against the invoice's outstanding balance.
// Balance is kept at the currency minor unit and clamped to exactly zero;
// reaching zero marks the invoice paid.
func ApplyPayment(inv *entity.Document, amount decimal.Decimal, now time.Time) error {
	if inv.Kind != entity.KindInvoice {
		return fmt.Errorf("payments apply to invoices only: %w", domain.ErrValidation)
	}
	if inv.Status == entity.StatusCancelled {
		return fmt.Errorf("invoice %s is cancelled: %w", inv.Number, domain.ErrInvalidTransition)
	}
	if !amount.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidAmount
	}
	if amount.GreaterThan(inv.Balance) {
		return domain.ErrOverPayment
	}

	inv.AmountPaid = inv.AmountPaid.Add(amount).Round(2)
	inv.Balance = inv.Total.Sub(inv.AmountPaid).Round(2)
	if !inv.Balance.GreaterThan(decimal.Zero) {
		inv.Balance = decimal.Zero
		inv.Status = entity.StatusPaid
	}
	inv.UpdatedAt = now
	return nil
}

// ReduceCustomerBalance decreases the party's aggregate outstanding amount
// by the paid amount, floored at zero.
func ReduceCustomerBalance(c *entity.Customer, amount decimal.Decimal, now time.Time) {
	c.Balance = c.Balance.Sub(amount).Round(2)
	if c.Balance.LessThan(decimal.Zero) {
		c.Balance = decimal.Zero
	}
	c.UpdatedAt = now
}
