package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock movement types.
const (
	MovementTypeIn  = "in"
	MovementTypeOut = "out"
)

// StockMovement is one append-only audit record of an inventory change.
// NewStock must equal PreviousStock plus or minus Quantity (out movements
// clamp at zero on oversell).
type StockMovement struct {
	ID            string
	ProductID     string
	Type          string // in, out
	Quantity      decimal.Decimal
	PreviousStock decimal.Decimal
	NewStock      decimal.Decimal
	Reference     string // document number that caused the movement
	CreatedAt     time.Time
}
