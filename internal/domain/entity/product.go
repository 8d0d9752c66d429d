package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a sellable SKU with its tax treatment and inventory
// counters. AvailableStock = CurrentStock - ReservedStock (best effort,
// never negative). Stock fields change only through stock movements.
type Product struct {
	ID             string
	SKU            string
	Name           string
	Description    string
	SellingPrice   decimal.Decimal
	Taxable        bool
	TaxRate        decimal.Decimal // percent, e.g. 16 for 16% VAT
	TrackInventory bool
	CurrentStock   decimal.Decimal
	ReservedStock  decimal.Decimal
	AvailableStock decimal.Decimal
	ReorderLevel   decimal.Decimal
	MinStock       decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
