package entity

import "github.com/shopspring/decimal"

// LineItem is one product row on a document. A row with an empty ProductID
// is a placeholder the UI keeps while the user builds the row; placeholders
// are excluded from all totals.
type LineItem struct {
	ProductID       string
	Description     string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal // 0..100
	AdditionalTaxes []TaxDefinition // applied in selection order
	LineTotal       decimal.Decimal
}
