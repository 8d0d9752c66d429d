package entity

import "github.com/shopspring/decimal"

// TaxDefinition is an additional levy that can be applied per line item
// beyond the product's default VAT (e.g. catering levy, excise duty).
// A compound tax applies to the amount after prior taxes instead of the
// pre-tax base.
type TaxDefinition struct {
	ID         string
	Name       string
	Rate       decimal.Decimal // percent
	IsCompound bool
}
