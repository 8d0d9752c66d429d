// Package tax computes per-line tax amounts and document totals. It is a
// pure function library: no side effects, decimal money, amounts rounded to
// the currency minor unit (2 places).
package tax

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/swairua/invoicing-software-sub001/internal/domain"
	"github.com/swairua/invoicing-software-sub001/internal/domain/entity"
)

var oneHundred = decimal.NewFromInt(100)

// Breakdown is the result of pricing a single line item.
type Breakdown struct {
	Subtotal            decimal.Decimal
	DiscountAmount      decimal.Decimal
	AfterDiscount       decimal.Decimal
	VATAmount           decimal.Decimal
	AdditionalTaxAmount decimal.Decimal
	LineTotal           decimal.Decimal
}

// Totals aggregates line breakdowns into document totals.
type Totals struct {
	Subtotal            decimal.Decimal
	DiscountAmount      decimal.Decimal
	VATAmount           decimal.Decimal
	AdditionalTaxAmount decimal.Decimal
	Total               decimal.Decimal
}

// CalculateLineTotal prices one line item against its product. The order is
// fixed: subtotal, discount, VAT on the discounted base, then additional
// taxes. Simple additional taxes each apply to the discounted base; a
// compound tax applies to the discounted base plus every additional tax
// already applied, in selection order. The product's VAT never feeds the
// additional-tax base.
func CalculateLineTotal(item entity.LineItem, product *entity.Product) (Breakdown, error) {
	var b Breakdown
	if product == nil {
		return b, fmt.Errorf("line item has no product: %w", domain.ErrValidation)
	}
	if !item.Quantity.GreaterThan(decimal.Zero) {
		return b, fmt.Errorf("quantity must be positive: %w", domain.ErrValidation)
	}
	if item.UnitPrice.LessThan(decimal.Zero) {
		return b, fmt.Errorf("unit price must not be negative: %w", domain.ErrValidation)
	}
	if item.DiscountPercent.LessThan(decimal.Zero) || item.DiscountPercent.GreaterThan(oneHundred) {
		return b, fmt.Errorf("discount percent must be within 0..100: %w", domain.ErrValidation)
	}

	b.Subtotal = item.Quantity.Mul(item.UnitPrice).Round(2)
	b.DiscountAmount = b.Subtotal.Mul(item.DiscountPercent).Div(oneHundred).Round(2)
	b.AfterDiscount = b.Subtotal.Sub(b.DiscountAmount)

	if product.Taxable {
		b.VATAmount = b.AfterDiscount.Mul(product.TaxRate).Div(oneHundred).Round(2)
	}

	// Running base for compound taxes: discounted amount plus every
	// additional tax applied so far.
	runningBase := b.AfterDiscount
	for _, t := range item.AdditionalTaxes {
		if t.Rate.LessThan(decimal.Zero) {
			return Breakdown{}, fmt.Errorf("tax %q has negative rate: %w", t.Name, domain.ErrValidation)
		}
		base := b.AfterDiscount
		if t.IsCompound {
			base = runningBase
		}
		amount := base.Mul(t.Rate).Div(oneHundred).Round(2)
		b.AdditionalTaxAmount = b.AdditionalTaxAmount.Add(amount)
		runningBase = runningBase.Add(amount)
	}

	b.LineTotal = b.AfterDiscount.Add(b.VATAmount).Add(b.AdditionalTaxAmount)
	return b, nil
}

// PriceLines prices every line that has a selected product and drops
// placeholder rows (empty product reference). It returns the priced copies
// with LineTotal filled in, plus the document totals.
func PriceLines(items []entity.LineItem, products map[string]*entity.Product) ([]entity.LineItem, Totals, error) {
	var totals Totals
	priced := make([]entity.LineItem, 0, len(items))
	for _, item := range items {
		if item.ProductID == "" {
			continue // placeholder row, excluded from all totals
		}
		b, err := CalculateLineTotal(item, products[item.ProductID])
		if err != nil {
			return nil, Totals{}, err
		}
		item.LineTotal = b.LineTotal
		priced = append(priced, item)

		totals.Subtotal = totals.Subtotal.Add(b.Subtotal)
		totals.DiscountAmount = totals.DiscountAmount.Add(b.DiscountAmount)
		totals.VATAmount = totals.VATAmount.Add(b.VATAmount)
		totals.AdditionalTaxAmount = totals.AdditionalTaxAmount.Add(b.AdditionalTaxAmount)
	}
	totals.Total = totals.Subtotal.
		Sub(totals.DiscountAmount).
		Add(totals.VATAmount).
		Add(totals.AdditionalTaxAmount)
	return priced, totals, nil
}
