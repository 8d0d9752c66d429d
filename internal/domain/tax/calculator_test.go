package tax_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swairua/invoicing-software-sub001/internal/domain"
	"github.com/swairua/invoicing-software-sub001/internal/domain/entity"
	"github.com/swairua/invoicing-software-sub001/internal/domain/tax"
)

// Reference vector, worked by hand:
//
//	5 × 500.00              = 2500.00 subtotal
//	10% discount            =  250.00
//	after discount          = 2250.00
//	16% VAT on 2250.00      =  360.00
//	line total              = 2610.00
func taxableProduct() *entity.Product {
	return &entity.Product{
		ID:      "prod-1",
		SKU:     "WID-01",
		Name:    "Widget",
		Taxable: true,
		TaxRate: decimal.NewFromInt(16),
	}
}

func baseLine() entity.LineItem {
	return entity.LineItem{
		ProductID:       "prod-1",
		Quantity:        decimal.NewFromInt(5),
		UnitPrice:       decimal.NewFromInt(500),
		DiscountPercent: decimal.NewFromInt(10),
	}
}

func TestCalculateLineTotal_ReferenceVector(t *testing.T) {
	b, err := tax.CalculateLineTotal(baseLine(), taxableProduct())
	require.NoError(t, err)

	assert.True(t, b.Subtotal.Equal(decimal.NewFromInt(2500)), "subtotal: %s", b.Subtotal)
	assert.True(t, b.DiscountAmount.Equal(decimal.NewFromInt(250)), "discount: %s", b.DiscountAmount)
	assert.True(t, b.AfterDiscount.Equal(decimal.NewFromInt(2250)), "after discount: %s", b.AfterDiscount)
	assert.True(t, b.VATAmount.Equal(decimal.NewFromInt(360)), "vat: %s", b.VATAmount)
	assert.True(t, b.LineTotal.Equal(decimal.NewFromInt(2610)), "line total: %s", b.LineTotal)
}

func TestCalculateLineTotal_NonTaxableProductSkipsVAT(t *testing.T) {
	product := taxableProduct()
	product.Taxable = false

	b, err := tax.CalculateLineTotal(baseLine(), product)
	require.NoError(t, err)

	assert.True(t, b.VATAmount.IsZero())
	assert.True(t, b.LineTotal.Equal(decimal.NewFromInt(2250)))
}

// Two simple additional taxes each apply to the discounted base
// independently: 2% of 2250 = 45.00 each.
func TestCalculateLineTotal_SimpleAdditionalTaxes(t *testing.T) {
	line := baseLine()
	line.AdditionalTaxes = []entity.TaxDefinition{
		{Name: "Catering Levy", Rate: decimal.NewFromInt(2)},
		{Name: "Tourism Levy", Rate: decimal.NewFromInt(2)},
	}

	b, err := tax.CalculateLineTotal(line, taxableProduct())
	require.NoError(t, err)

	assert.True(t, b.AdditionalTaxAmount.Equal(decimal.NewFromInt(90)), "additional: %s", b.AdditionalTaxAmount)
	// 2250 + 360 VAT + 90 levies
	assert.True(t, b.LineTotal.Equal(decimal.NewFromInt(2700)))
}

// A compound tax stacks on the discounted base plus every additional tax
// already applied. Simple 2% of 2250 = 45.00, then compound 5% of
// (2250 + 45) = 114.75. VAT never feeds the compound base.
func TestCalculateLineTotal_CompoundTaxStacksOnPriorTaxes(t *testing.T) {
	line := baseLine()
	line.AdditionalTaxes = []entity.TaxDefinition{
		{Name: "Catering Levy", Rate: decimal.NewFromInt(2)},
		{Name: "Excise", Rate: decimal.NewFromInt(5), IsCompound: true},
	}

	b, err := tax.CalculateLineTotal(line, taxableProduct())
	require.NoError(t, err)

	want := decimal.NewFromInt(45).Add(decimal.RequireFromString("114.75"))
	assert.True(t, b.AdditionalTaxAmount.Equal(want), "additional: %s", b.AdditionalTaxAmount)
}

// Two compound taxes stack sequentially: the second one's base includes
// the first one's amount.
func TestCalculateLineTotal_SequentialCompoundTaxes(t *testing.T) {
	line := baseLine()
	line.AdditionalTaxes = []entity.TaxDefinition{
		{Name: "Excise A", Rate: decimal.NewFromInt(10), IsCompound: true},
		{Name: "Excise B", Rate: decimal.NewFromInt(10), IsCompound: true},
	}

	b, err := tax.CalculateLineTotal(line, taxableProduct())
	require.NoError(t, err)

	// 10% of 2250 = 225.00, then 10% of (2250 + 225) = 247.50
	want := decimal.NewFromInt(225).Add(decimal.RequireFromString("247.50"))
	assert.True(t, b.AdditionalTaxAmount.Equal(want), "additional: %s", b.AdditionalTaxAmount)
}

func TestCalculateLineTotal_Validation(t *testing.T) {
	product := taxableProduct()

	cases := []struct {
		name   string
		mutate func(*entity.LineItem)
	}{
		{"zero quantity", func(l *entity.LineItem) { l.Quantity = decimal.Zero }},
		{"negative quantity", func(l *entity.LineItem) { l.Quantity = decimal.NewFromInt(-1) }},
		{"negative unit price", func(l *entity.LineItem) { l.UnitPrice = decimal.NewFromInt(-5) }},
		{"discount above 100", func(l *entity.LineItem) { l.DiscountPercent = decimal.NewFromInt(101) }},
		{"negative discount", func(l *entity.LineItem) { l.DiscountPercent = decimal.NewFromInt(-1) }},
		{"negative tax rate", func(l *entity.LineItem) {
			l.AdditionalTaxes = []entity.TaxDefinition{{Name: "Bad", Rate: decimal.NewFromInt(-2)}}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			line := baseLine()
			tc.mutate(&line)
			_, err := tax.CalculateLineTotal(line, product)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}

	t.Run("missing product", func(t *testing.T) {
		_, err := tax.CalculateLineTotal(baseLine(), nil)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestPriceLines_DropsPlaceholderRows(t *testing.T) {
	products := map[string]*entity.Product{"prod-1": taxableProduct()}
	items := []entity.LineItem{
		baseLine(),
		{Description: "to be decided", Quantity: decimal.NewFromInt(1)}, // no product
	}

	priced, totals, err := tax.PriceLines(items, products)
	require.NoError(t, err)

	require.Len(t, priced, 1)
	assert.True(t, totals.Total.Equal(decimal.NewFromInt(2610)), "total: %s", totals.Total)
}

func TestPriceLines_TotalsMatchLineSums(t *testing.T) {
	products := map[string]*entity.Product{"prod-1": taxableProduct()}

	second := baseLine()
	second.Quantity = decimal.NewFromInt(3)
	second.DiscountPercent = decimal.Zero
	second.AdditionalTaxes = []entity.TaxDefinition{
		{Name: "Levy", Rate: decimal.NewFromInt(2)},
	}

	priced, totals, err := tax.PriceLines([]entity.LineItem{baseLine(), second}, products)
	require.NoError(t, err)
	require.Len(t, priced, 2)

	sum := decimal.Zero
	for _, line := range priced {
		sum = sum.Add(line.LineTotal)
	}
	assert.True(t, totals.Total.Equal(sum), "totals %s vs line sum %s", totals.Total, sum)

	want := totals.Subtotal.
		Sub(totals.DiscountAmount).
		Add(totals.VATAmount).
		Add(totals.AdditionalTaxAmount)
	assert.True(t, totals.Total.Equal(want))
}
