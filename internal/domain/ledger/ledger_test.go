package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swairua/invoicing-software-sub001/internal/domain"
	"github.com/swairua/invoicing-software-sub001/internal/domain/entity"
	"github.com/swairua/invoicing-software-sub001/internal/domain/ledger"
)

var testNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func openInvoice(total int64) *entity.Document {
	t := decimal.NewFromInt(total)
	return &entity.Document{
		ID:      "inv-1",
		Kind:    entity.KindInvoice,
		Number:  "INV-2026-001",
		Status:  entity.StatusSent,
		Total:   t,
		Balance: t,
	}
}

func TestApplyPayment_PartialLeavesBalance(t *testing.T) {
	inv := openInvoice(2610)

	err := ledger.ApplyPayment(inv, decimal.NewFromInt(1000), testNow)
	require.NoError(t, err)

	assert.True(t, inv.AmountPaid.Equal(decimal.NewFromInt(1000)))
	assert.True(t, inv.Balance.Equal(decimal.NewFromInt(1610)))
	assert.Equal(t, entity.StatusSent, inv.Status)
}

func TestApplyPayment_FullSettlementMarksPaid(t *testing.T) {
	inv := openInvoice(2610)

	require.NoError(t, ledger.ApplyPayment(inv, decimal.NewFromInt(1000), testNow))
	require.NoError(t, ledger.ApplyPayment(inv, decimal.NewFromInt(1610), testNow))

	assert.True(t, inv.Balance.IsZero(), "balance must be exactly zero, got %s", inv.Balance)
	assert.True(t, inv.AmountPaid.Equal(inv.Total))
	assert.Equal(t, entity.StatusPaid, inv.Status)
}

func TestApplyPayment_OverpaymentRejected(t *testing.T) {
	inv := openInvoice(2610)

	err := ledger.ApplyPayment(inv, decimal.RequireFromString("2610.01"), testNow)
	assert.ErrorIs(t, err, domain.ErrOverPayment)
	assert.True(t, inv.AmountPaid.IsZero(), "rejected payment must not mutate the invoice")
}

func TestApplyPayment_NonPositiveAmountRejected(t *testing.T) {
	inv := openInvoice(100)

	assert.ErrorIs(t, ledger.ApplyPayment(inv, decimal.Zero, testNow), domain.ErrInvalidAmount)
	assert.ErrorIs(t, ledger.ApplyPayment(inv, decimal.NewFromInt(-50), testNow), domain.ErrInvalidAmount)
}

func TestApplyPayment_CancelledInvoiceRejected(t *testing.T) {
	inv := openInvoice(100)
	inv.Status = entity.StatusCancelled

	err := ledger.ApplyPayment(inv, decimal.NewFromInt(50), testNow)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestApplyPayment_NonInvoiceRejected(t *testing.T) {
	quo := openInvoice(100)
	quo.Kind = entity.KindQuotation

	err := ledger.ApplyPayment(quo, decimal.NewFromInt(50), testNow)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestReduceCustomerBalance_FlooredAtZero(t *testing.T) {
	c := &entity.Customer{Balance: decimal.NewFromInt(500)}

	ledger.ReduceCustomerBalance(c, decimal.NewFromInt(200), testNow)
	assert.True(t, c.Balance.Equal(decimal.NewFromInt(300)))

	ledger.ReduceCustomerBalance(c, decimal.NewFromInt(1000), testNow)
	assert.True(t, c.Balance.IsZero(), "balance must floor at zero, got %s", c.Balance)
}

func trackedProduct(stock int64) *entity.Product {
	s := decimal.NewFromInt(stock)
	return &entity.Product{
		ID:             "prod-1",
		SKU:            "WID-01",
		TrackInventory: true,
		CurrentStock:   s,
		AvailableStock: s,
	}
}

func TestPostStockMovement_InIncreasesStock(t *testing.T) {
	p := trackedProduct(10)

	m, err := ledger.PostStockMovement(p, entity.MovementTypeIn, decimal.NewFromInt(5), "OPENING", false, testNow)
	require.NoError(t, err)

	assert.True(t, p.CurrentStock.Equal(decimal.NewFromInt(15)))
	assert.True(t, m.PreviousStock.Equal(decimal.NewFromInt(10)))
	assert.True(t, m.NewStock.Equal(decimal.NewFromInt(15)))
	assert.False(t, ledger.Clamped(m))
}

func TestPostStockMovement_OutClampsAtZero(t *testing.T) {
	p := trackedProduct(3)

	m, err := ledger.PostStockMovement(p, entity.MovementTypeOut, decimal.NewFromInt(5), "INV-2026-001", false, testNow)
	require.NoError(t, err)

	assert.True(t, p.CurrentStock.IsZero())
	assert.True(t, p.AvailableStock.IsZero())
	// Audit keeps the requested quantity, not the clamped delta.
	assert.True(t, m.Quantity.Equal(decimal.NewFromInt(5)))
	assert.True(t, m.NewStock.IsZero())
	assert.True(t, ledger.Clamped(m))
}

func TestPostStockMovement_StrictRejectsOversell(t *testing.T) {
	p := trackedProduct(3)

	_, err := ledger.PostStockMovement(p, entity.MovementTypeOut, decimal.NewFromInt(5), "INV-2026-001", true, testNow)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, p.CurrentStock.Equal(decimal.NewFromInt(3)), "rejected movement must not mutate stock")
}

func TestPostStockMovement_ExactDrainIsNotClamped(t *testing.T) {
	p := trackedProduct(5)

	m, err := ledger.PostStockMovement(p, entity.MovementTypeOut, decimal.NewFromInt(5), "INV-2026-002", true, testNow)
	require.NoError(t, err)
	assert.True(t, p.CurrentStock.IsZero())
	assert.False(t, ledger.Clamped(m))
}

func TestPostStockMovement_AvailableNeverNegative(t *testing.T) {
	p := trackedProduct(10)
	p.ReservedStock = decimal.NewFromInt(8)
	p.AvailableStock = decimal.NewFromInt(2)

	_, err := ledger.PostStockMovement(p, entity.MovementTypeOut, decimal.NewFromInt(6), "INV-2026-003", false, testNow)
	require.NoError(t, err)

	// 4 on hand minus 8 reserved floors at zero.
	assert.True(t, p.CurrentStock.Equal(decimal.NewFromInt(4)))
	assert.True(t, p.AvailableStock.IsZero())
}

func TestPostStockMovement_Validation(t *testing.T) {
	p := trackedProduct(10)

	_, err := ledger.PostStockMovement(p, entity.MovementTypeOut, decimal.Zero, "X", false, testNow)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = ledger.PostStockMovement(p, "sideways", decimal.NewFromInt(1), "X", false, testNow)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
