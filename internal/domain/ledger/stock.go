package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/swairua/invoicing-software-sub001/internal/domain"
	"github.com/swairua/invoicing-software-sub001/internal/domain/entity"
)

// PostStockMovement debits or credits the product's stock and returns the
// audit movement. Out movements clamp at zero by default (oversell is
// permitted and the caller logs it); with strict enabled an oversell is
// rejected with ErrInsufficientStock instead. AvailableStock is adjusted in
// lockstep and never goes negative.
func PostStockMovement(product *entity.Product, movementType string, quantity decimal.Decimal, reference string, strict bool, now time.Time) (*entity.StockMovement, error) {
	if !quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	previous := product.CurrentStock
	var next decimal.Decimal
	switch movementType {
	case entity.MovementTypeIn:
		next = previous.Add(quantity)
	case entity.MovementTypeOut:
		next = previous.Sub(quantity)
		if next.LessThan(decimal.Zero) {
			if strict {
				return nil, fmt.Errorf("product %s has %s in stock, %s requested: %w",
					product.SKU, previous, quantity, domain.ErrInsufficientStock)
			}
			next = decimal.Zero
		}
	default:
		return nil, fmt.Errorf("unknown movement type %q: %w", movementType, domain.ErrValidation)
	}

	product.CurrentStock = next
	product.AvailableStock = next.Sub(product.ReservedStock)
	if product.AvailableStock.LessThan(decimal.Zero) {
		product.AvailableStock = decimal.Zero
	}
	product.UpdatedAt = now

	return &entity.StockMovement{
		ID:            uuid.New().String(),
		ProductID:     product.ID,
		Type:          movementType,
		Quantity:      quantity,
		PreviousStock: previous,
		NewStock:      next,
		Reference:     reference,
		CreatedAt:     now,
	}, nil
}

// Clamped reports whether the movement hit the zero floor, i.e. the debit
// was larger than the stock on hand.
func Clamped(m *entity.StockMovement) bool {
	if m.Type != entity.MovementTypeOut {
		return false
	}
	return !m.NewStock.Equal(m.PreviousStock.Sub(m.Quantity))
}
