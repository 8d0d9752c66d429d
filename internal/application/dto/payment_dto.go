package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/swairua/invoicing-software-sub001/internal/domain/entity"
)

// RecordPaymentRequest applies a payment against an invoice.
type RecordPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Reference string          `json:"reference"`
}

// PaymentResponse is the API view of a payment.
type PaymentResponse struct {
	ID         string          `json:"id"`
	InvoiceID  string          `json:"invoice_id"`
	CustomerID string          `json:"customer_id"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method"`
	Reference  string          `json:"reference,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// NewPaymentResponse maps a payment entity to its API view.
func NewPaymentResponse(p *entity.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:         p.ID,
		InvoiceID:  p.InvoiceID,
		CustomerID: p.CustomerID,
		Amount:     p.Amount,
		Method:     p.Method,
		Reference:  p.Reference,
		CreatedAt:  p.CreatedAt,
	}
}

// StockMovementResponse is the API view of one inventory audit record.
type StockMovementResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	PreviousStock decimal.Decimal `json:"previous_stock"`
	NewStock      decimal.Decimal `json:"new_stock"`
	Reference     string          `json:"reference"`
	CreatedAt     time.Time       `json:"created_at"`
}

// NewStockMovementResponse maps a stock movement to its API view.
func NewStockMovementResponse(m *entity.StockMovement) *StockMovementResponse {
	return &StockMovementResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		Type:          m.Type,
		Quantity:      m.Quantity,
		PreviousStock: m.PreviousStock,
		NewStock:      m.NewStock,
		Reference:     m.Reference,
		CreatedAt:     m.CreatedAt,
	}
}
