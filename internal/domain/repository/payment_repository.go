package repository

import "github.com/swairua/invoicing-software-sub001/internal/domain/entity"

// PaymentRepository stores payments. Payments are append-only.
type PaymentRepository interface {
	Create(p *entity.Payment) error
	ListByInvoice(invoiceID string) ([]*entity.Payment, error)
}

// StockMovementRepository stores the append-only inventory audit trail.
type StockMovementRepository interface {
	Create(m *entity.StockMovement) error
	// List filters by product when productID is non-empty.
	List(productID string) ([]*entity.StockMovement, error)
}
