package postgres

import (
	"context"
	"fmt"

	"github.com/swairua/invoicing-software-sub001/internal/domain/entity"
	"github.com/swairua/invoicing-software-sub001/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo is the pgx adapter for payments (append-only).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository builds the adapter. Pass a pool or a tx.
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create persists a payment.
func (r *PaymentRepo) Create(p *entity.Payment) error {
	query := `
		INSERT INTO payments (id, invoice_id, customer_id, amount, method, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.InvoiceID, p.CustomerID, p.Amount, p.Method, p.Reference, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// ListByInvoice returns payments, oldest first; all payments when
// invoiceID is empty.
func (r *PaymentRepo) ListByInvoice(invoiceID string) ([]*entity.Payment, error) {
	query := `
		SELECT id, invoice_id, customer_id, amount, method, reference, created_at
		FROM payments`
	var args []any
	if invoiceID != "" {
		query += ` WHERE invoice_id = $1`
		args = append(args, invoiceID)
	}
	query += ` ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var out []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(&p.ID, &p.InvoiceID, &p.CustomerID, &p.Amount, &p.Method, &p.Reference, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
