package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/swairua/invoicing-software-sub001/internal/domain/entity"
	"github.com/swairua/invoicing-software-sub001/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo stores all four document kinds in one table, items as JSONB.
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository builds the adapter. Pass a pool or a tx.
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

const documentColumns = `
	id, kind, number, customer_id, items,
	subtotal, discount_amount, vat_amount, additional_tax_amount, total,
	status, issue_date, valid_until, due_date, notes,
	converted_to_id, converted_to_number, converted_at,
	amount_paid, balance, etims_status, reason, invoice_id,
	created_at, updated_at`

// Create persists a new document.
func (r *DocumentRepo) Create(doc *entity.Document) error {
	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)`
	_, err := r.q.Exec(context.Background(), query,
		doc.ID, string(doc.Kind), doc.Number, doc.CustomerID, doc.Items,
		doc.Subtotal, doc.DiscountAmount, doc.VATAmount, doc.AdditionalTaxAmount, doc.Total,
		doc.Status, doc.IssueDate, doc.ValidUntil, doc.DueDate, doc.Notes,
		doc.ConvertedToID, doc.ConvertedToNumber, doc.ConvertedAt,
		doc.AmountPaid, doc.Balance, doc.EtimsStatus, doc.Reason, doc.InvoiceID,
		doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("document number already exists: %w", err)
		}
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// GetByID loads one document; (nil, nil) when absent.
func (r *DocumentRepo) GetByID(kind entity.DocumentKind, id string) (*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1 AND kind = $2`
	doc, err := scanDocument(r.q.QueryRow(context.Background(), query, id, string(kind)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return doc, nil
}

// GetForUpdate loads one document with FOR UPDATE, so the row stays locked
// until the surrounding transaction ends. Concurrent conversions of the
// same source serialize here: the second transaction blocks, then sees the
// conversion marker the first one committed.
func (r *DocumentRepo) GetForUpdate(kind entity.DocumentKind, id string) (*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1 AND kind = $2 FOR UPDATE`
	doc, err := scanDocument(r.q.QueryRow(context.Background(), query, id, string(kind)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document for update: %w", err)
	}
	return doc, nil
}

// ListByKind lists documents of one kind, optionally filtered by status,
// in creation order.
func (r *DocumentRepo) ListByKind(kind entity.DocumentKind, status string) ([]*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE kind = $1`
	args := []any{string(kind)}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY created_at, number`
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	var out []*entity.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// Update writes the full document row.
func (r *DocumentRepo) Update(doc *entity.Document) error {
	query := `
		UPDATE documents
		SET items = $3, subtotal = $4, discount_amount = $5, vat_amount = $6,
		    additional_tax_amount = $7, total = $8, status = $9,
		    valid_until = $10, due_date = $11, notes = $12,
		    converted_to_id = $13, converted_to_number = $14, converted_at = $15,
		    amount_paid = $16, balance = $17, etims_status = $18,
		    reason = $19, invoice_id = $20, updated_at = $21
		WHERE id = $1 AND kind = $2`
	tag, err := r.q.Exec(context.Background(), query,
		doc.ID, string(doc.Kind),
		doc.Items, doc.Subtotal, doc.DiscountAmount, doc.VATAmount,
		doc.AdditionalTaxAmount, doc.Total, doc.Status,
		doc.ValidUntil, doc.DueDate, doc.Notes,
		doc.ConvertedToID, doc.ConvertedToNumber, doc.ConvertedAt,
		doc.AmountPaid, doc.Balance, doc.EtimsStatus,
		doc.Reason, doc.InvoiceID, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update of unknown document %s", doc.ID)
	}
	return nil
}

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var doc entity.Document
	var kind string
	err := row.Scan(
		&doc.ID, &kind, &doc.Number, &doc.CustomerID, &doc.Items,
		&doc.Subtotal, &doc.DiscountAmount, &doc.VATAmount, &doc.AdditionalTaxAmount, &doc.Total,
		&doc.Status, &doc.IssueDate, &doc.ValidUntil, &doc.DueDate, &doc.Notes,
		&doc.ConvertedToID, &doc.ConvertedToNumber, &doc.ConvertedAt,
		&doc.AmountPaid, &doc.Balance, &doc.EtimsStatus, &doc.Reason, &doc.InvoiceID,
		&doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	doc.Kind = entity.DocumentKind(kind)
	return &doc, nil
}
