package postgres

import (
	"context"
	"fmt"

	"github.com/swairua/invoicing-software-sub001/internal/domain/entity"
	"github.com/swairua/invoicing-software-sub001/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo issues kind- and year-scoped document numbers via an upsert
// counter row. Monotonic under concurrency: the row update serializes
// concurrent transactions.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository builds the adapter. Pass a pool or a tx.
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next increments and returns the counter for kind and year.
func (r *SequenceRepo) Next(kind entity.DocumentKind, year int) (int, error) {
	query := `
		INSERT INTO document_sequences (kind, year, value)
		VALUES ($1, $2, 1)
		ON CONFLICT (kind, year) DO UPDATE SET value = document_sequences.value + 1
		RETURNING value`
	var value int
	if err := r.q.QueryRow(context.Background(), query, string(kind), year).Scan(&value); err != nil {
		return 0, fmt.Errorf("next sequence %s/%d: %w", kind, year, err)
	}
	return value, nil
}
