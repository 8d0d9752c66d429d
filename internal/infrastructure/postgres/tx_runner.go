package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/swairua/invoicing-software-sub001/internal/application/lifecycle"
)

// Querier is satisfied by both *pgxpool.Pool and pgx.Tx, so every
// repository works inside or outside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ lifecycle.TxRunner = (*TxRunner)(nil)

// TxRunner runs lifecycle operations inside PostgreSQL transactions.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner over the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run begins a transaction, executes fn with repositories bound to it and
// commits, or rolls back when fn fails.
func (r *TxRunner) Run(ctx context.Context, fn func(lifecycle.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := lifecycle.Repos{
		Documents: NewDocumentRepository(tx),
		Customers: NewCustomerRepository(tx),
		Products:  NewProductRepository(tx),
		Payments:  NewPaymentRepository(tx),
		Movements: NewStockMovementRepository(tx),
		Sequences: NewSequenceRepository(tx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
