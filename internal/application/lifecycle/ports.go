package lifecycle

import (
	"context"

	"github.com/swairua/invoicing-software-sub001/internal/domain/repository"
)

// Repos bundles every repository a lifecycle operation may touch within one
// transaction.
type Repos struct {
	Documents repository.DocumentRepository
	Customers repository.CustomerRepository
	Products  repository.ProductRepository
	Payments  repository.PaymentRepository
	Movements repository.StockMovementRepository
	Sequences repository.SequenceRepository
}

// TxRunner runs fn with repositories bound to a single transaction. If fn
// returns an error nothing fn wrote is visible afterwards; otherwise all of
// it is, atomically. Every service operation, reads included, goes through
// the runner so no caller can observe a half-updated aggregate.
type TxRunner interface {
	Run(ctx context.Context, fn func(Repos) error) error
}
