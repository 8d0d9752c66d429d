package repository

import "github.com/swairua/invoicing-software-sub001/internal/domain/entity"

// DocumentRepository is the keyed container for all four document kinds.
// It holds no business rules. Update must be called with the full entity;
// partial-field writes are not part of the contract.
type DocumentRepository interface {
	Create(doc *entity.Document) error
	// GetByID returns (nil, nil) when the document does not exist.
	GetByID(kind entity.DocumentKind, id string) (*entity.Document, error)
	// GetForUpdate is GetByID with the row locked for the rest of the
	// transaction. Read-modify-write callers (conversions, payments,
	// status changes) must use it so concurrent transactions serialize
	// instead of overwriting each other.
	GetForUpdate(kind entity.DocumentKind, id string) (*entity.Document, error)
	// ListByKind filters by status when status is non-empty.
	ListByKind(kind entity.DocumentKind, status string) ([]*entity.Document, error)
	Update(doc *entity.Document) error
}

// SequenceRepository issues monotonically increasing, kind- and year-scoped
// sequence numbers for human-readable document numbering.
type SequenceRepository interface {
	Next(kind entity.DocumentKind, year int) (int, error)
}
