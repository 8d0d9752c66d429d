package lifecycle

import (
	"context"
	"fmt"

	"github.com/swairua/invoicing-software-sub001/internal/domain"
	"github.com/swairua/invoicing-software-sub001/internal/domain/entity"
)

// GetDocument returns one document by kind and id.
func (s *Service) GetDocument(ctx context.Context, id string, kind entity.DocumentKind) (*entity.Document, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown document kind %q: %w", kind, domain.ErrValidation)
	}
	var doc *entity.Document
	err := s.tx.Run(ctx, func(repos Repos) error {
		var err error
		doc, err = repos.Documents.GetByID(kind, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
	}
	return doc, nil
}

// ListDocuments returns documents of a kind, optionally filtered by status.
func (s *Service) ListDocuments(ctx context.Context, kind entity.DocumentKind, status string) ([]*entity.Document, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown document kind %q: %w", kind, domain.ErrValidation)
	}
	var docs []*entity.Document
	err := s.tx.Run(ctx, func(repos Repos) error {
		var err error
		docs, err = repos.Documents.ListByKind(kind, status)
		return err
	})
	return docs, err
}

// GetStockMovements returns the inventory audit trail, optionally for one
// product.
func (s *Service) GetStockMovements(ctx context.Context, productID string) ([]*entity.StockMovement, error) {
	var movements []*entity.StockMovement
	err := s.tx.Run(ctx, func(repos Repos) error {
		var err error
		movements, err = repos.Movements.List(productID)
		return err
	})
	return movements, err
}
