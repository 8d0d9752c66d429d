package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/google/uuid"
	"github.com/swairua/invoicing-software-sub001/internal/domain"
	"github.com/swairua/invoicing-software-sub001/internal/domain/entity"
	"github.com/swairua/invoicing-software-sub001/internal/domain/ledger"
)

// ConvertQuotationToProforma converts an accepted quotation into a draft
// proforma invoice. Line items and totals are copied verbatim; the quoted
// price is contractually fixed, nothing is recomputed. The quotation keeps
// its accepted status and records the conversion marker in the same
// transaction, so a second call fails with ErrAlreadyConverted.
func (s *Service) ConvertQuotationToProforma(ctx context.Context, quotationID string) (*entity.Document, error) {
	var proforma *entity.Document
	err := s.tx.Run(ctx, func(repos Repos) error {
		quotation, err := s.convertibleSource(repos, entity.KindQuotation, quotationID, entity.StatusAccepted)
		if err != nil {
			return err
		}
		now := s.now()
		number, err := nextNumber(repos, entity.KindProforma, now)
		if err != nil {
			return err
		}
		target := copyDocument(quotation, entity.KindProforma, number, now)
		target.Status = entity.StatusDraft
		if err := repos.Documents.Create(target); err != nil {
			return err
		}
		markConverted(quotation, target, now)
		if err := repos.Documents.Update(quotation); err != nil {
			return err
		}
		proforma = target
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("quotation", quotationID).
		Str("number", proforma.Number).
		Msg("quotation converted to proforma")
	return proforma, nil
}

// ConvertProformaToInvoice converts a sent proforma into an invoice. Stock
// for every inventory-tracked line is debited in the same transaction as
// the invoice creation: either the invoice exists with all its movements
// posted, or nothing changed.
func (s *Service) ConvertProformaToInvoice(ctx context.Context, proformaID string) (*entity.Document, error) {
	var invoice *entity.Document
	err := s.tx.Run(ctx, func(repos Repos) error {
		proforma, err := s.convertibleSource(repos, entity.KindProforma, proformaID, entity.StatusSent)
		if err != nil {
			return err
		}
		invoice, err = s.createInvoiceFrom(repos, proforma)
		if err != nil {
			return err
		}
		proforma.Status = entity.StatusConverted
		return repos.Documents.Update(proforma)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("proforma", proformaID).
		Str("number", invoice.Number).
		Msg("proforma converted to invoice")
	return invoice, nil
}

// ConvertQuotationToInvoice converts an accepted quotation directly into an
// invoice, skipping the proforma stage. Same one-shot and atomicity
// guarantees as the two-step path.
func (s *Service) ConvertQuotationToInvoice(ctx context.Context, quotationID string) (*entity.Document, error) {
	var invoice *entity.Document
	err := s.tx.Run(ctx, func(repos Repos) error {
		quotation, err := s.convertibleSource(repos, entity.KindQuotation, quotationID, entity.StatusAccepted)
		if err != nil {
			return err
		}
		invoice, err = s.createInvoiceFrom(repos, quotation)
		if err != nil {
			return err
		}
		return repos.Documents.Update(quotation)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("quotation", quotationID).
		Str("number", invoice.Number).
		Msg("quotation converted to invoice")
	return invoice, nil
}

// convertibleSource loads the source document row-locked and enforces the
// conversion preconditions: required status and not yet converted. The lock
// makes the check-and-mark one-shot: a concurrent conversion of the same
// source blocks here until this transaction commits its marker.
func (s *Service) convertibleSource(repos Repos, kind entity.DocumentKind, id, requiredStatus string) (*entity.Document, error) {
	doc, err := repos.Documents.GetForUpdate(kind, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
	}
	if doc.Converted() {
		return nil, fmt.Errorf("%s %s already became %s: %w", kind, doc.Number, doc.ConvertedToNumber, domain.ErrAlreadyConverted)
	}
	if doc.Status != requiredStatus {
		return nil, fmt.Errorf("%s must be %s, is %s: %w", kind, requiredStatus, doc.Status, domain.ErrInvalidTransition)
	}
	return doc, nil
}

// createInvoiceFrom builds the invoice copied from source, posts one out
// stock movement per inventory-tracked line and marks the source converted.
// Runs inside the caller's transaction; any failure rolls everything back.
func (s *Service) createInvoiceFrom(repos Repos, source *entity.Document) (*entity.Document, error) {
	now := s.now()
	number, err := nextNumber(repos, entity.KindInvoice, now)
	if err != nil {
		return nil, err
	}
	invoice := copyDocument(source, entity.KindInvoice, number, now)
	invoice.Status = entity.StatusSent
	invoice.AmountPaid = decimal.Zero
	invoice.Balance = invoice.Total
	invoice.EtimsStatus = entity.EtimsPending
	dueDate := now.AddDate(0, 0, s.cfg.PaymentTermsDays)
	invoice.DueDate = &dueDate

	for _, item := range invoice.Items {
		product, err := repos.Products.GetForUpdate(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("product %s: %w", item.ProductID, domain.ErrNotFound)
		}
		if !product.TrackInventory {
			continue
		}
		movement, err := ledger.PostStockMovement(product, entity.MovementTypeOut, item.Quantity, invoice.Number, s.cfg.StrictStock, now)
		if err != nil {
			return nil, err
		}
		if ledger.Clamped(movement) {
			s.log.Warn().
				Str("product", product.SKU).
				Str("requested", item.Quantity.String()).
				Str("previous_stock", movement.PreviousStock.String()).
				Str("reference", invoice.Number).
				Msg("oversell clamped to zero stock")
		}
		if err := repos.Products.Update(product); err != nil {
			return nil, err
		}
		if err := repos.Movements.Create(movement); err != nil {
			return nil, err
		}
	}

	if err := repos.Documents.Create(invoice); err != nil {
		return nil, err
	}
	markConverted(source, invoice, now)
	return invoice, nil
}

// copyDocument clones the source's commercial content into a fresh document
// of the target kind. Items and totals transfer verbatim.
func copyDocument(source *entity.Document, kind entity.DocumentKind, number string, now time.Time) *entity.Document {
	cp := source.Clone()
	return &entity.Document{
		ID:                  uuid.New().String(),
		Kind:                kind,
		Number:              number,
		CustomerID:          source.CustomerID,
		Items:               cp.Items,
		Subtotal:            source.Subtotal,
		DiscountAmount:      source.DiscountAmount,
		VATAmount:           source.VATAmount,
		AdditionalTaxAmount: source.AdditionalTaxAmount,
		Total:               source.Total,
		IssueDate:           now,
		Notes:               source.Notes,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

// markConverted sets the one-shot conversion marker on the source. The
// caller persists the source within the same transaction as the target.
func markConverted(source, target *entity.Document, now time.Time) {
	source.ConvertedToID = target.ID
	source.ConvertedToNumber = target.Number
	source.ConvertedAt = &now
	source.UpdatedAt = now
}
