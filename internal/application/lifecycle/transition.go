package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/swairua/invoicing-software-sub001/internal/domain"
	"github.com/swairua/invoicing-software-sub001/internal/domain/entity"
)

// TransitionStatus moves a document to newStatus if the state machine for
// its kind permits the move. Invoice "paid" and proforma "converted" are
// not reachable here; they are driven by payments and conversions.
func (s *Service) TransitionStatus(ctx context.Context, id string, kind entity.DocumentKind, newStatus string) (*entity.Document, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown document kind %q: %w", kind, domain.ErrValidation)
	}
	if newStatus == "" {
		return nil, fmt.Errorf("status required: %w", domain.ErrValidation)
	}
	var updated *entity.Document
	err := s.tx.Run(ctx, func(repos Repos) error {
		doc, err := repos.Documents.GetForUpdate(kind, id)
		if err != nil {
			return err
		}
		if doc == nil {
			return fmt.Errorf("%s %s: %w", kind, id, domain.ErrNotFound)
		}
		if !entity.CanTransition(kind, doc.Status, newStatus) {
			return fmt.Errorf("%s %s -> %s: %w", kind, doc.Status, newStatus, domain.ErrInvalidTransition)
		}
		doc.Status = newStatus
		doc.UpdatedAt = s.now()
		if err := repos.Documents.Update(doc); err != nil {
			return err
		}
		updated = doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("number", updated.Number).
		Str("status", updated.Status).
		Msg("document status changed")
	return updated, nil
}

// MarkOverdueInvoices moves every sent invoice whose due date has passed to
// overdue. Returns the invoices it transitioned. Intended for a periodic
// sweep; a payment against an overdue invoice still applies normally.
func (s *Service) MarkOverdueInvoices(ctx context.Context, now time.Time) ([]*entity.Document, error) {
	var flagged []*entity.Document
	err := s.tx.Run(ctx, func(repos Repos) error {
		invoices, err := repos.Documents.ListByKind(entity.KindInvoice, entity.StatusSent)
		if err != nil {
			return err
		}
		for _, candidate := range invoices {
			if candidate.DueDate == nil || !now.After(*candidate.DueDate) {
				continue
			}
			// Re-check under the row lock; a concurrent payment may
			// have settled the invoice since the list.
			inv, err := repos.Documents.GetForUpdate(entity.KindInvoice, candidate.ID)
			if err != nil {
				return err
			}
			if inv == nil || inv.Status != entity.StatusSent {
				continue
			}
			inv.Status = entity.StatusOverdue
			inv.UpdatedAt = now
			if err := repos.Documents.Update(inv); err != nil {
				return err
			}
			flagged = append(flagged, inv)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, inv := range flagged {
		s.log.Info().Str("number", inv.Number).Msg("invoice overdue")
	}
	return flagged, nil
}

// etimsSteps is the legal submission walk: pending -> submitted ->
// accepted or rejected.
var etimsSteps = map[string][]string{
	entity.EtimsPending:   {entity.EtimsSubmitted},
	entity.EtimsSubmitted: {entity.EtimsAccepted, entity.EtimsRejected},
	entity.EtimsRejected:  {entity.EtimsSubmitted}, // resubmission after fixing
}

// UpdateEtimsStatus advances an invoice's tax-authority submission
// sub-state. The walk is independent of the payment status.
func (s *Service) UpdateEtimsStatus(ctx context.Context, invoiceID, newStatus string) (*entity.Document, error) {
	var updated *entity.Document
	err := s.tx.Run(ctx, func(repos Repos) error {
		inv, err := repos.Documents.GetForUpdate(entity.KindInvoice, invoiceID)
		if err != nil {
			return err
		}
		if inv == nil {
			return fmt.Errorf("invoice %s: %w", invoiceID, domain.ErrNotFound)
		}
		legal := false
		for _, next := range etimsSteps[inv.EtimsStatus] {
			if next == newStatus {
				legal = true
				break
			}
		}
		if !legal {
			return fmt.Errorf("etims %s -> %s: %w", inv.EtimsStatus, newStatus, domain.ErrInvalidTransition)
		}
		inv.EtimsStatus = newStatus
		inv.UpdatedAt = s.now()
		if err := repos.Documents.Update(inv); err != nil {
			return err
		}
		updated = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("number", updated.Number).
		Str("etims_status", updated.EtimsStatus).
		Msg("etims status updated")
	return updated, nil
}
