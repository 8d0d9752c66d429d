package lifecycle

import (
	"context"
	"fmt"
	"strings"

	"github.com/swairua/invoicing-software-sub001/internal/application/dto"
	"github.com/swairua/invoicing-software-sub001/internal/domain"
	"github.com/swairua/invoicing-software-sub001/internal/domain/entity"
)

// IssueCreditNote creates a draft credit note. A reason is mandatory. The
// optional invoice reference is recorded for manual reconciliation only:
// the referenced invoice's balance is never adjusted here.
func (s *Service) IssueCreditNote(ctx context.Context, in dto.IssueCreditNoteRequest) (*entity.Document, error) {
	if strings.TrimSpace(in.Reason) == "" {
		return nil, fmt.Errorf("credit note reason required: %w", domain.ErrValidation)
	}
	var created *entity.Document
	err := s.tx.Run(ctx, func(repos Repos) error {
		if in.InvoiceID != "" {
			invoice, err := repos.Documents.GetByID(entity.KindInvoice, in.InvoiceID)
			if err != nil {
				return err
			}
			if invoice == nil {
				return fmt.Errorf("invoice %s: %w", in.InvoiceID, domain.ErrNotFound)
			}
		}
		doc, err := s.buildPricedDocument(repos, entity.KindCreditNote, in.CustomerID, in.Items, in.Notes)
		if err != nil {
			return err
		}
		doc.Status = entity.StatusDraft
		doc.Reason = strings.TrimSpace(in.Reason)
		doc.InvoiceID = in.InvoiceID
		if err := repos.Documents.Create(doc); err != nil {
			return err
		}
		created = doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("number", created.Number).
		Str("customer_id", created.CustomerID).
		Str("invoice_id", created.InvoiceID).
		Msg("credit note issued")
	return created, nil
}
