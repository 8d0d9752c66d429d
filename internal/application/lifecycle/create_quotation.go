package lifecycle

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/swairua/invoicing-software-sub001/internal/application/dto"
	"github.com/swairua/invoicing-software-sub001/internal/domain"
	"github.com/swairua/invoicing-software-sub001/internal/domain/entity"
	"github.com/swairua/invoicing-software-sub001/internal/domain/tax"
)

// CreateQuotation validates the customer and items, prices the lines
// through the tax engine and persists a draft quotation.
func (s *Service) CreateQuotation(ctx context.Context, in dto.CreateQuotationRequest) (*entity.Document, error) {
	var created *entity.Document
	err := s.tx.Run(ctx, func(repos Repos) error {
		doc, err := s.buildPricedDocument(repos, entity.KindQuotation, in.CustomerID, in.Items, in.Notes)
		if err != nil {
			return err
		}
		doc.Status = entity.StatusDraft
		validUntil := doc.IssueDate.AddDate(0, 0, s.cfg.QuotationValidityDays)
		doc.ValidUntil = &validUntil
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
		Str("total", created.Total.StringFixed(2)).
		Msg("quotation created")
	return created, nil
}

// buildPricedDocument resolves products, prices the lines and assembles a
// new document of the given kind with its sequence number. Shared by
// quotation and credit note creation.
func (s *Service) buildPricedDocument(repos Repos, kind entity.DocumentKind, customerID string, items []dto.LineItemRequest, notes string) (*entity.Document, error) {
	if customerID == "" {
		return nil, fmt.Errorf("customer id required: %w", domain.ErrValidation)
	}
	customer, err := repos.Customers.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("customer %s: %w", customerID, domain.ErrNotFound)
	}

	lines, products, err := s.resolveItems(repos, items)
	if err != nil {
		return nil, err
	}
	priced, totals, err := tax.PriceLines(lines, products)
	if err != nil {
		return nil, err
	}
	if len(priced) == 0 {
		return nil, fmt.Errorf("at least one line item required: %w", domain.ErrValidation)
	}

	now := s.now()
	number, err := nextNumber(repos, kind, now)
	if err != nil {
		return nil, err
	}
	return &entity.Document{
		ID:                  uuid.New().String(),
		Kind:                kind,
		Number:              number,
		CustomerID:          customerID,
		Items:               priced,
		Subtotal:            totals.Subtotal,
		DiscountAmount:      totals.DiscountAmount,
		VATAmount:           totals.VATAmount,
		AdditionalTaxAmount: totals.AdditionalTaxAmount,
		Total:               totals.Total,
		IssueDate:           now,
		Notes:               notes,
		CreatedAt:           now,
		UpdatedAt:           now,
	}, nil
}

// resolveItems maps line item requests to entity lines and loads their
// products. Placeholder rows (no product) pass through for the tax engine
// to drop; a zero unit price falls back to the product's selling price.
func (s *Service) resolveItems(repos Repos, items []dto.LineItemRequest) ([]entity.LineItem, map[string]*entity.Product, error) {
	lines := make([]entity.LineItem, 0, len(items))
	products := make(map[string]*entity.Product)
	for _, in := range items {
		line := entity.LineItem{
			ProductID:       in.ProductID,
			Description:     in.Description,
			Quantity:        in.Quantity,
			UnitPrice:       in.UnitPrice,
			DiscountPercent: in.DiscountPercent,
		}
		for _, t := range in.AdditionalTaxes {
			line.AdditionalTaxes = append(line.AdditionalTaxes, entity.TaxDefinition{
				ID:         uuid.New().String(),
				Name:       t.Name,
				Rate:       t.Rate,
				IsCompound: t.IsCompound,
			})
		}
		if in.ProductID != "" {
			if _, ok := products[in.ProductID]; !ok {
				product, err := repos.Products.GetByID(in.ProductID)
				if err != nil {
					return nil, nil, err
				}
				if product == nil {
					return nil, nil, fmt.Errorf("product %s: %w", in.ProductID, domain.ErrNotFound)
				}
				products[in.ProductID] = product
			}
			if line.UnitPrice.IsZero() {
				line.UnitPrice = products[in.ProductID].SellingPrice
			}
			if line.Description == "" {
				line.Description = products[in.ProductID].Name
			}
		}
		lines = append(lines, line)
	}
	return lines, products, nil
}
