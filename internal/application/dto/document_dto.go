package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/swairua/invoicing-software-sub001/internal/domain/entity"
)

// TaxApplicationRequest selects one additional tax on a line item.
type TaxApplicationRequest struct {
	Name       string          `json:"name"`
	Rate       decimal.Decimal `json:"rate"` // percent, e.g. 2 for 2%
	IsCompound bool            `json:"is_compound"`
}

// LineItemRequest is one document row. A zero UnitPrice means "use the
// product's selling price". Rows without a product id are placeholders and
// are dropped.
type LineItemRequest struct {
	ProductID       string                  `json:"product_id"`
	Description     string                  `json:"description"`
	Quantity        decimal.Decimal         `json:"quantity"`
	UnitPrice       decimal.Decimal         `json:"unit_price"`
	DiscountPercent decimal.Decimal         `json:"discount_percent"`
	AdditionalTaxes []TaxApplicationRequest `json:"additional_taxes"`
}

// CreateQuotationRequest creates a draft quotation.
type CreateQuotationRequest struct {
	CustomerID string            `json:"customer_id"`
	Notes      string            `json:"notes"`
	Items      []LineItemRequest `json:"items"`
}

// IssueCreditNoteRequest creates a draft credit note. InvoiceID is an
// optional back-reference; the referenced invoice is never adjusted.
type IssueCreditNoteRequest struct {
	CustomerID string            `json:"customer_id"`
	InvoiceID  string            `json:"invoice_id"`
	Reason     string            `json:"reason"`
	Notes      string            `json:"notes"`
	Items      []LineItemRequest `json:"items"`
}

// TransitionRequest requests an explicit status change.
type TransitionRequest struct {
	Status string `json:"status"`
}

// LineItemResponse mirrors entity.LineItem for the API.
type LineItemResponse struct {
	ProductID       string                  `json:"product_id"`
	Description     string                  `json:"description"`
	Quantity        decimal.Decimal         `json:"quantity"`
	UnitPrice       decimal.Decimal         `json:"unit_price"`
	DiscountPercent decimal.Decimal         `json:"discount_percent"`
	AdditionalTaxes []TaxApplicationRequest `json:"additional_taxes,omitempty"`
	LineTotal       decimal.Decimal         `json:"line_total"`
}

// DocumentResponse is the API view of any document kind.
type DocumentResponse struct {
	ID                  string             `json:"id"`
	Kind                string             `json:"kind"`
	Number              string             `json:"number"`
	CustomerID          string             `json:"customer_id"`
	Items               []LineItemResponse `json:"items"`
	Subtotal            decimal.Decimal    `json:"subtotal"`
	DiscountAmount      decimal.Decimal    `json:"discount_amount"`
	VATAmount           decimal.Decimal    `json:"vat_amount"`
	AdditionalTaxAmount decimal.Decimal    `json:"additional_tax_amount"`
	Total               decimal.Decimal    `json:"total"`
	Status              string             `json:"status"`
	IssueDate           time.Time          `json:"issue_date"`
	ValidUntil          *time.Time         `json:"valid_until,omitempty"`
	DueDate             *time.Time         `json:"due_date,omitempty"`
	Notes               string             `json:"notes,omitempty"`
	ConvertedToID       string             `json:"converted_to_id,omitempty"`
	ConvertedToNumber   string             `json:"converted_to_number,omitempty"`
	AmountPaid          *decimal.Decimal   `json:"amount_paid,omitempty"`
	Balance             *decimal.Decimal   `json:"balance,omitempty"`
	EtimsStatus         string             `json:"etims_status,omitempty"`
	Reason              string             `json:"reason,omitempty"`
	InvoiceID           string             `json:"invoice_id,omitempty"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
}

// NewDocumentResponse maps an entity document to its API view.
func NewDocumentResponse(d *entity.Document) *DocumentResponse {
	resp := &DocumentResponse{
		ID:                  d.ID,
		Kind:                string(d.Kind),
		Number:              d.Number,
		CustomerID:          d.CustomerID,
		Items:               make([]LineItemResponse, 0, len(d.Items)),
		Subtotal:            d.Subtotal,
		DiscountAmount:      d.DiscountAmount,
		VATAmount:           d.VATAmount,
		AdditionalTaxAmount: d.AdditionalTaxAmount,
		Total:               d.Total,
		Status:              d.Status,
		IssueDate:           d.IssueDate,
		ValidUntil:          d.ValidUntil,
		DueDate:             d.DueDate,
		Notes:               d.Notes,
		ConvertedToID:       d.ConvertedToID,
		ConvertedToNumber:   d.ConvertedToNumber,
		EtimsStatus:         d.EtimsStatus,
		Reason:              d.Reason,
		InvoiceID:           d.InvoiceID,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
	if d.Kind == entity.KindInvoice {
		paid, balance := d.AmountPaid, d.Balance
		resp.AmountPaid = &paid
		resp.Balance = &balance
	}
	for _, it := range d.Items {
		line := LineItemResponse{
			ProductID:       it.ProductID,
			Description:     it.Description,
			Quantity:        it.Quantity,
			UnitPrice:       it.UnitPrice,
			DiscountPercent: it.DiscountPercent,
			LineTotal:       it.LineTotal,
		}
		for _, t := range it.AdditionalTaxes {
			line.AdditionalTaxes = append(line.AdditionalTaxes, TaxApplicationRequest{
				Name: t.Name, Rate: t.Rate, IsCompound: t.IsCompound,
			})
		}
		resp.Items = append(resp.Items, line)
	}
	return resp
}
