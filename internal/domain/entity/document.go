package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentKind discriminates the four business documents that share the
// Document shape.
type DocumentKind string

const (
	KindQuotation  DocumentKind = "quotation"
	KindProforma   DocumentKind = "proforma"
	KindInvoice    DocumentKind = "invoice"
	KindCreditNote DocumentKind = "credit_note"
)

// NumberPrefix returns the human-number prefix for the kind (QUO-2026-003).
func (k DocumentKind) NumberPrefix() string {
	switch k {
	case KindQuotation:
		return "QUO"
	case KindProforma:
		return "PRO"
	case KindInvoice:
		return "INV"
	case KindCreditNote:
		return "CRN"
	}
	return ""
}

// Valid reports whether k is one of the four document kinds.
func (k DocumentKind) Valid() bool {
	switch k {
	case KindQuotation, KindProforma, KindInvoice, KindCreditNote:
		return true
	}
	return false
}

// Document statuses. Not every status applies to every kind; the legality
// of a transition is decided by CanTransition.
const (
	StatusDraft     = "draft"
	StatusSent      = "sent"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
	StatusConverted = "converted"
	StatusPaid      = "paid"
	StatusOverdue   = "overdue"
	StatusCancelled = "cancelled"
	StatusIssued    = "issued"
	StatusApplied   = "applied"
)

// ETIMS submission sub-states for invoices (Kenya Revenue Authority).
const (
	EtimsPending   = "pending"
	EtimsSubmitted = "submitted"
	EtimsAccepted  = "accepted"
	EtimsRejected  = "rejected"
)

// transitions holds the legal status moves per kind, as requested through
// TransitionStatus. Invoice "paid" is deliberately absent: it is reachable
// only by a payment driving the balance to zero, and proforma "converted"
// only by a conversion.
var transitions = map[DocumentKind]map[string][]string{
	KindQuotation: {
		StatusDraft: {StatusSent},
		StatusSent:  {StatusAccepted, StatusRejected},
	},
	KindProforma: {
		StatusDraft: {StatusSent, StatusCancelled},
		StatusSent:  {StatusCancelled},
	},
	KindInvoice: {
		StatusSent:    {StatusOverdue, StatusCancelled},
		StatusOverdue: {StatusCancelled},
	},
	KindCreditNote: {
		StatusDraft:  {StatusIssued},
		StatusIssued: {StatusApplied},
	},
}

// CanTransition reports whether a document of the given kind may move from
// one status to another via an explicit status change.
func CanTransition(kind DocumentKind, from, to string) bool {
	for _, next := range transitions[kind][from] {
		if next == to {
			return true
		}
	}
	return false
}

// Document is the shared shape of quotations, proforma invoices, invoices
// and credit notes. AmountPaid, Balance and EtimsStatus are meaningful only
// for invoices; Reason and InvoiceID only for credit notes.
type Document struct {
	ID         string
	Kind       DocumentKind
	Number     string // PREFIX-YYYY-NNN
	CustomerID string
	Items      []LineItem

	Subtotal            decimal.Decimal
	DiscountAmount      decimal.Decimal
	VATAmount           decimal.Decimal
	AdditionalTaxAmount decimal.Decimal
	Total               decimal.Decimal

	Status     string
	IssueDate  time.Time
	ValidUntil *time.Time
	DueDate    *time.Time
	Notes      string

	// One-shot conversion marker: set atomically with creation of the
	// target document, checked before any conversion.
	ConvertedToID     string
	ConvertedToNumber string
	ConvertedAt       *time.Time

	// Invoice only.
	AmountPaid  decimal.Decimal
	Balance     decimal.Decimal
	EtimsStatus string

	// Credit note only.
	Reason    string
	InvoiceID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Converted reports whether the document has already been converted.
func (d *Document) Converted() bool {
	return d.ConvertedToID != ""
}

// Clone returns a deep copy (items and additional taxes included) so store
// snapshots cannot alias service-owned state.
func (d *Document) Clone() *Document {
	cp := *d
	cp.Items = make([]LineItem, len(d.Items))
	for i, it := range d.Items {
		cp.Items[i] = it
		if len(it.AdditionalTaxes) > 0 {
			cp.Items[i].AdditionalTaxes = append([]TaxDefinition(nil), it.AdditionalTaxes...)
		}
	}
	if d.ValidUntil != nil {
		t := *d.ValidUntil
		cp.ValidUntil = &t
	}
	if d.DueDate != nil {
		t := *d.DueDate
		cp.DueDate = &t
	}
	if d.ConvertedAt != nil {
		t := *d.ConvertedAt
		cp.ConvertedAt = &t
	}
	return &cp
}
