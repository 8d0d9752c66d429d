package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment methods accepted at the till.
const (
	PaymentMethodCash    = "cash"
	PaymentMethodMpesa   = "mpesa"
	PaymentMethodBank    = "bank_transfer"
	PaymentMethodCheque  = "cheque"
	PaymentMethodCardPOS = "card"
)

// Payment records money received against an invoice. Immutable once
// created.
type Payment struct {
	ID         string
	InvoiceID  string
	CustomerID string
	Amount     decimal.Decimal
	Method     string
	Reference  string // external reference: Mpesa code, cheque number, etc.
	CreatedAt  time.Time
}
