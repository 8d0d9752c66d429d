package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer represents a trading party the company sells to.
// Balance is the aggregate outstanding amount across the customer's
// invoices; only the lifecycle service mutates it (payments).
type Customer struct {
	ID          string
	Name        string
	KRAPIN      string // tax identification (Kenya)
	Email       string
	Phone       string
	CreditLimit decimal.Decimal
	Balance     decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
