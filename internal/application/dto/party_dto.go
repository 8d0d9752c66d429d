package dto

import (
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest registers a trading party.
type CreateCustomerRequest struct {
	Name        string          `json:"name"`
	KRAPIN      string          `json:"kra_pin"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
}

// CreateProductRequest registers a sellable product.
type CreateProductRequest struct {
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
	Taxable        bool            `json:"taxable"`
	TaxRate        decimal.Decimal `json:"tax_rate"`
	TrackInventory bool            `json:"track_inventory"`
	CurrentStock   decimal.Decimal `json:"current_stock"`
	ReorderLevel   decimal.Decimal `json:"reorder_level"`
	MinStock       decimal.Decimal `json:"min_stock"`
}
