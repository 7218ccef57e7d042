package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// prices travel as JSON numbers, not quoted strings
	decimal.MarshalJSONWithoutQuotes = true
}

type Product struct {
	SKU         string          `json:"sku"`
	ProductName string          `json:"productName"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	Category    string          `json:"category,omitempty"`
	Description string          `json:"description,omitempty"`
	Revision    int64           `json:"revision"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// PricedProduct is a product as the storefront shows it: the stored record
// plus the price after the effective campaign has been applied.
type PricedProduct struct {
	Product
	EffectivePrice decimal.Decimal  `json:"effectivePrice"`
	IsDiscounted   bool             `json:"isDiscounted"`
	DiscountType   DiscountType     `json:"discountType,omitempty"`
	DiscountValue  *decimal.Decimal `json:"discountValue,omitempty"`
}

type Resolution struct {
	Campaign *Campaign       `json:"campaign"`
	Products []PricedProduct `json:"products"`
}
