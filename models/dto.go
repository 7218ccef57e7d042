package models

import "github.com/shopspring/decimal"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CreateProductRequest struct {
	SKU         string           `json:"sku"`
	ProductName string           `json:"productName"`
	Price       *decimal.Decimal `json:"price"`
	ImageURL    string           `json:"imageUrl"`
	Category    string           `json:"category"`
	Description string           `json:"description"`
}

// UpdateProductRequest is a partial update; nil fields keep the stored value.
// SKU is accepted so that full records can be sent back, but it is ignored.
type UpdateProductRequest struct {
	SKU         string           `json:"sku"`
	ProductName *string          `json:"productName"`
	Price       *decimal.Decimal `json:"price"`
	ImageURL    *string          `json:"imageUrl"`
	Category    *string          `json:"category"`
	Description *string          `json:"description"`
	Revision    int64            `json:"revision"`
}

// ToCreate turns an edit form into a create request for a product that does
// not exist yet.
func (r UpdateProductRequest) ToCreate() CreateProductRequest {
	req := CreateProductRequest{SKU: r.SKU, Price: r.Price}
	if r.ProductName != nil {
		req.ProductName = *r.ProductName
	}
	if r.ImageURL != nil {
		req.ImageURL = *r.ImageURL
	}
	if r.Category != nil {
		req.Category = *r.Category
	}
	if r.Description != nil {
		req.Description = *r.Description
	}
	return req
}

type CampaignRequest struct {
	CampaignID    string          `json:"campaignID"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	StartDate     string          `json:"startDate"`
	EndDate       string          `json:"endDate"`
	DiscountType  DiscountType    `json:"discountType"`
	DiscountValue decimal.Decimal `json:"discountValue"`
	Status        CampaignStatus  `json:"status"`
	Products      []string        `json:"products"`
	Revision      int64           `json:"revision"`
}

// ProductFilter drives storefront browsing. Empty fields do not filter.
type ProductFilter struct {
	Search     string           `form:"search"`
	Categories []string         `form:"category"`
	MinPrice   *decimal.Decimal `form:"-"`
	MaxPrice   *decimal.Decimal `form:"-"`
	PriceRange string           `form:"price_range"`
	Sort       string           `form:"sort"`
	Campaign   string           `form:"campaign"`
}

// CampaignWorkspace is what the admin campaign editor shows after a load or save.
type CampaignWorkspace struct {
	Campaigns []Campaign `json:"campaigns"`
	Selected  Campaign   `json:"selected"`
}

type ProductWorkspace struct {
	Saved    *Product  `json:"saved,omitempty"`
	Products []Product `json:"products"`
}
