package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

type CampaignStatus string

const (
	StatusDraft   CampaignStatus = "Draft"
	StatusActive  CampaignStatus = "Active"
	StatusExpired CampaignStatus = "Expired"
)

// DateLayout is the ISO date format used for campaign start and end dates.
const DateLayout = "2006-01-02"

type Campaign struct {
	CampaignID    string          `json:"campaignID"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	StartDate     string          `json:"startDate"`
	EndDate       string          `json:"endDate"`
	DiscountType  DiscountType    `json:"discountType"`
	DiscountValue decimal.Decimal `json:"discountValue"`
	Status        CampaignStatus  `json:"status"`
	Products      []string        `json:"products"`
	Revision      int64           `json:"revision"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// Includes reports whether sku is a member of the campaign.
func (c *Campaign) Includes(sku string) bool {
	for _, s := range c.Products {
		if s == sku {
			return true
		}
	}
	return false
}

func (c *Campaign) IsActive() bool {
	return c.Status == StatusActive
}

// NewCampaignTemplate is the blank campaign an admin starts editing when
// nothing else is selected.
func NewCampaignTemplate() Campaign {
	return Campaign{
		DiscountType:  DiscountPercentage,
		DiscountValue: decimal.Zero,
		Status:        StatusDraft,
		Products:      []string{},
	}
}
