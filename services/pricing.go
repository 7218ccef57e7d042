package services

import (
	"github.com/shopspring/decimal"

	"retail-hub/models"
)

var hundred = decimal.NewFromInt(100)

// EffectiveCampaign returns the first Active campaign in list order, or nil.
// Dates are not consulted; status alone decides.
func EffectiveCampaign(campaigns []models.Campaign) *models.Campaign {
	for i := range campaigns {
		if campaigns[i].IsActive() {
			c := campaigns[i]
			c.Products = append([]string{}, c.Products...)
			return &c
		}
	}
	return nil
}

// Resolve prices every product against the effective campaign.
func Resolve(products []models.Product, campaigns []models.Campaign) models.Resolution {
	return ResolveWith(products, EffectiveCampaign(campaigns))
}

// ResolveWith prices every product against the given campaign. A nil campaign
// leaves every product at its base price.
func ResolveWith(products []models.Product, campaign *models.Campaign) models.Resolution {
	res := models.Resolution{
		Campaign: campaign,
		Products: make([]models.PricedProduct, 0, len(products)),
	}
	for _, p := range products {
		res.Products = append(res.Products, PriceProduct(p, campaign))
	}
	return res
}

// PriceProduct applies campaign to a single product. Campaigns with an
// unknown discount type or a negative value produce no discount.
func PriceProduct(p models.Product, campaign *models.Campaign) models.PricedProduct {
	priced := models.PricedProduct{Product: p, EffectivePrice: p.Price}
	if campaign == nil || !campaign.Includes(p.SKU) || campaign.DiscountValue.IsNegative() {
		return priced
	}

	var effective decimal.Decimal
	switch campaign.DiscountType {
	case models.DiscountPercentage:
		factor := decimal.NewFromInt(1).Sub(campaign.DiscountValue.Div(hundred))
		effective = p.Price.Mul(factor)
	case models.DiscountFixed:
		effective = p.Price.Sub(campaign.DiscountValue)
	default:
		return priced
	}

	if effective.IsNegative() {
		effective = decimal.Zero
	}
	effective = effective.Round(2)

	priced.EffectivePrice = effective
	if effective.LessThan(p.Price) {
		value := campaign.DiscountValue
		priced.IsDiscounted = true
		priced.DiscountType = campaign.DiscountType
		priced.DiscountValue = &value
	}
	return priced
}
