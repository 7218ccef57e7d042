package services

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"retail-hub/metrics"
	"retail-hub/models"
)

const DefaultFeaturedCount = 6

const (
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNameAsc   = "name_asc"
	SortNameDesc  = "name_desc"
)

type priceBounds struct {
	min          *decimal.Decimal // inclusive
	max          *decimal.Decimal
	inclusiveMax bool
}

func bound(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// named ranges offered by the storefront filter sidebar; the upper bound is exclusive
var priceRanges = map[string]priceBounds{
	"":         {},
	"any":      {},
	"0-100":    {min: bound(0), max: bound(100)},
	"100-500":  {min: bound(100), max: bound(500)},
	"500-1000": {min: bound(500), max: bound(1000)},
	"1000+":    {min: bound(1000)},
}

// StorefrontService is the customer-facing read side: catalog snapshots
// priced against the effective campaign.
type StorefrontService struct {
	products  *ProductService
	campaigns *CampaignService
	log       *zap.Logger
}

func NewStorefrontService(products *ProductService, campaigns *CampaignService, log *zap.Logger) *StorefrontService {
	return &StorefrontService{
		products:  products,
		campaigns: campaigns,
		log:       log,
	}
}

func (s *StorefrontService) snapshots(ctx context.Context) ([]models.Product, []models.Campaign, error) {
	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return nil, nil, err
	}
	campaigns, err := s.campaigns.ListCampaigns(ctx)
	if err != nil {
		return nil, nil, err
	}
	return products, campaigns, nil
}

func (s *StorefrontService) resolve(products []models.Product, campaign *models.Campaign) models.Resolution {
	metrics.RecordPriceResolution(campaign != nil)
	return ResolveWith(products, campaign)
}

// Browse resolves the catalog and applies the filter. A filter naming a
// campaign, whatever its status, prices against that campaign and lists only
// its members.
func (s *StorefrontService) Browse(ctx context.Context, filter models.ProductFilter) (*models.Resolution, error) {
	bounds, err := filterBounds(filter)
	if err != nil {
		return nil, err
	}
	less, err := sortFunc(filter.Sort)
	if err != nil {
		return nil, err
	}

	products, campaigns, err := s.snapshots(ctx)
	if err != nil {
		return nil, err
	}

	campaign := EffectiveCampaign(campaigns)
	scoped := false
	if name := strings.TrimSpace(filter.Campaign); name != "" {
		if named := campaignByName(campaigns, name); named != nil {
			campaign, scoped = named, true
		} else {
			s.log.Debug("campaign filter matched nothing", zap.String("campaign", name))
		}
	}

	res := s.resolve(products, campaign)
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	kept := res.Products[:0]
	for _, p := range res.Products {
		if scoped && !campaign.Includes(p.SKU) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.ProductName), search) {
			continue
		}
		if !matchesCategory(p.Category, filter.Categories) {
			continue
		}
		if !bounds.contains(p.EffectivePrice) {
			continue
		}
		kept = append(kept, p)
	}
	slices.SortStableFunc(kept, less)

	res.Products = kept
	return &res, nil
}

// Featured returns the n most recently created products priced against the
// effective campaign.
func (s *StorefrontService) Featured(ctx context.Context, n int) (*models.Resolution, error) {
	if n <= 0 {
		n = DefaultFeaturedCount
	}

	products, campaigns, err := s.snapshots(ctx)
	if err != nil {
		return nil, err
	}

	res := s.resolve(products, EffectiveCampaign(campaigns))
	slices.SortStableFunc(res.Products, newestFirst)
	if len(res.Products) > n {
		res.Products = res.Products[:n]
	}
	return &res, nil
}

// Detail prices a single product against the effective campaign.
func (s *StorefrontService) Detail(ctx context.Context, sku string) (*models.PricedProduct, error) {
	product, err := s.products.GetProduct(ctx, sku)
	if err != nil {
		return nil, err
	}
	campaigns, err := s.campaigns.ListCampaigns(ctx)
	if err != nil {
		return nil, err
	}

	campaign := EffectiveCampaign(campaigns)
	metrics.RecordPriceResolution(campaign != nil)
	priced := PriceProduct(*product, campaign)
	return &priced, nil
}

// Categories lists the distinct non-empty categories in the catalog, sorted.
func (s *StorefrontService) Categories(ctx context.Context) ([]string, error) {
	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	categories := []string{}
	for _, p := range products {
		if p.Category != "" && !slices.Contains(categories, p.Category) {
			categories = append(categories, p.Category)
		}
	}
	slices.Sort(categories)
	return categories, nil
}

func campaignByName(campaigns []models.Campaign, name string) *models.Campaign {
	for i := range campaigns {
		if strings.EqualFold(campaigns[i].Name, name) {
			c := campaigns[i]
			return &c
		}
	}
	return nil
}

func matchesCategory(category string, wanted []string) bool {
	if len(wanted) == 0 {
		return true
	}
	for _, w := range wanted {
		if strings.EqualFold(strings.TrimSpace(w), category) {
			return true
		}
	}
	return false
}

// filterBounds resolves explicit min/max prices or a named range. Explicit
// bounds take precedence and are both inclusive.
func filterBounds(filter models.ProductFilter) (priceBounds, error) {
	if filter.MinPrice != nil || filter.MaxPrice != nil {
		if filter.MinPrice != nil && filter.MaxPrice != nil && filter.MaxPrice.LessThan(*filter.MinPrice) {
			return priceBounds{}, models.NewValidationError("max_price", "must not be below min_price")
		}
		return priceBounds{min: filter.MinPrice, max: filter.MaxPrice, inclusiveMax: true}, nil
	}

	b, ok := priceRanges[strings.TrimSpace(filter.PriceRange)]
	if !ok {
		return priceBounds{}, models.NewValidationError("price_range", "must be any, 0-100, 100-500, 500-1000 or 1000+")
	}
	return b, nil
}

func (b priceBounds) contains(price decimal.Decimal) bool {
	if b.min != nil && price.LessThan(*b.min) {
		return false
	}
	if b.max != nil {
		if b.inclusiveMax {
			return !price.GreaterThan(*b.max)
		}
		return price.LessThan(*b.max)
	}
	return true
}

func sortFunc(sort string) (func(a, b models.PricedProduct) int, error) {
	switch sort {
	case "", SortNewest:
		return newestFirst, nil
	case SortPriceAsc:
		return func(a, b models.PricedProduct) int { return a.EffectivePrice.Cmp(b.EffectivePrice) }, nil
	case SortPriceDesc:
		return func(a, b models.PricedProduct) int { return b.EffectivePrice.Cmp(a.EffectivePrice) }, nil
	case SortNameAsc:
		return func(a, b models.PricedProduct) int {
			return cmp.Compare(strings.ToLower(a.ProductName), strings.ToLower(b.ProductName))
		}, nil
	case SortNameDesc:
		return func(a, b models.PricedProduct) int {
			return cmp.Compare(strings.ToLower(b.ProductName), strings.ToLower(a.ProductName))
		}, nil
	default:
		return nil, models.NewValidationError("sort", "unsupported sort order")
	}
}

func newestFirst(a, b models.PricedProduct) int {
	return b.CreatedAt.Compare(a.CreatedAt)
}
