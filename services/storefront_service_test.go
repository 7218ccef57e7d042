package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retail-hub/models"
)

// seedStorefront creates products oldest first and one active campaign.
func seedStorefront(env *testEnv) {
	env.mustCreateProduct("MUG1", "Red Mug", "100", "Kitchen")
	env.mustCreateProduct("KET1", "Blue Kettle", "600", "Kitchen")
	env.mustCreateProduct("TEE1", "Cotton Tee", "40", "Apparel")
	env.mustCreateProduct("LAMP1", "Desk Lamp", "1200", "Home")
	env.mustCreateProduct("PLT1", "Dinner Plate", "20", "kitchen")

	env.mustCreateCampaign(models.CampaignRequest{
		CampaignID:    "DRAFT",
		Name:          "Flash Sale",
		DiscountType:  models.DiscountFixed,
		DiscountValue: price("5"),
		Status:        models.StatusDraft,
		Products:      []string{"TEE1"},
	})
	env.mustCreateCampaign(models.CampaignRequest{
		CampaignID:    "SPRING",
		Name:          "Spring Sale",
		DiscountType:  models.DiscountPercentage,
		DiscountValue: price("20"),
		Status:        models.StatusActive,
		Products:      []string{"MUG1", "KET1", "GONE"},
	})
	env.mustCreateCampaign(models.CampaignRequest{
		CampaignID:    "LAMPS",
		Name:          "Lamp Week",
		DiscountType:  models.DiscountFixed,
		DiscountValue: price("300"),
		Status:        models.StatusActive,
		Products:      []string{"LAMP1"},
	})
}

func skus(products []models.PricedProduct) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.SKU)
	}
	return out
}

func TestBrowseDefaultsToNewestWithEffectiveCampaign(t *testing.T) {
	env := newTestEnv()
	seedStorefront(env)

	res, err := env.storefront.Browse(context.Background(), models.ProductFilter{})
	require.NoError(t, err)

	require.NotNil(t, res.Campaign)
	assert.Equal(t, "SPRING", res.Campaign.CampaignID)
	assert.Equal(t, []string{"PLT1", "LAMP1", "TEE1", "KET1", "MUG1"}, skus(res.Products))

	byID := map[string]models.PricedProduct{}
	for _, p := range res.Products {
		byID[p.SKU] = p
	}
	assertPrice(t, "80", byID["MUG1"].EffectivePrice)
	assertPrice(t, "480", byID["KET1"].EffectivePrice)
	// second active campaign is ignored
	assertPrice(t, "1200", byID["LAMP1"].EffectivePrice)
	assert.False(t, byID["LAMP1"].IsDiscounted)
}

func TestBrowseSearchAndCategory(t *testing.T) {
	env := newTestEnv()
	seedStorefront(env)
	ctx := context.Background()

	res, err := env.storefront.Browse(ctx, models.ProductFilter{Search: "  MUG "})
	require.NoError(t, err)
	assert.Equal(t, []string{"MUG1"}, skus(res.Products))

	res, err = env.storefront.Browse(ctx, models.ProductFilter{Categories: []string{"KITCHEN"}, Sort: SortNameAsc})
	require.NoError(t, err)
	assert.Equal(t, []string{"KET1", "PLT1", "MUG1"}, skus(res.Products))

	res, err = env.storefront.Browse(ctx, models.ProductFilter{Categories: []string{"Apparel", "Home"}, Sort: SortNameDesc})
	require.NoError(t, err)
	assert.Equal(t, []string{"LAMP1", "TEE1"}, skus(res.Products))
}

func TestBrowsePriceRangeUsesEffectivePrice(t *testing.T) {
	env := newTestEnv()
	seedStorefront(env)
	ctx := context.Background()

	tests := []struct {
		priceRange string
		want       []string
	}{
		// MUG1 is 80 after the discount, so it falls into 0-100
		{"0-100", []string{"PLT1", "TEE1", "MUG1"}},
		{"100-500", []string{"KET1"}},
		{"500-1000", []string{}},
		{"1000+", []string{"LAMP1"}},
		{"any", []string{"PLT1", "TEE1", "MUG1", "KET1", "LAMP1"}},
	}

	for _, tt := range tests {
		t.Run(tt.priceRange, func(t *testing.T) {
			res, err := env.storefront.Browse(ctx, models.ProductFilter{PriceRange: tt.priceRange, Sort: SortPriceAsc})
			require.NoError(t, err)
			assert.Equal(t, tt.want, skus(res.Products))
		})
	}
}

func TestBrowseRangeUpperBoundIsExclusive(t *testing.T) {
	env := newTestEnv()
	env.mustCreateProduct("P100", "Hundred", "100", "")

	res, err := env.storefront.Browse(context.Background(), models.ProductFilter{PriceRange: "0-100"})
	require.NoError(t, err)
	assert.Empty(t, res.Products)

	res, err = env.storefront.Browse(context.Background(), models.ProductFilter{PriceRange: "100-500"})
	require.NoError(t, err)
	assert.Equal(t, []string{"P100"}, skus(res.Products))
}

func TestBrowseExplicitBoundsAreInclusive(t *testing.T) {
	env := newTestEnv()
	seedStorefront(env)

	res, err := env.storefront.Browse(context.Background(), models.ProductFilter{
		MinPrice: decimalPtr("40"),
		MaxPrice: decimalPtr("480"),
		Sort:     SortPriceDesc,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"KET1", "MUG1", "TEE1"}, skus(res.Products))
}

func TestBrowseCampaignScope(t *testing.T) {
	env := newTestEnv()
	seedStorefront(env)
	ctx := context.Background()

	res, err := env.storefront.Browse(ctx, models.ProductFilter{Campaign: "lamp week"})
	require.NoError(t, err)
	require.NotNil(t, res.Campaign)
	assert.Equal(t, "LAMPS", res.Campaign.CampaignID)
	require.Equal(t, []string{"LAMP1"}, skus(res.Products))
	assertPrice(t, "900", res.Products[0].EffectivePrice)

	// a named draft still scopes and prices the listing
	res, err = env.storefront.Browse(ctx, models.ProductFilter{Campaign: "flash sale"})
	require.NoError(t, err)
	require.NotNil(t, res.Campaign)
	assert.Equal(t, "DRAFT", res.Campaign.CampaignID)
	require.Equal(t, []string{"TEE1"}, skus(res.Products))
	assertPrice(t, "35", res.Products[0].EffectivePrice)
	assert.True(t, res.Products[0].IsDiscounted)

	res, err = env.storefront.Browse(ctx, models.ProductFilter{Campaign: "Nope"})
	require.NoError(t, err)
	assert.Equal(t, "SPRING", res.Campaign.CampaignID)
	assert.Len(t, res.Products, 5)
}

func TestBrowseRejectsUnknownOptions(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.storefront.Browse(ctx, models.ProductFilter{Sort: "popular"})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = env.storefront.Browse(ctx, models.ProductFilter{PriceRange: "cheap"})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = env.storefront.Browse(ctx, models.ProductFilter{MinPrice: decimalPtr("10"), MaxPrice: decimalPtr("5")})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestFeatured(t *testing.T) {
	env := newTestEnv()
	seedStorefront(env)
	ctx := context.Background()

	res, err := env.storefront.Featured(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"PLT1", "LAMP1"}, skus(res.Products))
	assert.Equal(t, "SPRING", res.Campaign.CampaignID)

	res, err = env.storefront.Featured(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, res.Products, 5)
}

func TestFeaturedDefaultLimit(t *testing.T) {
	env := newTestEnv()
	for _, sku := range []string{"A", "B", "C", "D", "E", "F", "G", "H"} {
		env.mustCreateProduct(sku, "Item "+sku, "10", "")
	}

	res, err := env.storefront.Featured(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"H", "G", "F", "E", "D", "C"}, skus(res.Products))
	assert.Nil(t, res.Campaign)
}

func TestDetail(t *testing.T) {
	env := newTestEnv()
	seedStorefront(env)
	ctx := context.Background()

	mug, err := env.storefront.Detail(ctx, "MUG1")
	require.NoError(t, err)
	assertPrice(t, "80", mug.EffectivePrice)
	assert.True(t, mug.IsDiscounted)
	assert.Equal(t, models.DiscountPercentage, mug.DiscountType)

	tee, err := env.storefront.Detail(ctx, "TEE1")
	require.NoError(t, err)
	assertPrice(t, "40", tee.EffectivePrice)
	assert.False(t, tee.IsDiscounted)

	_, err = env.storefront.Detail(ctx, "GONE")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCategories(t *testing.T) {
	env := newTestEnv()
	seedStorefront(env)
	env.mustCreateProduct("NOCAT", "Mystery", "1", "")

	categories, err := env.storefront.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Apparel", "Home", "Kitchen", "kitchen"}, categories)
}
