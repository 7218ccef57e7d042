package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retail-hub/models"
)

func steppingClock() func() time.Time {
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		at = at.Add(time.Second)
		return at
	}
}

func TestMemoryStoreProductLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.SetClock(steppingClock())

	p := &models.Product{SKU: "LAMP-0001", ProductName: "Desk Lamp", Price: decimal.NewFromInt(40)}
	require.NoError(t, store.CreateProduct(ctx, p))
	assert.Equal(t, int64(1), p.Revision)
	assert.False(t, p.CreatedAt.IsZero())

	err := store.CreateProduct(ctx, &models.Product{SKU: "LAMP-0001", ProductName: "Other"})
	assert.ErrorIs(t, err, models.ErrConflict)

	update := &models.Product{SKU: "LAMP-0001", ProductName: "Desk Lamp XL", Price: decimal.NewFromInt(45)}
	require.NoError(t, store.UpdateProduct(ctx, update, 1))
	assert.Equal(t, int64(2), update.Revision)
	assert.Equal(t, p.CreatedAt, update.CreatedAt)
	assert.True(t, update.UpdatedAt.After(update.CreatedAt))

	err = store.UpdateProduct(ctx, &models.Product{SKU: "LAMP-0001", ProductName: "Stale"}, 1)
	assert.ErrorIs(t, err, models.ErrConflict)

	err = store.UpdateProduct(ctx, &models.Product{SKU: "NOPE-0000", ProductName: "Ghost"}, 0)
	assert.ErrorIs(t, err, models.ErrNotFound)

	got, err := store.GetProduct(ctx, "LAMP-0001")
	require.NoError(t, err)
	assert.Equal(t, "Desk Lamp XL", got.ProductName)

	deleted, err := store.DeleteProduct(ctx, "LAMP-0001")
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = store.DeleteProduct(ctx, "LAMP-0001")
	assert.ErrorIs(t, err, models.ErrNotFound)
	_, err = store.GetProduct(ctx, "LAMP-0001")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestMemoryStoreKeepsCreationOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	for _, sku := range []string{"C", "A", "B"} {
		require.NoError(t, store.CreateProduct(ctx, &models.Product{SKU: sku, ProductName: sku}))
	}
	_, err := store.DeleteProduct(ctx, "A")
	require.NoError(t, err)

	products, err := store.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "C", products[0].SKU)
	assert.Equal(t, "B", products[1].SKU)
}

func TestMemoryStoreCampaignsAreCopied(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	c := &models.Campaign{CampaignID: "CMP1", Name: "Spring", Status: models.StatusActive, Products: []string{"A"}}
	require.NoError(t, store.CreateCampaign(ctx, c))
	c.Products[0] = "mutated"

	got, err := store.GetCampaign(ctx, "CMP1")
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, got.Products)

	got.Products = append(got.Products, "B")
	listed, err := store.ListCampaigns(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, []string{"A"}, listed[0].Products)
}

func TestMemoryStoreCampaignRevisions(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.SetClock(steppingClock())

	require.NoError(t, store.CreateCampaign(ctx, &models.Campaign{CampaignID: "CMP1", Name: "Spring"}))
	assert.ErrorIs(t, store.CreateCampaign(ctx, &models.Campaign{CampaignID: "CMP1"}), models.ErrConflict)

	update := &models.Campaign{CampaignID: "CMP1", Name: "Spring Sale", Status: models.StatusActive}
	require.NoError(t, store.UpdateCampaign(ctx, update, 1))
	assert.Equal(t, int64(2), update.Revision)

	assert.ErrorIs(t, store.UpdateCampaign(ctx, &models.Campaign{CampaignID: "CMP1"}, 1), models.ErrConflict)
	assert.ErrorIs(t, store.UpdateCampaign(ctx, &models.Campaign{CampaignID: "CMP9"}, 0), models.ErrNotFound)

	// revision 0 skips the check
	require.NoError(t, store.UpdateCampaign(ctx, &models.Campaign{CampaignID: "CMP1", Name: "Last"}, 0))
	got, err := store.GetCampaign(ctx, "CMP1")
	require.NoError(t, err)
	assert.Equal(t, "Last", got.Name)
	assert.Equal(t, int64(3), got.Revision)
}

func TestMemoryStoreUsersByEmail(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Create(ctx, &models.User{ID: "u1", Email: "Admin@Example.com", Role: models.RoleAdmin}))
	assert.ErrorIs(t, store.Create(ctx, &models.User{ID: "u2", Email: "admin@example.com"}), models.ErrConflict)

	u, err := store.FindByEmail(ctx, "ADMIN@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)

	_, err = store.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.NoError(t, store.Ping(ctx))
}
