package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"retail-hub/models"
	"retail-hub/repositories"
)

// interleavingStore runs afterList once, after a list snapshot has been read
// and before the caller gets it back.
type interleavingStore struct {
	*repositories.MemoryStore
	afterList func()
}

func (s *interleavingStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.MemoryStore.ListProducts(ctx)
	s.fire()
	return products, err
}

func (s *interleavingStore) ListCampaigns(ctx context.Context) ([]models.Campaign, error) {
	campaigns, err := s.MemoryStore.ListCampaigns(ctx)
	s.fire()
	return campaigns, err
}

func (s *interleavingStore) fire() {
	if hook := s.afterList; hook != nil {
		s.afterList = nil
		hook()
	}
}

func newRedisListCache(t *testing.T) *repositories.ListCache {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return repositories.NewListCache(client, time.Hour, zap.NewNop())
}

func TestListProductsDoesNotCacheSnapshotOverlappingUpdate(t *testing.T) {
	ctx := context.Background()
	store := &interleavingStore{MemoryStore: repositories.NewMemoryStore()}
	products := NewProductService(store, newRedisListCache(t), zap.NewNop())

	_, err := products.CreateProduct(ctx, models.CreateProductRequest{SKU: "MUG1", ProductName: "Red Mug", Price: decimalPtr("100")})
	require.NoError(t, err)

	store.afterList = func() {
		_, err := products.UpdateProduct(ctx, "MUG1", models.UpdateProductRequest{Price: decimalPtr("80")})
		require.NoError(t, err)
	}
	listed, err := products.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assertPrice(t, "100", listed[0].Price)

	listed, err = products.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assertPrice(t, "80", listed[0].Price)

	// the fresh snapshot is cached now
	listed, err = products.ListProducts(ctx)
	require.NoError(t, err)
	assertPrice(t, "80", listed[0].Price)
}

func TestListCampaignsDoesNotCacheSnapshotOverlappingCreate(t *testing.T) {
	ctx := context.Background()
	store := &interleavingStore{MemoryStore: repositories.NewMemoryStore()}
	campaigns := NewCampaignService(store, newRedisListCache(t), nil, zap.NewNop())

	first := validCampaignRequest()
	first.CampaignID = "CMP1"
	_, err := campaigns.CreateCampaign(ctx, first)
	require.NoError(t, err)

	store.afterList = func() {
		second := validCampaignRequest()
		second.CampaignID = "CMP2"
		_, err := campaigns.CreateCampaign(ctx, second)
		require.NoError(t, err)
	}
	listed, err := campaigns.ListCampaigns(ctx)
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	listed, err = campaigns.ListCampaigns(ctx)
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}
