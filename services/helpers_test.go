package services

import (
	"context"
	"mime/multipart"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"retail-hub/models"
	"retail-hub/repositories"
)

type testEnv struct {
	store      *repositories.MemoryStore
	products   *ProductService
	campaigns  *CampaignService
	admin      *AdminService
	storefront *StorefrontService
	notifier   *fakeNotifier
	images     *fakeImageStore
}

func newTestEnv() *testEnv {
	log := zap.NewNop()
	store := repositories.NewMemoryStore()

	// every stamp is one minute after the previous one
	var mu sync.Mutex
	clock := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		clock = clock.Add(time.Minute)
		return clock
	})

	notifier := &fakeNotifier{}
	images := &fakeImageStore{url: "https://cdn.example.com/products/image.png"}
	products := NewProductService(store, nil, log)
	campaigns := NewCampaignService(store, nil, notifier, log)

	return &testEnv{
		store:      store,
		products:   products,
		campaigns:  campaigns,
		admin:      NewAdminService(products, campaigns, images, log),
		storefront: NewStorefrontService(products, campaigns, log),
		notifier:   notifier,
		images:     images,
	}
}

var (
	adminPrincipal    = models.Principal{UserID: "u-1", Email: "admin@example.com", Role: models.RoleAdmin, IsAdmin: true}
	customerPrincipal = models.Principal{UserID: "u-2", Email: "shopper@example.com", Role: models.RoleCustomer}
)

func decimalPtr(v string) *decimal.Decimal {
	d := price(v)
	return &d
}

func strPtr(s string) *string {
	return &s
}

func (e *testEnv) mustCreateProduct(sku, name, p, category string) *models.Product {
	created, err := e.products.CreateProduct(context.Background(), models.CreateProductRequest{
		SKU:         sku,
		ProductName: name,
		Price:       decimalPtr(p),
		Category:    category,
	})
	if err != nil {
		panic(err)
	}
	return created
}

func (e *testEnv) mustCreateCampaign(req models.CampaignRequest) *models.Campaign {
	created, err := e.campaigns.CreateCampaign(context.Background(), req)
	if err != nil {
		panic(err)
	}
	return created
}

type fakeNotifier struct {
	mu       sync.Mutex
	launched []string
	err      error
}

func (n *fakeNotifier) CampaignLaunched(ctx context.Context, campaign models.Campaign) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.launched = append(n.launched, campaign.CampaignID)
	return n.err
}

type fakeImageStore struct {
	url   string
	err   error
	saved []string
}

func (s *fakeImageStore) Save(ctx context.Context, sku string, file *multipart.FileHeader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.saved = append(s.saved, sku)
	return s.url, nil
}
