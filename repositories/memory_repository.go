package repositories

import (
	"context"
	"strings"
	"sync"
	"time"

	"retail-hub/models"
)

// MemoryStore keeps products, campaigns and users in process memory. It backs
// local runs with STORE_DRIVER=memory and the service tests.
type MemoryStore struct {
	mu            sync.RWMutex
	products      map[string]models.Product
	productOrder  []string
	campaigns     map[string]models.Campaign
	campaignOrder []string
	users         map[string]models.User
	now           func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products:  map[string]models.Product{},
		campaigns: map[string]models.Campaign{},
		users:     map[string]models.User{},
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// SetClock replaces the clock used to stamp createdAt and updatedAt.
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func copyCampaign(c models.Campaign) models.Campaign {
	c.Products = append([]string{}, c.Products...)
	return c
}

func removeKey(order []string, key string) []string {
	for i, k := range order {
		if k == key {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}

func (s *MemoryStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]models.Product, 0, len(s.productOrder))
	for _, sku := range s.productOrder {
		products = append(products, s.products[sku])
	}
	return products, nil
}

func (s *MemoryStore) GetProduct(ctx context.Context, sku string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[sku]
	if !ok {
		return nil, models.NewStoreError("get product", sku, models.ErrNotFound)
	}
	return &p, nil
}

func (s *MemoryStore) CreateProduct(ctx context.Context, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[product.SKU]; exists {
		return models.NewStoreError("create product", product.SKU, models.ErrConflict)
	}
	now := s.now()
	product.Revision = 1
	product.CreatedAt, product.UpdatedAt = now, now
	s.products[product.SKU] = *product
	s.productOrder = append(s.productOrder, product.SKU)
	return nil
}

func (s *MemoryStore) UpdateProduct(ctx context.Context, product *models.Product, expectedRevision int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.products[product.SKU]
	if !ok {
		return models.NewStoreError("update product", product.SKU, models.ErrNotFound)
	}
	if expectedRevision != 0 && stored.Revision != expectedRevision {
		return models.NewStoreError("update product", product.SKU, models.ErrConflict)
	}

	stored.ProductName = product.ProductName
	stored.Price = product.Price
	stored.ImageURL = product.ImageURL
	stored.Category = product.Category
	stored.Description = product.Description
	stored.Revision++
	stored.UpdatedAt = s.now()
	s.products[product.SKU] = stored
	*product = stored
	return nil
}

func (s *MemoryStore) DeleteProduct(ctx context.Context, sku string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.products[sku]; !ok {
		return 0, models.NewStoreError("delete product", sku, models.ErrNotFound)
	}
	delete(s.products, sku)
	s.productOrder = removeKey(s.productOrder, sku)
	return 1, nil
}

func (s *MemoryStore) ListCampaigns(ctx context.Context) ([]models.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	campaigns := make([]models.Campaign, 0, len(s.campaignOrder))
	for _, id := range s.campaignOrder {
		campaigns = append(campaigns, copyCampaign(s.campaigns[id]))
	}
	return campaigns, nil
}

func (s *MemoryStore) GetCampaign(ctx context.Context, id string) (*models.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.campaigns[id]
	if !ok {
		return nil, models.NewStoreError("get campaign", id, models.ErrNotFound)
	}
	c = copyCampaign(c)
	return &c, nil
}

func (s *MemoryStore) CreateCampaign(ctx context.Context, campaign *models.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.campaigns[campaign.CampaignID]; exists {
		return models.NewStoreError("create campaign", campaign.CampaignID, models.ErrConflict)
	}
	now := s.now()
	campaign.Revision = 1
	campaign.CreatedAt, campaign.UpdatedAt = now, now
	s.campaigns[campaign.CampaignID] = copyCampaign(*campaign)
	s.campaignOrder = append(s.campaignOrder, campaign.CampaignID)
	return nil
}

func (s *MemoryStore) UpdateCampaign(ctx context.Context, campaign *models.Campaign, expectedRevision int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.campaigns[campaign.CampaignID]
	if !ok {
		return models.NewStoreError("update campaign", campaign.CampaignID, models.ErrNotFound)
	}
	if expectedRevision != 0 && stored.Revision != expectedRevision {
		return models.NewStoreError("update campaign", campaign.CampaignID, models.ErrConflict)
	}

	updated := copyCampaign(*campaign)
	updated.Revision = stored.Revision + 1
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = s.now()
	s.campaigns[campaign.CampaignID] = updated
	*campaign = copyCampaign(updated)
	return nil
}

func (s *MemoryStore) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(user.Email)
	if _, exists := s.users[key]; exists {
		return models.NewStoreError("create user", user.Email, models.ErrConflict)
	}
	now := s.now()
	user.CreatedAt, user.UpdatedAt = now, now
	s.users[key] = *user
	return nil
}

func (s *MemoryStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[strings.ToLower(email)]
	if !ok {
		return nil, models.NewStoreError("find user", email, models.ErrNotFound)
	}
	return &u, nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}
