package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"retail-hub/models"
	"retail-hub/repositories"
)

type ProductService struct {
	store ProductStore
	cache *repositories.ListCache
	log   *zap.Logger
	now   func() time.Time
}

func NewProductService(store ProductStore, cache *repositories.ListCache, log *zap.Logger) *ProductService {
	return &ProductService{
		store: store,
		cache: cache,
		log:   log,
		now:   time.Now,
	}
}

func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	gen := s.cache.Generation(ctx, repositories.ProductListKey)
	if s.cache.Get(ctx, repositories.ProductListKey, &products) {
		return products, nil
	}

	products, err := s.store.ListProducts(ctx)
	if err != nil {
		s.log.Error("failed to list products", zap.Error(err))
		return nil, err
	}

	s.cache.Set(ctx, repositories.ProductListKey, gen, products)
	return products, nil
}

func (s *ProductService) GetProduct(ctx context.Context, sku string) (*models.Product, error) {
	return s.store.GetProduct(ctx, sku)
}

func validateProduct(p *models.Product) error {
	if p.ProductName == "" {
		return models.NewValidationError("productName", "is required")
	}
	return validateAmount("price", p.Price)
}

// CreateProduct persists a new product. When the request carries no SKU one is
// generated from the name, and a collision on a generated SKU is retried with
// a fresh random suffix.
func (s *ProductService) CreateProduct(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	if req.Price == nil {
		return nil, models.NewValidationError("price", "is required")
	}

	product := &models.Product{
		SKU:         strings.TrimSpace(req.SKU),
		ProductName: strings.TrimSpace(req.ProductName),
		Price:       *req.Price,
		ImageURL:    strings.TrimSpace(req.ImageURL),
		Category:    strings.TrimSpace(req.Category),
		Description: req.Description,
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	generated := product.SKU == ""
	if generated {
		product.SKU = GenerateSKU(product.ProductName, s.now())
	} else if err := validateIdentifier("sku", product.SKU); err != nil {
		return nil, err
	}

	var err error
	for attempt := 1; attempt <= maxCreateAttempts; attempt++ {
		err = s.store.CreateProduct(ctx, product)
		if err == nil || !generated || !errors.Is(err, models.ErrConflict) {
			break
		}
		s.log.Warn("generated sku collided", zap.String("sku", product.SKU), zap.Int("attempt", attempt))
		product.SKU = rerollSuffix(product.SKU)
	}
	if err != nil {
		s.log.Error("failed to create product", zap.String("sku", product.SKU), zap.Error(err))
		return nil, err
	}

	s.cache.Invalidate(ctx, repositories.ProductListKey)
	return product, nil
}

// UpdateProduct applies a partial update. The SKU always comes from the path,
// never from the payload.
func (s *ProductService) UpdateProduct(ctx context.Context, sku string, req models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.store.GetProduct(ctx, sku)
	if err != nil {
		return nil, err
	}

	if req.ProductName != nil {
		product.ProductName = strings.TrimSpace(*req.ProductName)
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.ImageURL != nil {
		product.ImageURL = strings.TrimSpace(*req.ImageURL)
	}
	if req.Category != nil {
		product.Category = strings.TrimSpace(*req.Category)
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	product.SKU = sku

	if err := validateProduct(product); err != nil {
		return nil, err
	}

	if err := s.store.UpdateProduct(ctx, product, req.Revision); err != nil {
		s.log.Error("failed to update product", zap.String("sku", sku), zap.Error(err))
		return nil, err
	}

	s.cache.Invalidate(ctx, repositories.ProductListKey)
	return product, nil
}

// DeleteProduct hard-deletes a product. Campaigns that list the SKU keep it.
func (s *ProductService) DeleteProduct(ctx context.Context, sku string) (int64, error) {
	deleted, err := s.store.DeleteProduct(ctx, sku)
	if err != nil {
		return 0, err
	}

	s.cache.Invalidate(ctx, repositories.ProductListKey)
	return deleted, nil
}

func (s *ProductService) SetImageURL(ctx context.Context, sku, url string) (*models.Product, error) {
	return s.UpdateProduct(ctx, sku, models.UpdateProductRequest{ImageURL: &url})
}
