package services

import (
	"context"
	"mime/multipart"

	"go.uber.org/zap"

	"retail-hub/models"
)

// ImageStore hosts uploaded product images and returns their public URL.
type ImageStore interface {
	Save(ctx context.Context, sku string, file *multipart.FileHeader) (string, error)
}

// AdminService coordinates catalog and campaign mutations on behalf of an
// admin. Every call takes the caller's Principal explicitly.
type AdminService struct {
	products  *ProductService
	campaigns *CampaignService
	images    ImageStore
	log       *zap.Logger
}

func NewAdminService(products *ProductService, campaigns *CampaignService, images ImageStore, log *zap.Logger) *AdminService {
	return &AdminService{
		products:  products,
		campaigns: campaigns,
		images:    images,
		log:       log,
	}
}

func authorize(p models.Principal) error {
	if !p.IsAdmin {
		return models.ErrForbidden
	}
	return nil
}

func (s *AdminService) CreateProduct(ctx context.Context, p models.Principal, req models.CreateProductRequest) (*models.Product, error) {
	if err := authorize(p); err != nil {
		return nil, err
	}
	product, err := s.products.CreateProduct(ctx, req)
	if err != nil {
		return nil, err
	}
	s.log.Info("product created", zap.String("sku", product.SKU), zap.String("by", p.Email))
	return product, nil
}

func (s *AdminService) UpdateProduct(ctx context.Context, p models.Principal, sku string, req models.UpdateProductRequest) (*models.Product, error) {
	if err := authorize(p); err != nil {
		return nil, err
	}
	product, err := s.products.UpdateProduct(ctx, sku, req)
	if err != nil {
		return nil, err
	}
	s.log.Info("product updated", zap.String("sku", sku), zap.Int64("revision", product.Revision), zap.String("by", p.Email))
	return product, nil
}

// SaveProduct creates the product when editingSKU is empty and updates it
// otherwise, then returns the saved record with the refreshed catalog.
func (s *AdminService) SaveProduct(ctx context.Context, p models.Principal, editingSKU string, req models.UpdateProductRequest) (*models.ProductWorkspace, error) {
	var saved *models.Product
	var err error
	if editingSKU == "" {
		saved, err = s.CreateProduct(ctx, p, req.ToCreate())
	} else {
		saved, err = s.UpdateProduct(ctx, p, editingSKU, req)
	}
	if err != nil {
		return nil, err
	}

	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return &models.ProductWorkspace{Saved: saved, Products: products}, nil
}

// DeleteProduct removes a product once the caller has confirmed the deletion.
func (s *AdminService) DeleteProduct(ctx context.Context, p models.Principal, sku string, confirmed bool) (int64, error) {
	if err := authorize(p); err != nil {
		return 0, err
	}
	if !confirmed {
		return 0, models.ErrConfirmationRequired
	}

	deleted, err := s.products.DeleteProduct(ctx, sku)
	if err != nil {
		return 0, err
	}
	s.log.Info("product deleted", zap.String("sku", sku), zap.String("by", p.Email))
	return deleted, nil
}

func (s *AdminService) UploadProductImage(ctx context.Context, p models.Principal, sku string, file *multipart.FileHeader) (*models.Product, error) {
	if err := authorize(p); err != nil {
		return nil, err
	}
	if _, err := s.products.GetProduct(ctx, sku); err != nil {
		return nil, err
	}

	url, err := s.images.Save(ctx, sku, file)
	if err != nil {
		s.log.Error("failed to store product image", zap.String("sku", sku), zap.Error(err))
		return nil, err
	}
	return s.products.SetImageURL(ctx, sku, url)
}

func (s *AdminService) CreateCampaign(ctx context.Context, p models.Principal, req models.CampaignRequest) (*models.Campaign, error) {
	if err := authorize(p); err != nil {
		return nil, err
	}
	campaign, err := s.campaigns.CreateCampaign(ctx, req)
	if err != nil {
		return nil, err
	}
	s.log.Info("campaign created", zap.String("campaign_id", campaign.CampaignID), zap.String("by", p.Email))
	return campaign, nil
}

func (s *AdminService) UpdateCampaign(ctx context.Context, p models.Principal, id string, req models.CampaignRequest) (*models.Campaign, error) {
	if err := authorize(p); err != nil {
		return nil, err
	}
	campaign, err := s.campaigns.UpdateCampaign(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.log.Info("campaign updated", zap.String("campaign_id", id), zap.Int64("revision", campaign.Revision), zap.String("by", p.Email))
	return campaign, nil
}

// SaveCampaign creates or updates depending on whether the payload names a
// campaign, then reselects the saved campaign in the refreshed list.
func (s *AdminService) SaveCampaign(ctx context.Context, p models.Principal, req models.CampaignRequest) (*models.CampaignWorkspace, error) {
	var saved *models.Campaign
	var err error
	if req.CampaignID == "" {
		saved, err = s.CreateCampaign(ctx, p, req)
	} else {
		saved, err = s.UpdateCampaign(ctx, p, req.CampaignID, req)
	}
	if err != nil {
		return nil, err
	}
	return s.workspace(ctx, saved.CampaignID)
}

// Workspace lists campaigns and picks the one to edit: selectedID when it
// still exists, else the first campaign, else a blank template.
func (s *AdminService) Workspace(ctx context.Context, p models.Principal, selectedID string) (*models.CampaignWorkspace, error) {
	if err := authorize(p); err != nil {
		return nil, err
	}
	return s.workspace(ctx, selectedID)
}

func (s *AdminService) workspace(ctx context.Context, selectedID string) (*models.CampaignWorkspace, error) {
	campaigns, err := s.campaigns.ListCampaigns(ctx)
	if err != nil {
		return nil, err
	}
	return &models.CampaignWorkspace{
		Campaigns: campaigns,
		Selected:  selectCampaign(campaigns, selectedID),
	}, nil
}

func selectCampaign(campaigns []models.Campaign, selectedID string) models.Campaign {
	if selectedID != "" {
		for _, c := range campaigns {
			if c.CampaignID == selectedID {
				return c
			}
		}
	}
	if len(campaigns) > 0 {
		return campaigns[0]
	}
	return models.NewCampaignTemplate()
}
