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

// CampaignNotifier is told when a campaign goes live.
type CampaignNotifier interface {
	CampaignLaunched(ctx context.Context, campaign models.Campaign) error
}

type CampaignService struct {
	store    CampaignStore
	cache    *repositories.ListCache
	notifier CampaignNotifier
	log      *zap.Logger
	now      func() time.Time
}

// NewCampaignService builds the service. notifier may be nil.
func NewCampaignService(store CampaignStore, cache *repositories.ListCache, notifier CampaignNotifier, log *zap.Logger) *CampaignService {
	return &CampaignService{
		store:    store,
		cache:    cache,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// ListCampaigns returns campaigns in creation order.
func (s *CampaignService) ListCampaigns(ctx context.Context) ([]models.Campaign, error) {
	var campaigns []models.Campaign
	gen := s.cache.Generation(ctx, repositories.CampaignListKey)
	if s.cache.Get(ctx, repositories.CampaignListKey, &campaigns) {
		return campaigns, nil
	}

	campaigns, err := s.store.ListCampaigns(ctx)
	if err != nil {
		s.log.Error("failed to list campaigns", zap.Error(err))
		return nil, err
	}

	s.cache.Set(ctx, repositories.CampaignListKey, gen, campaigns)
	return campaigns, nil
}

func (s *CampaignService) GetCampaign(ctx context.Context, id string) (*models.Campaign, error) {
	return s.store.GetCampaign(ctx, id)
}

// buildCampaign validates a request and normalizes it into a campaign record.
// The returned campaign carries no ID.
func buildCampaign(req models.CampaignRequest) (models.Campaign, error) {
	c := models.Campaign{
		Name:          strings.TrimSpace(req.Name),
		Description:   req.Description,
		StartDate:     strings.TrimSpace(req.StartDate),
		EndDate:       strings.TrimSpace(req.EndDate),
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		Status:        req.Status,
		Products:      normalizeSKUs(req.Products),
	}

	if c.Name == "" {
		return c, models.NewValidationError("name", "is required")
	}

	switch c.DiscountType {
	case models.DiscountPercentage:
		if c.DiscountValue.GreaterThan(hundred) {
			return c, models.NewValidationError("discountValue", "percentage must not exceed 100")
		}
	case models.DiscountFixed:
	default:
		return c, models.NewValidationError("discountType", "must be percentage or fixed")
	}
	if err := validateAmount("discountValue", c.DiscountValue); err != nil {
		return c, err
	}

	switch c.Status {
	case "":
		c.Status = models.StatusDraft
	case models.StatusDraft, models.StatusActive, models.StatusExpired:
	default:
		return c, models.NewValidationError("status", "must be Draft, Active or Expired")
	}

	var start, end time.Time
	var err error
	if c.StartDate != "" {
		if start, err = time.Parse(models.DateLayout, c.StartDate); err != nil {
			return c, models.NewValidationError("startDate", "must be a YYYY-MM-DD date")
		}
	}
	if c.EndDate != "" {
		if end, err = time.Parse(models.DateLayout, c.EndDate); err != nil {
			return c, models.NewValidationError("endDate", "must be a YYYY-MM-DD date")
		}
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return c, models.NewValidationError("endDate", "must not be before startDate")
	}

	return c, nil
}

// normalizeSKUs trims membership entries, drops blanks and duplicates, and
// keeps first-seen order.
func normalizeSKUs(skus []string) []string {
	seen := make(map[string]struct{}, len(skus))
	out := make([]string, 0, len(skus))
	for _, sku := range skus {
		sku = strings.TrimSpace(sku)
		if sku == "" {
			continue
		}
		if _, dup := seen[sku]; dup {
			continue
		}
		seen[sku] = struct{}{}
		out = append(out, sku)
	}
	return out
}

// CreateCampaign persists a new campaign, assigning a CMP id when none is given.
func (s *CampaignService) CreateCampaign(ctx context.Context, req models.CampaignRequest) (*models.Campaign, error) {
	campaign, err := buildCampaign(req)
	if err != nil {
		return nil, err
	}

	campaign.CampaignID = strings.TrimSpace(req.CampaignID)
	generated := campaign.CampaignID == ""
	if generated {
		campaign.CampaignID = GenerateCampaignID(s.now())
	} else if err := validateIdentifier("campaignID", campaign.CampaignID); err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= maxCreateAttempts; attempt++ {
		err = s.store.CreateCampaign(ctx, &campaign)
		if err == nil || !generated || !errors.Is(err, models.ErrConflict) {
			break
		}
		s.log.Warn("generated campaign id collided", zap.String("campaign_id", campaign.CampaignID), zap.Int("attempt", attempt))
		campaign.CampaignID = rerollSuffix(campaign.CampaignID)
	}
	if err != nil {
		s.log.Error("failed to create campaign", zap.String("campaign_id", campaign.CampaignID), zap.Error(err))
		return nil, err
	}

	s.cache.Invalidate(ctx, repositories.CampaignListKey)
	if campaign.IsActive() {
		s.notifyLaunch(ctx, campaign)
	}
	return &campaign, nil
}

// UpdateCampaign replaces the editable fields of campaign id. The id in the
// payload is ignored.
func (s *CampaignService) UpdateCampaign(ctx context.Context, id string, req models.CampaignRequest) (*models.Campaign, error) {
	previous, err := s.store.GetCampaign(ctx, id)
	if err != nil {
		return nil, err
	}

	campaign, err := buildCampaign(req)
	if err != nil {
		return nil, err
	}

	campaign.CampaignID = id
	if err := s.store.UpdateCampaign(ctx, &campaign, req.Revision); err != nil {
		s.log.Error("failed to update campaign", zap.String("campaign_id", id), zap.Error(err))
		return nil, err
	}

	s.cache.Invalidate(ctx, repositories.CampaignListKey)
	if campaign.IsActive() && !previous.IsActive() {
		s.notifyLaunch(ctx, campaign)
	}
	return &campaign, nil
}

func (s *CampaignService) notifyLaunch(ctx context.Context, campaign models.Campaign) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.CampaignLaunched(ctx, campaign); err != nil {
		s.log.Warn("campaign launch notification failed",
			zap.String("campaign_id", campaign.CampaignID), zap.Error(err))
	}
}
