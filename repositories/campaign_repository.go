package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"retail-hub/models"
)

const campaignColumns = `campaign_id, name, description, start_date, end_date, discount_type,
	discount_value, status, products, revision, created_at, updated_at`

type CampaignRepository struct {
	db DBExecutor
}

func NewCampaignRepository(db DBExecutor) *CampaignRepository {
	return &CampaignRepository{db: db}
}

func scanCampaign(row pgx.Row) (*models.Campaign, error) {
	var c models.Campaign
	err := row.Scan(&c.CampaignID, &c.Name, &c.Description, &c.StartDate, &c.EndDate,
		&c.DiscountType, &c.DiscountValue, &c.Status, &c.Products, &c.Revision,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if c.Products == nil {
		c.Products = []string{}
	}
	return &c, nil
}

// ListCampaigns returns campaigns in creation order.
func (r *CampaignRepository) ListCampaigns(ctx context.Context) ([]models.Campaign, error) {
	rows, err := r.db.Query(ctx, `SELECT `+campaignColumns+` FROM campaigns ORDER BY created_at, campaign_id`)
	if err != nil {
		return nil, pgError("list campaigns", "", err)
	}
	defer rows.Close()

	campaigns := []models.Campaign{}
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, pgError("scan campaign", "", err)
		}
		campaigns = append(campaigns, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, pgError("list campaigns", "", err)
	}
	return campaigns, nil
}

func (r *CampaignRepository) GetCampaign(ctx context.Context, id string) (*models.Campaign, error) {
	c, err := scanCampaign(r.db.QueryRow(ctx,
		`SELECT `+campaignColumns+` FROM campaigns WHERE campaign_id = $1`, id))
	if err != nil {
		return nil, pgError("get campaign", id, err)
	}
	return c, nil
}

func (r *CampaignRepository) CreateCampaign(ctx context.Context, campaign *models.Campaign) error {
	now := time.Now().UTC()
	query := `
		INSERT INTO campaigns (campaign_id, name, description, start_date, end_date, discount_type,
			discount_value, status, products, revision, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 1, $10, $10)
		RETURNING ` + campaignColumns

	created, err := scanCampaign(r.db.QueryRow(ctx, query,
		campaign.CampaignID, campaign.Name, campaign.Description, campaign.StartDate,
		campaign.EndDate, campaign.DiscountType, campaign.DiscountValue, campaign.Status,
		campaign.Products, now))
	if err != nil {
		return pgError("create campaign", campaign.CampaignID, err)
	}
	*campaign = *created
	return nil
}

func (r *CampaignRepository) UpdateCampaign(ctx context.Context, campaign *models.Campaign, expectedRevision int64) error {
	query := `
		UPDATE campaigns
		SET name = $2, description = $3, start_date = $4, end_date = $5, discount_type = $6,
		    discount_value = $7, status = $8, products = $9, revision = revision + 1, updated_at = $10
		WHERE campaign_id = $1 AND ($11 = 0 OR revision = $11)
		RETURNING ` + campaignColumns

	updated, err := scanCampaign(r.db.QueryRow(ctx, query,
		campaign.CampaignID, campaign.Name, campaign.Description, campaign.StartDate,
		campaign.EndDate, campaign.DiscountType, campaign.DiscountValue, campaign.Status,
		campaign.Products, time.Now().UTC(), expectedRevision))
	if err == nil {
		*campaign = *updated
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) || expectedRevision == 0 {
		return pgError("update campaign", campaign.CampaignID, err)
	}

	if _, getErr := r.GetCampaign(ctx, campaign.CampaignID); getErr != nil {
		return getErr
	}
	return models.NewStoreError("update campaign", campaign.CampaignID, models.ErrConflict)
}
