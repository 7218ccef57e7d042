package libs

import (
	"context"
	"fmt"
	"html"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"retail-hub/config"
	"retail-hub/models"
)

// CampaignMailer emails the configured recipients when a campaign goes live.
type CampaignMailer struct {
	dialer     *gomail.Dialer
	from       string
	recipients []string
	log        *zap.Logger
}

func NewCampaignMailer(cfg *config.SMTPConfig, log *zap.Logger) (*CampaignMailer, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("SMTP configuration missing")
	}

	from := cfg.From
	if from == "" {
		from = cfg.User
	}

	return &CampaignMailer{
		dialer:     gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass),
		from:       from,
		recipients: cfg.Notify,
		log:        log,
	}, nil
}

func (m *CampaignMailer) CampaignLaunched(ctx context.Context, campaign models.Campaign) error {
	msg := m.launchMessage(campaign)
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.log.Info("campaign launch email sent",
		zap.String("campaign_id", campaign.CampaignID), zap.Int("recipients", len(m.recipients)))
	return nil
}

func (m *CampaignMailer) launchMessage(campaign models.Campaign) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.recipients...)
	msg.SetHeader("Subject", fmt.Sprintf("Campaign live: %s", campaign.Name))
	msg.SetBody("text/html", launchBody(campaign))
	return msg
}

func launchBody(campaign models.Campaign) string {
	discount := campaign.DiscountValue.String() + "%"
	if campaign.DiscountType == models.DiscountFixed {
		discount = campaign.DiscountValue.StringFixed(2) + " off"
	}

	period := "open ended"
	if campaign.StartDate != "" || campaign.EndDate != "" {
		period = fmt.Sprintf("%s to %s", campaign.StartDate, campaign.EndDate)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
    <h2>%s is now active</h2>
    <p>%s</p>
    <p><strong>Discount:</strong> %s</p>
    <p><strong>Period:</strong> %s</p>
    <p><strong>Products:</strong> %s</p>
    <p style="color: #666; font-size: 12px;">Campaign ID %s</p>
</body>
</html>
	`, html.EscapeString(campaign.Name), html.EscapeString(campaign.Description), discount,
		html.EscapeString(period), html.EscapeString(strings.Join(campaign.Products, ", ")), campaign.CampaignID)
}
