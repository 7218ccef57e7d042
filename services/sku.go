package services

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"time"

	"retail-hub/models"
)

const (
	skuPrefixLen  = 8
	defaultPrefix = "ITEM"
	campaignIDTag = "CMP"

	// generated identifiers get this many create attempts before a conflict surfaces
	maxCreateAttempts = 3
)

// caller-supplied SKUs and campaign ids end up in URL paths
var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func validateIdentifier(field, id string) error {
	if !identifierPattern.MatchString(id) {
		return models.NewValidationError(field, "may only contain letters, digits, '-' and '_'")
	}
	return nil
}

// GenerateSKU builds a SKU from the product name and the creation instant:
// the first 8 upper-case alphanumerics of the name, a dash and the last four
// digits of the epoch milliseconds.
func GenerateSKU(name string, at time.Time) string {
	return fmt.Sprintf("%s-%04d", skuPrefix(name), at.UnixMilli()%10000)
}

func skuPrefix(name string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(name) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			if b.Len() == skuPrefixLen {
				break
			}
		}
	}
	if b.Len() == 0 {
		return defaultPrefix
	}
	return b.String()
}

// GenerateCampaignID returns "CMP" followed by the epoch milliseconds.
func GenerateCampaignID(at time.Time) string {
	return fmt.Sprintf("%s%d", campaignIDTag, at.UnixMilli())
}

// rerollSuffix replaces the trailing four digits of a generated identifier
// with random ones.
func rerollSuffix(id string) string {
	if len(id) < 4 {
		return id
	}
	return fmt.Sprintf("%s%04d", id[:len(id)-4], rand.IntN(10000))
}
