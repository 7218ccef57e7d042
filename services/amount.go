package services

import (
	"github.com/shopspring/decimal"

	"retail-hub/models"
)

// Amounts are stored as NUMERIC(12, 2): cents precision, below ten billion.
const amountScale = 2

var maxAmount = decimal.New(1, 10)

// validateAmount rejects amounts the stores cannot hold exactly, so a saved
// price always reads back unchanged.
func validateAmount(field string, v decimal.Decimal) error {
	switch {
	case v.IsNegative():
		return models.NewValidationError(field, "must not be negative")
	case !v.Equal(v.Round(amountScale)):
		return models.NewValidationError(field, "must have at most 2 decimal places")
	case v.GreaterThanOrEqual(maxAmount):
		return models.NewValidationError(field, "must be below 10000000000")
	}
	return nil
}
