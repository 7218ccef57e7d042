package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSKU(t *testing.T) {
	at := time.UnixMilli(1700000001234)

	tests := []struct {
		name string
		want string
	}{
		{"Red Mug", "REDMUG-1234"},
		{"super deluxe coffee grinder", "SUPERDEL-1234"},
		{"T-shirt (XL) #2", "TSHIRTXL-1234"},
		{"café 42", "CAF42-1234"},
		{"!!!", "ITEM-1234"},
		{"", "ITEM-1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateSKU(tt.name, at))
		})
	}
}

func TestGenerateSKUPadsSuffix(t *testing.T) {
	assert.Equal(t, "REDMUG-0005", GenerateSKU("Red Mug", time.UnixMilli(1700000000005)))
}

func TestGenerateSKUMatchesPattern(t *testing.T) {
	assert.Regexp(t, `^REDMUG-\d{4}$`, GenerateSKU("Red Mug", time.Now()))
}

func TestGenerateCampaignID(t *testing.T) {
	assert.Equal(t, "CMP1700000001234", GenerateCampaignID(time.UnixMilli(1700000001234)))
}

func TestRerollSuffix(t *testing.T) {
	for i := 0; i < 20; i++ {
		assert.Regexp(t, `^REDMUG-\d{4}$`, rerollSuffix("REDMUG-1234"))
		assert.Regexp(t, `^CMP170000000\d{4}$`, rerollSuffix("CMP1700000001234"))
	}
	assert.Equal(t, "ab", rerollSuffix("ab"))
}
