package gid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name       string
		entityType string
		rawID      string
		expected   string
	}{
		{
			name:       "числовой идентификатор получает префикс",
			entityType: "Customer",
			rawID:      "123456",
			expected:   "gid://shopify/Customer/123456",
		},
		{
			name:       "готовый gid не меняется",
			entityType: "Customer",
			rawID:      "gid://shopify/Customer/123456",
			expected:   "gid://shopify/Customer/123456",
		},
		{
			name:       "пустая строка не меняется",
			entityType: "ProductVariant",
			rawID:      "",
			expected:   "",
		},
		{
			name:       "тип подставляется в путь",
			entityType: "SellingPlan",
			rawID:      "42",
			expected:   "gid://shopify/SellingPlan/42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.entityType, tt.rawID))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	once := Normalize("Customer", "777")
	twice := Normalize("Customer", once)
	assert.Equal(t, once, twice)
}
