package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brandforge/printshop/internal/catalog"
	"github.com/brandforge/printshop/internal/order"
)

func testProduct() *catalog.Product {
	return &catalog.Product{
		ID:          "1",
		Name:        "Custom Pens",
		Category:    catalog.CategoryPens,
		BasePrice:   2.50,
		MinQuantity: 50,
		MaxQuantity: 10000,
		CustomizationOptions: []catalog.CustomizationOption{
			{ID: "color", Name: "Pen Color", Type: catalog.OptionColor, Options: []string{"Black", "Blue", "Red", "Silver"}, Required: true},
			{ID: "engraving", Name: "Engraving", Type: catalog.OptionText, Options: []string{}, AdditionalCost: 0.75},
			{ID: "gift-box", Name: "Gift Box", Type: catalog.OptionMaterial, Options: []string{"Standard", "Premium"}, AdditionalCost: 1.25},
		},
	}
}

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name           string
		quantity       int
		customizations map[string]string
		expected       float64
	}{
		{
			name:           "base_price_only",
			quantity:       50,
			customizations: map[string]string{},
			expected:       125.00,
		},
		{
			name:           "zero_quantity",
			quantity:       0,
			customizations: map[string]string{"engraving": "ACME Corp"},
			expected:       0,
		},
		{
			name:           "negative_quantity",
			quantity:       -10,
			customizations: map[string]string{},
			expected:       0,
		},
		{
			name:           "single_surcharge",
			quantity:       100,
			customizations: map[string]string{"engraving": "ACME Corp"},
			expected:       (2.50 + 0.75) * 100,
		},
		{
			name:     "multiple_surcharges",
			quantity: 100,
			customizations: map[string]string{
				"engraving": "ACME Corp",
				"gift-box":  "Premium",
			},
			expected: (2.50 + 0.75 + 1.25) * 100,
		},
		{
			name:           "free_option_contributes_nothing",
			quantity:       100,
			customizations: map[string]string{"color": "Blue"},
			expected:       250.00,
		},
		{
			name:           "empty_value_skips_surcharge",
			quantity:       100,
			customizations: map[string]string{"engraving": ""},
			expected:       250.00,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := order.LineTotal(testProduct(), tt.quantity, tt.customizations)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestLineTotal_SurchargesNeverReducePrice(t *testing.T) {
	p := testProduct()

	selections := []map[string]string{
		{},
		{"color": "Black"},
		{"engraving": "x"},
		{"engraving": "x", "gift-box": "Standard"},
		{"color": "Red", "engraving": "y", "gift-box": "Premium"},
	}

	for q := p.MinQuantity; q <= p.MinQuantity+5; q++ {
		base := p.BasePrice * float64(q)
		for _, customizations := range selections {
			got := order.LineTotal(p, q, customizations)
			assert.GreaterOrEqual(t, got, base)
		}
	}
}
