package order

import "github.com/brandforge/printshop/internal/catalog"

// LineTotal computes the price of one order line: base price times quantity,
// plus each per-unit surcharge whose option has a non-empty selected value.
// Options without a selection never contribute, even when they define a
// surcharge. A quantity of zero or less yields 0 regardless of selections.
// The product's option list is walked in declaration order, so the sum is
// deterministic.
func LineTotal(p *catalog.Product, quantity int, customizations map[string]string) float64 {
	if quantity <= 0 {
		return 0
	}

	total := p.BasePrice * float64(quantity)
	for _, opt := range p.CustomizationOptions {
		if opt.AdditionalCost <= 0 {
			continue
		}
		if value, ok := customizations[opt.ID]; ok && value != "" {
			total += opt.AdditionalCost * float64(quantity)
		}
	}

	return total
}
