package catalog

import "strings"

// Filter returns the products matching the category filter and the free-text
// search term. A category of "all" (or empty) passes everything; the term
// matches case-insensitively against product name or description. Input
// order is preserved.
func Filter(products []Product, category, term string) []Product {
	filtered := make([]Product, 0, len(products))
	term = strings.ToLower(strings.TrimSpace(term))

	for _, p := range products {
		if category != "" && category != CategoryAll && p.Category.String() != category {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			continue
		}
		filtered = append(filtered, p)
	}

	return filtered
}
