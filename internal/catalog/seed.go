package catalog

// DefaultCatalog is the standard product lineup used to seed an empty
// products collection.
func DefaultCatalog() []Product {
	return []Product{
		{
			ID:          "1",
			Name:        "Custom Pens",
			Category:    CategoryPens,
			BasePrice:   2.50,
			Description: "High-quality ballpoint pens with your business logo",
			ImageURL:    "/images/pens.jpg",
			MinQuantity: 50,
			MaxQuantity: 10000,
			CustomizationOptions: []CustomizationOption{
				{ID: "color", Name: "Pen Color", Type: OptionColor, Options: []string{"Black", "Blue", "Red", "Silver"}, Required: true},
				{ID: "logo", Name: "Logo Placement", Type: OptionLogo, Options: []string{"Side", "Clip"}, Required: true},
			},
		},
		{
			ID:          "2",
			Name:        "Business Cards",
			Category:    CategoryBusinessCards,
			BasePrice:   0.15,
			Description: "Professional business cards with premium finish",
			ImageURL:    "/images/business-cards.jpg",
			MinQuantity: 100,
			MaxQuantity: 5000,
			CustomizationOptions: []CustomizationOption{
				{ID: "material", Name: "Material", Type: OptionMaterial, Options: []string{"Standard", "Premium Matte", "Glossy"}, Required: true},
				{ID: "logo", Name: "Logo", Type: OptionLogo, Options: []string{"Upload"}, Required: true},
				{ID: "text", Name: "Custom Text", Type: OptionText, Options: []string{}, Required: true},
			},
		},
		{
			ID:          "3",
			Name:        "Shopping Bags",
			Category:    CategoryBags,
			BasePrice:   3.25,
			Description: "Eco-friendly paper bags with custom printing",
			ImageURL:    "/images/bags.jpg",
			MinQuantity: 25,
			MaxQuantity: 2000,
			CustomizationOptions: []CustomizationOption{
				{ID: "size", Name: "Size", Type: OptionSize, Options: []string{"Small", "Medium", "Large"}, Required: true},
				{ID: "color", Name: "Bag Color", Type: OptionColor, Options: []string{"White", "Brown", "Black"}, Required: true},
				{ID: "logo", Name: "Logo", Type: OptionLogo, Options: []string{"Upload"}, Required: true},
			},
		},
		{
			ID:          "4",
			Name:        "Receipt Books",
			Category:    CategoryReceipts,
			BasePrice:   8.50,
			Description: "Professional receipt books with carbon copies",
			ImageURL:    "/images/receipts.jpg",
			MinQuantity: 10,
			MaxQuantity: 500,
			CustomizationOptions: []CustomizationOption{
				{ID: "size", Name: "Size", Type: OptionSize, Options: []string{"4x6", "5x8"}, Required: true},
				{ID: "logo", Name: "Header Logo", Type: OptionLogo, Options: []string{"Upload"}, Required: true},
				{ID: "text", Name: "Business Info", Type: OptionText, Options: []string{}, Required: true},
			},
		},
		{
			ID:          "5",
			Name:        "Letterheads",
			Category:    CategoryLetterheads,
			BasePrice:   0.35,
			Description: "Professional letterhead paper with your branding",
			ImageURL:    "/images/letterheads.jpg",
			MinQuantity: 100,
			MaxQuantity: 2000,
			CustomizationOptions: []CustomizationOption{
				{ID: "logo", Name: "Header Logo", Type: OptionLogo, Options: []string{"Upload"}, Required: true},
				{ID: "text", Name: "Business Information", Type: OptionText, Options: []string{}, Required: true},
				{ID: "color", Name: "Accent Color", Type: OptionColor, Options: []string{"Blue", "Green", "Red", "Purple"}, Required: false},
			},
		},
		{
			ID:          "6",
			Name:        "Promotional Items",
			Category:    CategoryPromotional,
			BasePrice:   5.75,
			Description: "Various promotional items with custom branding",
			ImageURL:    "/images/promotional.jpg",
			MinQuantity: 25,
			MaxQuantity: 1000,
			CustomizationOptions: []CustomizationOption{
				{ID: "item", Name: "Item Type", Type: OptionMaterial, Options: []string{"Keychains", "Magnets", "Stickers", "Mugs"}, Required: true},
				{ID: "logo", Name: "Logo", Type: OptionLogo, Options: []string{"Upload"}, Required: true},
			},
		},
	}
}
