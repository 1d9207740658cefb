package catalog

// Category is the closed set of product categories in the catalog.
type Category string

const (
	CategoryPens          Category = "pens"
	CategoryBusinessCards Category = "business-cards"
	CategoryBags          Category = "bags"
	CategoryReceipts      Category = "receipts"
	CategoryLetterheads   Category = "letterheads"
	CategoryPromotional   Category = "promotional"
)

// CategoryAll is the filter value that matches every category.
const CategoryAll = "all"

func (c Category) String() string {
	return string(c)
}

// OptionType determines the input widget and validation rule for a
// customization option.
type OptionType string

const (
	OptionColor    OptionType = "color"
	OptionText     OptionType = "text"
	OptionLogo     OptionType = "logo"
	OptionSize     OptionType = "size"
	OptionMaterial OptionType = "material"
)

// CustomizationOption is a configurable attribute of a product. Options is
// the set of allowed values; it is empty for free-text and logo types.
type CustomizationOption struct {
	ID             string     `json:"id" bson:"id"`
	Name           string     `json:"name" bson:"name"`
	Type           OptionType `json:"type" bson:"type"`
	Options        []string   `json:"options" bson:"options"`
	AdditionalCost float64    `json:"additional_cost,omitempty" bson:"additional_cost,omitempty"`
	Required       bool       `json:"required" bson:"required"`
}

// Allows reports whether value is permitted for this option. An option with
// no declared values accepts any non-empty string.
func (o *CustomizationOption) Allows(value string) bool {
	if len(o.Options) == 0 {
		return true
	}
	for _, v := range o.Options {
		if v == value {
			return true
		}
	}
	return false
}

// Product is immutable once loaded from the catalog. Draft items reference a
// product by id and embed a snapshot of it at commit time.
type Product struct {
	ID                   string                `json:"id" bson:"_id"`
	Name                 string                `json:"name" bson:"name"`
	Category             Category              `json:"category" bson:"category"`
	BasePrice            float64               `json:"base_price" bson:"base_price"`
	Description          string                `json:"description" bson:"description"`
	ImageURL             string                `json:"image_url,omitempty" bson:"image_url,omitempty"`
	MinQuantity          int                   `json:"min_quantity" bson:"min_quantity"`
	MaxQuantity          int                   `json:"max_quantity" bson:"max_quantity"`
	CustomizationOptions []CustomizationOption `json:"customization_options" bson:"customization_options"`
}

// Option returns the customization option with the given id, if declared.
func (p *Product) Option(id string) (*CustomizationOption, bool) {
	for i := range p.CustomizationOptions {
		if p.CustomizationOptions[i].ID == id {
			return &p.CustomizationOptions[i], true
		}
	}
	return nil, false
}
