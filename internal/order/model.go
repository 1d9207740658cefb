package order

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/brandforge/printshop/internal/catalog"
)

type Status string

const (
	StatusPending      Status = "pending"
	StatusConfirmed    Status = "confirmed"
	StatusInProduction Status = "in-production"
	StatusShipped      Status = "shipped"
	StatusDelivered    Status = "delivered"
	StatusCancelled    Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

// Cancellation is allowed from any state before delivery; delivered and
// cancelled are terminal.
var allowedTransitions = map[Status]map[Status]bool{
	StatusPending: {
		StatusConfirmed: true,
		StatusCancelled: true,
	},
	StatusConfirmed: {
		StatusInProduction: true,
		StatusCancelled:    true,
	},
	StatusInProduction: {
		StatusShipped:   true,
		StatusCancelled: true,
	},
	StatusShipped: {
		StatusDelivered: true,
		StatusCancelled: true,
	},
	StatusDelivered: {},
	StatusCancelled: {},
}

// Address is the shipping destination of a finalized order. Country
// defaults to "US" when left empty.
type Address struct {
	Street  string `json:"street" bson:"street"`
	City    string `json:"city" bson:"city"`
	State   string `json:"state" bson:"state"`
	ZipCode string `json:"zip_code" bson:"zip_code"`
	Country string `json:"country" bson:"country"`
}

// DefaultCountry is applied when no country is supplied.
const DefaultCountry = "US"

// Item is a committed order line. Product is an immutable snapshot taken at
// commit time; a finalized order never references the live catalog entry.
type Item struct {
	ProductID      string            `json:"product_id" bson:"product_id"`
	Product        catalog.Product   `json:"product" bson:"product"`
	Quantity       int               `json:"quantity" bson:"quantity"`
	Customizations map[string]string `json:"customizations" bson:"customizations"`
	LogoFile       string            `json:"logo_file,omitempty" bson:"logo_file,omitempty"`
	UnitPrice      float64           `json:"unit_price" bson:"unit_price"`
	TotalPrice     float64           `json:"total_price" bson:"total_price"`
}

// Order is a finalized, store-assigned record. It is created exactly once at
// submission and never mutated by the draft engine afterwards; status
// transitions happen through the fulfillment path.
type Order struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID          string             `json:"user_id" bson:"user_id"`
	Items           []Item             `json:"items" bson:"items"`
	TotalAmount     float64            `json:"total_amount" bson:"total_amount"`
	Status          Status             `json:"status" bson:"status"`
	ShippingAddress Address            `json:"shipping_address" bson:"shipping_address"`
	Notes           string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" bson:"updated_at"`
}
