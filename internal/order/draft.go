package order

import (
	"errors"
	"fmt"
	"sync"

	"github.com/brandforge/printshop/internal/catalog"
)

var (
	// ErrValidation marks a local precondition failure. The draft refuses
	// the transition and stays where it was; the caller re-prompts.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidState is returned when an operation is not defined for the
	// draft's current state.
	ErrInvalidState = errors.New("operation not allowed in current state")
)

type DraftState string

const (
	StateSelectingProduct DraftState = "selecting_product"
	StateCustomizing      DraftState = "customizing"
	StateReadyForShipping DraftState = "ready_for_shipping"
	StateSubmitting       DraftState = "submitting"
)

// LogoRef is an opaque handle to an uploaded logo file. At commit time it is
// replaced by a textual placeholder on the finalized item.
type LogoRef struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

// Draft is the in-progress order: one in-flight item bound to a product
// selection, the accumulated committed items, and the shipping form.
//
// The registry hands the same *Draft to every request carrying the same
// token, so each exported method takes the draft mutex. Operations remain
// individually atomic; ordering between concurrent requests is the client's
// problem.
type Draft struct {
	mu             sync.Mutex
	state          DraftState
	product        *catalog.Product
	quantity       int
	customizations map[string]string
	logo           *LogoRef
	items          []Item
	address        Address
	notes          string
}

func NewDraft() *Draft {
	return &Draft{
		state:   StateSelectingProduct,
		items:   make([]Item, 0),
		address: Address{Country: DefaultCountry},
	}
}

func (d *Draft) State() DraftState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// SelectProduct binds a fresh draft item to the product and moves to
// customizing. The quantity is seeded with the product's minimum.
func (d *Draft) SelectProduct(p *catalog.Product) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != StateSelectingProduct {
		return fmt.Errorf("%w: cannot select a product in state %s", ErrInvalidState, d.state)
	}

	d.product = p
	d.quantity = p.MinQuantity
	d.customizations = make(map[string]string)
	d.logo = nil
	d.state = StateCustomizing

	return nil
}

// SetQuantity accepts any integer. Out-of-range values stay in the field and
// block CommitItem instead of being rejected here, mirroring a form-first
// flow.
func (d *Draft) SetQuantity(quantity int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != StateCustomizing {
		return fmt.Errorf("%w: cannot set quantity in state %s", ErrInvalidState, d.state)
	}

	d.quantity = quantity
	return nil
}

// SetCustomization stores a value keyed by option id. Last write wins; the
// value is validated against the product's declared options at commit time.
func (d *Draft) SetCustomization(optionID, value string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != StateCustomizing {
		return fmt.Errorf("%w: cannot set customization in state %s", ErrInvalidState, d.state)
	}

	d.customizations[optionID] = value
	return nil
}

// SetLogo stores an opaque file handle, replacing any prior one.
func (d *Draft) SetLogo(ref LogoRef) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != StateCustomizing {
		return fmt.Errorf("%w: cannot set logo in state %s", ErrInvalidState, d.state)
	}

	d.logo = &ref
	return nil
}

// LineTotal prices the in-flight item. It is 0 outside of customizing.
func (d *Draft) LineTotal() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lineTotal()
}

func (d *Draft) lineTotal() float64 {
	if d.state != StateCustomizing || d.product == nil {
		return 0
	}
	return LineTotal(d.product, d.quantity, d.customizations)
}

// CommitItem validates the in-flight item, appends it as an immutable line
// and returns to product selection. The quantity must fall within the
// product's range and every selected value must be declared on the product.
// Required options are deliberately not enforced here.
func (d *Draft) CommitItem() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != StateCustomizing {
		return fmt.Errorf("%w: cannot commit an item in state %s", ErrInvalidState, d.state)
	}

	if d.quantity < d.product.MinQuantity {
		return fmt.Errorf("%w: quantity %d below minimum %d", ErrValidation, d.quantity, d.product.MinQuantity)
	}
	if d.quantity > d.product.MaxQuantity {
		return fmt.Errorf("%w: quantity %d above maximum %d", ErrValidation, d.quantity, d.product.MaxQuantity)
	}

	for optionID, value := range d.customizations {
		opt, ok := d.product.Option(optionID)
		if !ok {
			return fmt.Errorf("%w: unknown customization option %q", ErrValidation, optionID)
		}
		if value != "" && !opt.Allows(value) {
			return fmt.Errorf("%w: value %q not allowed for option %q", ErrValidation, value, optionID)
		}
	}

	customizations := make(map[string]string, len(d.customizations))
	for k, v := range d.customizations {
		customizations[k] = v
	}

	logoFile := ""
	if d.logo != nil {
		logoFile = "Logo: " + d.logo.Filename
	}

	item := Item{
		ProductID:      d.product.ID,
		Product:        *d.product,
		Quantity:       d.quantity,
		Customizations: customizations,
		LogoFile:       logoFile,
		UnitPrice:      d.product.BasePrice,
		TotalPrice:     LineTotal(d.product, d.quantity, d.customizations),
	}

	d.items = append(d.items, item)
	d.resetItem()
	d.state = StateSelectingProduct

	return nil
}

// Cancel discards the in-flight item without appending.
func (d *Draft) Cancel() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != StateCustomizing {
		return fmt.Errorf("%w: cannot cancel in state %s", ErrInvalidState, d.state)
	}

	d.resetItem()
	d.state = StateSelectingProduct

	return nil
}

// RemoveItem deletes a committed line by position. Remaining lines are
// unaffected.
func (d *Draft) RemoveItem(index int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != StateSelectingProduct && d.state != StateReadyForShipping {
		return fmt.Errorf("%w: cannot remove an item in state %s", ErrInvalidState, d.state)
	}
	if index < 0 || index >= len(d.items) {
		return fmt.Errorf("%w: item index %d out of range", ErrValidation, index)
	}

	d.items = append(d.items[:index], d.items[index+1:]...)
	return nil
}

// ProceedToShipping moves to the shipping form. At least one committed item
// is required.
func (d *Draft) ProceedToShipping() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != StateSelectingProduct {
		return fmt.Errorf("%w: cannot proceed to shipping in state %s", ErrInvalidState, d.state)
	}
	if len(d.items) == 0 {
		return fmt.Errorf("%w: order must contain at least one item", ErrValidation)
	}

	d.state = StateReadyForShipping
	return nil
}

// SetShippingField updates one address field by name.
func (d *Draft) SetShippingField(field, value string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != StateReadyForShipping {
		return fmt.Errorf("%w: cannot edit shipping address in state %s", ErrInvalidState, d.state)
	}

	switch field {
	case "street":
		d.address.Street = value
	case "city":
		d.address.City = value
	case "state":
		d.address.State = value
	case "zip_code":
		d.address.ZipCode = value
	case "country":
		d.address.Country = value
	default:
		return fmt.Errorf("%w: unknown shipping field %q", ErrValidation, field)
	}

	return nil
}

func (d *Draft) SetNotes(notes string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != StateReadyForShipping {
		return fmt.Errorf("%w: cannot set notes in state %s", ErrInvalidState, d.state)
	}

	d.notes = notes
	return nil
}

// Back returns from the shipping form to product selection. Committed items,
// address and notes are kept.
func (d *Draft) Back() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != StateReadyForShipping {
		return fmt.Errorf("%w: cannot go back in state %s", ErrInvalidState, d.state)
	}

	d.state = StateSelectingProduct
	return nil
}

// BeginSubmit checks the submission preconditions and enters submitting.
// On a validation failure the draft stays in ready_for_shipping and nothing
// is written.
func (d *Draft) BeginSubmit() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != StateReadyForShipping {
		return fmt.Errorf("%w: cannot submit in state %s", ErrInvalidState, d.state)
	}
	if len(d.items) == 0 {
		return fmt.Errorf("%w: order must contain at least one item", ErrValidation)
	}
	if d.address.Street == "" || d.address.City == "" || d.address.State == "" || d.address.ZipCode == "" {
		return fmt.Errorf("%w: street, city, state and zip code are required", ErrValidation)
	}

	d.state = StateSubmitting
	return nil
}

// BuildOrder packages the accumulated items into the finalized record sent
// to the order store. Id and timestamps are assigned by the store.
func (d *Draft) BuildOrder(userID string) *Order {
	d.mu.Lock()
	defer d.mu.Unlock()

	items := make([]Item, len(d.items))
	copy(items, d.items)

	total := 0.0
	for _, item := range items {
		total += item.TotalPrice
	}

	address := d.address
	if address.Country == "" {
		address.Country = DefaultCountry
	}

	return &Order{
		UserID:          userID,
		Items:           items,
		TotalAmount:     total,
		Status:          StatusPending,
		ShippingAddress: address,
		Notes:           d.notes,
	}
}

// CompleteSubmit clears the accumulated items, address and notes after a
// successful store write and returns to product selection.
func (d *Draft) CompleteSubmit() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.items = make([]Item, 0)
	d.address = Address{Country: DefaultCountry}
	d.notes = ""
	d.resetItem()
	d.state = StateSelectingProduct
}

// FailSubmit returns to the shipping form after a rejected store write.
// Items, address and notes are preserved so the user can retry without
// re-entering data.
func (d *Draft) FailSubmit() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state == StateSubmitting {
		d.state = StateReadyForShipping
	}
}

// TotalAmount is the sum of the committed items' totals.
func (d *Draft) TotalAmount() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.totalAmount()
}

func (d *Draft) totalAmount() float64 {
	total := 0.0
	for _, item := range d.items {
		total += item.TotalPrice
	}
	return total
}

func (d *Draft) Items() []Item {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.copyItems()
}

func (d *Draft) copyItems() []Item {
	items := make([]Item, len(d.items))
	copy(items, d.items)
	return items
}

func (d *Draft) resetItem() {
	d.product = nil
	d.quantity = 0
	d.customizations = nil
	d.logo = nil
}

// DraftView is a read-only snapshot of the draft for presentation.
type DraftView struct {
	State           DraftState        `json:"state"`
	Product         *catalog.Product  `json:"product,omitempty"`
	Quantity        int               `json:"quantity,omitempty"`
	Customizations  map[string]string `json:"customizations,omitempty"`
	Logo            *LogoRef          `json:"logo,omitempty"`
	LineTotal       float64           `json:"line_total"`
	Items           []Item            `json:"items"`
	TotalAmount     float64           `json:"total_amount"`
	ShippingAddress Address           `json:"shipping_address"`
	Notes           string            `json:"notes,omitempty"`
}

func (d *Draft) View() DraftView {
	d.mu.Lock()
	defer d.mu.Unlock()

	view := DraftView{
		State:           d.state,
		Product:         d.product,
		Quantity:        d.quantity,
		LineTotal:       d.lineTotal(),
		Items:           d.copyItems(),
		TotalAmount:     d.totalAmount(),
		ShippingAddress: d.address,
		Notes:           d.notes,
	}

	if d.customizations != nil {
		view.Customizations = make(map[string]string, len(d.customizations))
		for k, v := range d.customizations {
			view.Customizations[k] = v
		}
	}
	if d.logo != nil {
		logo := *d.logo
		view.Logo = &logo
	}

	return view
}
