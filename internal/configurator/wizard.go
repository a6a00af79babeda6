package configurator

import (
	"fmt"
	"strings"

	"github.com/angelmondragon/windowquote-backend/internal/pricing"
	"github.com/angelmondragon/windowquote-backend/internal/reference"
	"github.com/angelmondragon/windowquote-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DefaultWidth  = 36
	DefaultHeight = 48
)

// WindowConfig is the selection state of one window or door, either as a draft or a cart entry.
type WindowConfig struct {
	Location          string                `json:"location"`
	Category          enums.ProductCategory `json:"category,omitempty"`
	ProductConfigID   *uuid.UUID            `json:"product_config_id,omitempty"`
	ProductConfigName string                `json:"product_config_name,omitempty"`
	OperationType     string                `json:"operation_type,omitempty"`
	Width             int                   `json:"width"`
	Height            int                   `json:"height"`
	BrandID           *uuid.UUID            `json:"brand_id,omitempty"`
	BrandName         string                `json:"brand_name,omitempty"`
	FrameTypeID       *uuid.UUID            `json:"frame_type_id,omitempty"`
	FrameTypeName     string                `json:"frame_type_name,omitempty"`
	FrameColorID      *uuid.UUID            `json:"frame_color_id,omitempty"`
	FrameColorName    string                `json:"frame_color_name,omitempty"`
	FrameColorHex     string                `json:"frame_color_hex,omitempty"`
	GlassTypeID       *uuid.UUID            `json:"glass_type_id,omitempty"`
	GlassTypeName     string                `json:"glass_type_name,omitempty"`
	GridStyleID       *uuid.UUID            `json:"grid_style_id,omitempty"`
	GridStyleName     string                `json:"grid_style_name,omitempty"`
	GridSizeID        *uuid.UUID            `json:"grid_size_id,omitempty"`
	GridSizeName      string                `json:"grid_size_name,omitempty"`
	NoGrid            bool                  `json:"no_grid"`
}

// DefaultConfig returns an empty draft with the stock opening size.
func DefaultConfig() WindowConfig {
	return WindowConfig{Width: DefaultWidth, Height: DefaultHeight}
}

// Selection projects the config onto the pricing engine input.
func (c WindowConfig) Selection() pricing.Selection {
	return pricing.Selection{
		Width:        c.Width,
		Height:       c.Height,
		BrandID:      c.BrandID,
		FrameTypeID:  c.FrameTypeID,
		FrameColorID: c.FrameColorID,
		GlassTypeID:  c.GlassTypeID,
		GridStyleID:  c.GridStyleID,
		NoGrid:       c.NoGrid,
	}
}

func (c WindowConfig) clearGrid() WindowConfig {
	c.GridStyleID = nil
	c.GridStyleName = ""
	c.GridSizeID = nil
	c.GridSizeName = ""
	return c
}

// CartItem is a committed configuration with its price snapshot.
type CartItem struct {
	ID         uuid.UUID `json:"id"`
	CustomerID uuid.UUID `json:"customer_id"`
	WindowConfig
	CalculatedPrice decimal.Decimal `json:"calculated_price"`
}

// Snapshot is the serializable state of a wizard session.
type Snapshot struct {
	CustomerID uuid.UUID         `json:"customer_id"`
	Step       Step              `json:"step"`
	Draft      WindowConfig      `json:"draft"`
	Cart       []CartItem        `json:"cart"`
	Catalog    reference.Catalog `json:"catalog"`
}

// Wizard walks one customer's draft through the configuration steps and collects committed items.
// It performs no I/O; refused transitions leave the state unchanged.
type Wizard struct {
	customerID uuid.UUID
	step       Step
	draft      WindowConfig
	cart       []CartItem
	catalog    reference.Catalog
	newID      func() uuid.UUID
}

// New starts a wizard at the first step with a default draft and an empty cart.
func New(customerID uuid.UUID, catalog reference.Catalog) *Wizard {
	return &Wizard{
		customerID: customerID,
		step:       StepCategory,
		draft:      DefaultConfig(),
		catalog:    catalog,
		newID:      uuid.New,
	}
}

// Restore rebuilds a wizard from a snapshot. An unknown step resets to the first step.
func Restore(s Snapshot) *Wizard {
	w := New(s.CustomerID, s.Catalog)
	if s.Step.IsValid() {
		w.step = s.Step
	}
	w.draft = s.Draft
	w.cart = append([]CartItem(nil), s.Cart...)
	return w
}

// Snapshot captures the current state.
func (w *Wizard) Snapshot() Snapshot {
	return Snapshot{
		CustomerID: w.customerID,
		Step:       w.step,
		Draft:      w.draft,
		Cart:       w.Cart(),
		Catalog:    w.catalog,
	}
}

func (w *Wizard) CustomerID() uuid.UUID { return w.customerID }

func (w *Wizard) Step() Step { return w.step }

func (w *Wizard) Draft() WindowConfig { return w.draft }

func (w *Wizard) Catalog() reference.Catalog { return w.catalog }

// Cart returns a copy of the committed items in order.
func (w *Wizard) Cart() []CartItem {
	return append([]CartItem(nil), w.cart...)
}

// ProductTypes lists the product configs selectable for the drafted category.
func (w *Wizard) ProductTypes() []reference.ProductConfig {
	if w.draft.Category == "" {
		return nil
	}
	return w.catalog.ProductConfigsFor(w.draft.Category)
}

// PricePreview prices the current draft without committing it.
func (w *Wizard) PricePreview() decimal.Decimal {
	return pricing.LinePrice(w.draft.Selection(), w.catalog.Factors())
}

// CanAdvance reports whether the draft satisfies the gate of the given step.
func (w *Wizard) CanAdvance(step Step) bool {
	d := w.draft
	switch step {
	case StepCategory:
		return d.Category != ""
	case StepType:
		return d.ProductConfigID != nil
	case StepOperation:
		return d.OperationType != ""
	case StepSize:
		return d.Width > 0 && d.Height > 0
	case StepBrand:
		return d.BrandID != nil
	case StepColor:
		return d.FrameTypeID != nil && d.FrameColorID != nil
	case StepGlass:
		return d.GlassTypeID != nil
	case StepGrids:
		return d.NoGrid || (d.GridStyleID != nil && d.GridSizeID != nil)
	case StepReview:
		return true
	}
	return false
}

// Advance moves one step forward when the current step's gate passes.
func (w *Wizard) Advance() bool {
	if w.step == StepReview || !w.CanAdvance(w.step) {
		return false
	}
	w.step = w.step.next()
	return true
}

// Retreat moves one step back; it is refused on the first step.
func (w *Wizard) Retreat() bool {
	if w.step == StepCategory {
		return false
	}
	w.step = w.step.prev()
	return true
}

// JumpTo revisits a step at or before the current one. Forward jumps are ignored.
func (w *Wizard) JumpTo(step Step) bool {
	idx := step.Index()
	if idx < 0 || idx > w.step.Index() {
		return false
	}
	w.step = step
	return true
}

// SelectOption merges a choice into the draft when it belongs to the current step.
// Choices naming options missing from the catalog are refused.
func (w *Wizard) SelectOption(step Step, choice Choice) bool {
	if step != w.step || choice.Kind.Step() != step {
		return false
	}
	next, ok := w.apply(choice)
	if !ok {
		return false
	}
	w.draft = next
	if choice.Kind.AutoAdvances() && w.CanAdvance(w.step) {
		w.step = w.step.next()
	}
	return true
}

func (w *Wizard) apply(choice Choice) (WindowConfig, bool) {
	d := w.draft
	switch choice.Kind {
	case ChoiceCategory:
		if !choice.Category.IsValid() {
			return d, false
		}
		if d.Category != choice.Category {
			d.ProductConfigID = nil
			d.ProductConfigName = ""
		}
		d.Category = choice.Category
	case ChoiceProductType:
		pc, ok := lookup(choice.OptionID, w.catalog.ProductConfig)
		if !ok || pc.Category != d.Category {
			return d, false
		}
		d.ProductConfigID = ptr(pc.ID)
		d.ProductConfigName = pc.Name
		if pc.OperationType != nil {
			d.OperationType = *pc.OperationType
		}
	case ChoiceOperation:
		if !choice.OperationType.IsValid() {
			return d, false
		}
		d.OperationType = choice.OperationType.String()
		if choice.Location != nil {
			d.Location = *choice.Location
		}
	case ChoiceLocation:
		if choice.Location == nil {
			return d, false
		}
		d.Location = *choice.Location
	case ChoiceSize:
		d.Width = choice.Width
		d.Height = choice.Height
	case ChoiceBrand:
		opt, ok := lookup(choice.OptionID, w.catalog.Brand)
		if !ok {
			return d, false
		}
		d.BrandID = ptr(opt.ID)
		d.BrandName = opt.Name
	case ChoiceFrameType:
		opt, ok := lookup(choice.OptionID, w.catalog.FrameType)
		if !ok {
			return d, false
		}
		if d.FrameTypeID == nil || *d.FrameTypeID != opt.ID {
			d.FrameColorID = nil
			d.FrameColorName = ""
			d.FrameColorHex = ""
		}
		d.FrameTypeID = ptr(opt.ID)
		d.FrameTypeName = opt.Name
	case ChoiceFrameColor:
		if d.FrameTypeID == nil {
			return d, false
		}
		color, ok := lookup(choice.OptionID, w.catalog.FrameColor)
		if !ok {
			return d, false
		}
		d.FrameColorID = ptr(color.ID)
		d.FrameColorName = color.Name
		d.FrameColorHex = ""
		if color.HexColor != nil {
			d.FrameColorHex = *color.HexColor
		}
	case ChoiceGlass:
		opt, ok := lookup(choice.OptionID, w.catalog.GlassType)
		if !ok {
			return d, false
		}
		d.GlassTypeID = ptr(opt.ID)
		d.GlassTypeName = opt.Name
	case ChoiceGridStyle:
		opt, ok := lookup(choice.OptionID, w.catalog.GridStyle)
		if !ok {
			return d, false
		}
		d.GridStyleID = ptr(opt.ID)
		d.GridStyleName = opt.Name
		d.NoGrid = false
	case ChoiceGridSize:
		if d.GridStyleID == nil || d.NoGrid {
			return d, false
		}
		size, ok := lookup(choice.OptionID, w.catalog.GridSize)
		if !ok {
			return d, false
		}
		d.GridSizeID = ptr(size.ID)
		d.GridSizeName = size.Size
	case ChoiceNoGrid:
		d = d.clearGrid()
		d.NoGrid = true
	default:
		return d, false
	}
	return d, true
}

// CommitToCart prices the draft, appends it to the cart and starts a fresh draft.
// It is only accepted on the review step.
func (w *Wizard) CommitToCart() (CartItem, bool) {
	if w.step != StepReview || w.customerID == uuid.Nil {
		return CartItem{}, false
	}
	cfg := w.draft
	if cfg.NoGrid {
		cfg = cfg.clearGrid()
	}
	if strings.TrimSpace(cfg.Location) == "" {
		cfg.Location = fmt.Sprintf("Window %d", len(w.cart)+1)
	}
	if cfg.Category == "" {
		cfg.Category = enums.ProductCategoryWindow
	}
	item := CartItem{
		ID:              w.newID(),
		CustomerID:      w.customerID,
		WindowConfig:    cfg,
		CalculatedPrice: pricing.LinePrice(cfg.Selection(), w.catalog.Factors()),
	}
	w.cart = append(w.cart, item)
	w.ResetDraft()
	return item, true
}

// RemoveFromCart drops the matching entry. Unknown ids are ignored.
func (w *Wizard) RemoveFromCart(id uuid.UUID) bool {
	for i, item := range w.cart {
		if item.ID == id {
			w.cart = append(w.cart[:i:i], w.cart[i+1:]...)
			return true
		}
	}
	return false
}

// EditCartItem moves a committed entry back into the draft and restarts the flow.
func (w *Wizard) EditCartItem(id uuid.UUID) bool {
	for _, item := range w.cart {
		if item.ID == id {
			w.draft = item.WindowConfig
			w.step = StepCategory
			return w.RemoveFromCart(id)
		}
	}
	return false
}

// ClearCart empties the cart and leaves the draft alone.
func (w *Wizard) ClearCart() {
	w.cart = nil
}

// ResetDraft abandons the in-progress item.
func (w *Wizard) ResetDraft() {
	w.draft = DefaultConfig()
	w.step = StepCategory
}

func lookup[T any](id *uuid.UUID, find func(uuid.UUID) (T, bool)) (T, bool) {
	if id == nil {
		var zero T
		return zero, false
	}
	return find(*id)
}

func ptr[T any](v T) *T {
	return &v
}
