package windows

import (
	"time"

	"github.com/angelmondragon/windowquote-backend/internal/pricing"
	"github.com/angelmondragon/windowquote-backend/pkg/db/models"
	"github.com/angelmondragon/windowquote-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NewWindow is one committed configuration ready to persist.
type NewWindow struct {
	Location        string
	Category        enums.ProductCategory
	ProductConfigID *uuid.UUID
	OperationType   *string
	BrandID         *uuid.UUID
	FrameTypeID     *uuid.UUID
	FrameColorID    *uuid.UUID
	GlassTypeID     *uuid.UUID
	GridStyleID     *uuid.UUID
	GridSizeID      *uuid.UUID
	Width           int
	Height          int
	NoGrid          bool
	CalculatedPrice decimal.Decimal
}

// UpdateInput patches a persisted line. Nil fields are left untouched and the
// calculated price is never recomputed.
type UpdateInput struct {
	Location            *string          `json:"location" validate:"omitempty,min=1,max=120"`
	ProductConfigID     *uuid.UUID       `json:"product_config_id"`
	OperationType       *string          `json:"operation_type" validate:"omitempty,operation"`
	BrandID             *uuid.UUID       `json:"brand_id"`
	FrameTypeID         *uuid.UUID       `json:"frame_type_id"`
	FrameColorID        *uuid.UUID       `json:"frame_color_id"`
	GlassTypeID         *uuid.UUID       `json:"glass_type_id"`
	GridStyleID         *uuid.UUID       `json:"grid_style_id"`
	GridSizeID          *uuid.UUID       `json:"grid_size_id"`
	NoGrid              *bool            `json:"no_grid"`
	Width               *int             `json:"width" validate:"omitempty,min=12,max=144"`
	Height              *int             `json:"height" validate:"omitempty,min=12,max=144"`
	ManualPrice         *decimal.Decimal `json:"manual_price" validate:"omitempty,gte=0"`
	ClearManualPrice    bool             `json:"clear_manual_price"`
	SpecialInstructions *string          `json:"special_instructions" validate:"omitempty,max=4000"`
	SortOrder           *int             `json:"sort_order" validate:"omitempty,min=1"`
}

// ReorderInput lists a customer's window ids in their new display order.
type ReorderInput struct {
	WindowIDs []uuid.UUID `json:"window_ids" validate:"required,min=1"`
}

// WindowDTO is the transport shape of a line item, with display names resolved when loaded.
type WindowDTO struct {
	ID                  uuid.UUID             `json:"id"`
	CustomerID          uuid.UUID             `json:"customer_id"`
	Location            string                `json:"location"`
	Category            enums.ProductCategory `json:"category"`
	ProductConfigID     *uuid.UUID            `json:"product_config_id,omitempty"`
	ProductConfigName   *string               `json:"product_config_name,omitempty"`
	OperationType       *string               `json:"operation_type,omitempty"`
	BrandID             *uuid.UUID            `json:"brand_id,omitempty"`
	BrandName           *string               `json:"brand_name,omitempty"`
	FrameTypeID         *uuid.UUID            `json:"frame_type_id,omitempty"`
	FrameTypeName       *string               `json:"frame_type_name,omitempty"`
	FrameColorID        *uuid.UUID            `json:"frame_color_id,omitempty"`
	FrameColorName      *string               `json:"frame_color_name,omitempty"`
	FrameColorHex       *string               `json:"frame_color_hex,omitempty"`
	GlassTypeID         *uuid.UUID            `json:"glass_type_id,omitempty"`
	GlassTypeName       *string               `json:"glass_type_name,omitempty"`
	GridStyleID         *uuid.UUID            `json:"grid_style_id,omitempty"`
	GridStyleName       *string               `json:"grid_style_name,omitempty"`
	GridSizeID          *uuid.UUID            `json:"grid_size_id,omitempty"`
	GridSize            *string               `json:"grid_size,omitempty"`
	Width               int                   `json:"width"`
	Height              int                   `json:"height"`
	NoGrid              bool                  `json:"no_grid"`
	IsDoor              bool                  `json:"is_door"`
	CalculatedPrice     *decimal.Decimal      `json:"calculated_price,omitempty"`
	ManualPrice         *decimal.Decimal      `json:"manual_price,omitempty"`
	LineAmount          decimal.Decimal       `json:"line_amount"`
	SpecialInstructions *string               `json:"special_instructions,omitempty"`
	SortOrder           int                   `json:"sort_order"`
	CreatedAt           time.Time             `json:"created_at"`
}

func (n NewWindow) toModel(customerID uuid.UUID, sortOrder int) *models.Window {
	category := n.Category
	if category == "" {
		category = enums.ProductCategoryWindow
	}
	price := n.CalculatedPrice
	w := &models.Window{
		CustomerID:      customerID,
		Location:        n.Location,
		Category:        category,
		ProductConfigID: n.ProductConfigID,
		OperationType:   n.OperationType,
		BrandID:         n.BrandID,
		FrameTypeID:     n.FrameTypeID,
		FrameColorID:    n.FrameColorID,
		GlassTypeID:     n.GlassTypeID,
		GridStyleID:     n.GridStyleID,
		GridSizeID:      n.GridSizeID,
		Width:           n.Width,
		Height:          n.Height,
		NoGrid:          n.NoGrid,
		IsDoor:          category == enums.ProductCategoryDoor,
		CalculatedPrice: &price,
		SortOrder:       sortOrder,
	}
	if w.NoGrid {
		w.GridStyleID = nil
		w.GridSizeID = nil
	}
	return w
}

// Line projects the window onto the aggregation input.
func Line(w models.Window) pricing.Line {
	return pricing.Line{CalculatedPrice: w.CalculatedPrice, ManualPrice: w.ManualPrice}
}

func FromModel(w *models.Window) *WindowDTO {
	if w == nil {
		return nil
	}
	dto := &WindowDTO{
		ID:                  w.ID,
		CustomerID:          w.CustomerID,
		Location:            w.Location,
		Category:            w.Category,
		ProductConfigID:     w.ProductConfigID,
		OperationType:       w.OperationType,
		BrandID:             w.BrandID,
		FrameTypeID:         w.FrameTypeID,
		FrameColorID:        w.FrameColorID,
		GlassTypeID:         w.GlassTypeID,
		GridStyleID:         w.GridStyleID,
		GridSizeID:          w.GridSizeID,
		Width:               w.Width,
		Height:              w.Height,
		NoGrid:              w.NoGrid,
		IsDoor:              w.IsDoor,
		CalculatedPrice:     w.CalculatedPrice,
		ManualPrice:         w.ManualPrice,
		LineAmount:          Line(*w).Amount(),
		SpecialInstructions: w.SpecialInstructions,
		SortOrder:           w.SortOrder,
		CreatedAt:           w.CreatedAt,
	}
	if w.ProductConfig != nil {
		dto.ProductConfigName = &w.ProductConfig.Name
	}
	if w.Brand != nil {
		dto.BrandName = &w.Brand.Name
	}
	if w.FrameType != nil {
		dto.FrameTypeName = &w.FrameType.Name
	}
	if w.FrameColor != nil {
		dto.FrameColorName = &w.FrameColor.Name
		dto.FrameColorHex = w.FrameColor.HexColor
	}
	if w.GlassType != nil {
		dto.GlassTypeName = &w.GlassType.Name
	}
	if w.GridStyle != nil {
		dto.GridStyleName = &w.GridStyle.Name
	}
	if w.GridSize != nil {
		dto.GridSize = &w.GridSize.Size
	}
	return dto
}

func FromModels(rows []models.Window) []WindowDTO {
	out := make([]WindowDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
