package models

import (
	"time"

	"github.com/angelmondragon/windowquote-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Window is a persisted line item. CalculatedPrice is the snapshot taken when the item was committed.
type Window struct {
	ID                  uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	CustomerID          uuid.UUID             `gorm:"column:customer_id;type:uuid;not null;index"`
	Location            string                `gorm:"column:location;not null"`
	Category            enums.ProductCategory `gorm:"column:category;type:text;not null"`
	ProductConfigID     *uuid.UUID            `gorm:"column:product_config_id;type:uuid"`
	OperationType       *string               `gorm:"column:operation_type"`
	BrandID             *uuid.UUID            `gorm:"column:brand_id;type:uuid"`
	FrameTypeID         *uuid.UUID            `gorm:"column:frame_type_id;type:uuid"`
	FrameColorID        *uuid.UUID            `gorm:"column:frame_color_id;type:uuid"`
	GlassTypeID         *uuid.UUID            `gorm:"column:glass_type_id;type:uuid"`
	GridStyleID         *uuid.UUID            `gorm:"column:grid_style_id;type:uuid"`
	GridSizeID          *uuid.UUID            `gorm:"column:grid_size_id;type:uuid"`
	Width               int                   `gorm:"column:width;not null"`
	Height              int                   `gorm:"column:height;not null"`
	NoGrid              bool                  `gorm:"column:no_grid;not null"`
	IsDoor              bool                  `gorm:"column:is_door;not null"`
	CalculatedPrice     *decimal.Decimal      `gorm:"column:calculated_price;type:numeric(10,2)"`
	ManualPrice         *decimal.Decimal      `gorm:"column:manual_price;type:numeric(10,2)"`
	SpecialInstructions *string               `gorm:"column:special_instructions"`
	SortOrder           int                   `gorm:"column:sort_order;not null"`
	ProductConfig       *ProductConfig        `gorm:"foreignKey:ProductConfigID"`
	Brand               *Brand                `gorm:"foreignKey:BrandID"`
	FrameType           *FrameType            `gorm:"foreignKey:FrameTypeID"`
	FrameColor          *FrameColor           `gorm:"foreignKey:FrameColorID"`
	GlassType           *GlassType            `gorm:"foreignKey:GlassTypeID"`
	GridStyle           *GridStyle            `gorm:"foreignKey:GridStyleID"`
	GridSize            *GridSize             `gorm:"foreignKey:GridSizeID"`
	CreatedAt           time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
