package models

import (
	"github.com/angelmondragon/windowquote-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Brand, FrameType, FrameColor, GlassType and GridStyle carry the additive pricing factors.

type Brand struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name      string          `gorm:"column:name;not null;uniqueIndex" json:"name"`
	Factor    decimal.Decimal `gorm:"column:factor;type:numeric(8,4);not null" json:"factor"`
	IsActive  bool            `gorm:"column:is_active;not null" json:"is_active"`
	SortOrder int             `gorm:"column:sort_order;not null" json:"sort_order"`
}

type FrameType struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name        string          `gorm:"column:name;not null;uniqueIndex" json:"name"`
	Description *string         `gorm:"column:description" json:"description"`
	Factor      decimal.Decimal `gorm:"column:factor;type:numeric(8,4);not null" json:"factor"`
	IsActive    bool            `gorm:"column:is_active;not null" json:"is_active"`
	SortOrder   int             `gorm:"column:sort_order;not null" json:"sort_order"`
}

type FrameColor struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name      string          `gorm:"column:name;not null;uniqueIndex" json:"name"`
	HexColor  *string         `gorm:"column:hex_color" json:"hex_color"`
	Factor    decimal.Decimal `gorm:"column:factor;type:numeric(8,4);not null" json:"factor"`
	IsActive  bool            `gorm:"column:is_active;not null" json:"is_active"`
	SortOrder int             `gorm:"column:sort_order;not null" json:"sort_order"`
}

type GlassType struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name        string          `gorm:"column:name;not null;uniqueIndex" json:"name"`
	Description *string         `gorm:"column:description" json:"description"`
	Factor      decimal.Decimal `gorm:"column:factor;type:numeric(8,4);not null" json:"factor"`
	ImagePath   *string         `gorm:"column:image_path" json:"image_path"`
	IsActive    bool            `gorm:"column:is_active;not null" json:"is_active"`
	SortOrder   int             `gorm:"column:sort_order;not null" json:"sort_order"`
}

type GridStyle struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name      string          `gorm:"column:name;not null;uniqueIndex" json:"name"`
	Factor    decimal.Decimal `gorm:"column:factor;type:numeric(8,4);not null" json:"factor"`
	ImagePath *string         `gorm:"column:image_path" json:"image_path"`
	IsActive  bool            `gorm:"column:is_active;not null" json:"is_active"`
	SortOrder int             `gorm:"column:sort_order;not null" json:"sort_order"`
}

// GridSize is a bar width label; it does not affect price.
type GridSize struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Size      string    `gorm:"column:size;not null;uniqueIndex" json:"size"`
	IsActive  bool      `gorm:"column:is_active;not null" json:"is_active"`
	SortOrder int       `gorm:"column:sort_order;not null" json:"sort_order"`
}

// ProductConfig is a selectable window or door type with its default operation layout.
type ProductConfig struct {
	ID            uuid.UUID             `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name          string                `gorm:"column:name;not null" json:"name"`
	Category      enums.ProductCategory `gorm:"column:category;type:text;not null" json:"category"`
	OperationType *string               `gorm:"column:operation_type" json:"operation_type"`
	LiteCount     int                   `gorm:"column:lite_count;not null" json:"lite_count"`
	Description   *string               `gorm:"column:description" json:"description"`
	ImagePath     string                `gorm:"column:image_path;not null" json:"image_path"`
	IsActive      bool                  `gorm:"column:is_active;not null" json:"is_active"`
	SortOrder     int                   `gorm:"column:sort_order;not null" json:"sort_order"`
}
