package reference

import (
	"github.com/angelmondragon/windowquote-backend/internal/pricing"
	"github.com/angelmondragon/windowquote-backend/pkg/enums"
	"github.com/google/uuid"
)

// FrameColor is a priced frame color with its display swatch.
type FrameColor struct {
	pricing.Option
	HexColor *string `json:"hex_color,omitempty"`
}

// ImageOption is a priced option rendered with a picture (glass types, grid styles).
type ImageOption struct {
	pricing.Option
	ImagePath *string `json:"image_path,omitempty"`
}

// GridSize is an unpriced grid bar width.
type GridSize struct {
	ID   uuid.UUID `json:"id"`
	Size string    `json:"size"`
}

// ProductConfig is a window or door product type offered at the type step.
type ProductConfig struct {
	ID            uuid.UUID             `json:"id"`
	Name          string                `json:"name"`
	Category      enums.ProductCategory `json:"category"`
	OperationType *string               `json:"operation_type,omitempty"`
	LiteCount     int                   `json:"lite_count"`
	ImagePath     string                `json:"image_path"`
}

// Catalog is the full set of active reference data a configurator session reads from.
type Catalog struct {
	Brands         []pricing.Option `json:"brands"`
	FrameTypes     []pricing.Option `json:"frame_types"`
	FrameColors    []FrameColor     `json:"frame_colors"`
	GlassTypes     []ImageOption    `json:"glass_types"`
	GridStyles     []ImageOption    `json:"grid_styles"`
	GridSizes      []GridSize       `json:"grid_sizes"`
	ProductConfigs []ProductConfig  `json:"product_configs"`
}

// Factors projects the catalog onto the pricing engine inputs.
func (c Catalog) Factors() pricing.Factors {
	return pricing.Factors{
		Brands:      c.Brands,
		FrameTypes:  c.FrameTypes,
		FrameColors: colorOptions(c.FrameColors),
		GlassTypes:  imageOptions(c.GlassTypes),
		GridStyles:  imageOptions(c.GridStyles),
	}
}

// ProductConfigsFor returns the product types of one category, preserving catalog order.
func (c Catalog) ProductConfigsFor(category enums.ProductCategory) []ProductConfig {
	out := make([]ProductConfig, 0, len(c.ProductConfigs))
	for _, pc := range c.ProductConfigs {
		if pc.Category == category {
			out = append(out, pc)
		}
	}
	return out
}

func (c Catalog) ProductConfig(id uuid.UUID) (ProductConfig, bool) {
	for _, pc := range c.ProductConfigs {
		if pc.ID == id {
			return pc, true
		}
	}
	return ProductConfig{}, false
}

func (c Catalog) Brand(id uuid.UUID) (pricing.Option, bool) {
	return pricing.Find(c.Brands, &id)
}

func (c Catalog) FrameType(id uuid.UUID) (pricing.Option, bool) {
	return pricing.Find(c.FrameTypes, &id)
}

func (c Catalog) FrameColor(id uuid.UUID) (FrameColor, bool) {
	for _, fc := range c.FrameColors {
		if fc.ID == id {
			return fc, true
		}
	}
	return FrameColor{}, false
}

func (c Catalog) GlassType(id uuid.UUID) (ImageOption, bool) {
	return findImage(c.GlassTypes, id)
}

func (c Catalog) GridStyle(id uuid.UUID) (ImageOption, bool) {
	return findImage(c.GridStyles, id)
}

func (c Catalog) GridSize(id uuid.UUID) (GridSize, bool) {
	for _, gs := range c.GridSizes {
		if gs.ID == id {
			return gs, true
		}
	}
	return GridSize{}, false
}

func findImage(opts []ImageOption, id uuid.UUID) (ImageOption, bool) {
	for _, opt := range opts {
		if opt.ID == id {
			return opt, true
		}
	}
	return ImageOption{}, false
}

func colorOptions(colors []FrameColor) []pricing.Option {
	out := make([]pricing.Option, 0, len(colors))
	for _, c := range colors {
		out = append(out, c.Option)
	}
	return out
}

func imageOptions(opts []ImageOption) []pricing.Option {
	out := make([]pricing.Option, 0, len(opts))
	for _, o := range opts {
		out = append(out, o.Option)
	}
	return out
}
