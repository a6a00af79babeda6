package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	neutralFactor = decimal.NewFromInt(1)
	half          = decimal.NewFromFloat(0.5)
)

// Option is a selectable reference value that contributes an additive factor to a line price.
type Option struct {
	ID     uuid.UUID       `json:"id"`
	Name   string          `json:"name"`
	Factor decimal.Decimal `json:"factor"`
}

// Factors is the read-only reference snapshot used to price a selection.
type Factors struct {
	Brands      []Option `json:"brands"`
	FrameTypes  []Option `json:"frame_types"`
	FrameColors []Option `json:"frame_colors"`
	GlassTypes  []Option `json:"glass_types"`
	GridStyles  []Option `json:"grid_styles"`
}

// Selection holds the subset of a window configuration that drives its price.
type Selection struct {
	Width        int
	Height       int
	BrandID      *uuid.UUID
	FrameTypeID  *uuid.UUID
	FrameColorID *uuid.UUID
	GlassTypeID  *uuid.UUID
	GridStyleID  *uuid.UUID
	NoGrid       bool
}

// LinePrice returns (width + height) * (sum of the five option factors), rounded to cents.
// Unset or unknown options count as 1.0 and a missing dimension prices the line at zero.
func LinePrice(sel Selection, factors Factors) decimal.Decimal {
	if sel.Width <= 0 || sel.Height <= 0 {
		return decimal.Zero
	}

	gridFactor := neutralFactor
	if !sel.NoGrid {
		gridFactor = lookup(factors.GridStyles, sel.GridStyleID)
	}

	total := lookup(factors.Brands, sel.BrandID).
		Add(lookup(factors.FrameTypes, sel.FrameTypeID)).
		Add(lookup(factors.FrameColors, sel.FrameColorID)).
		Add(lookup(factors.GlassTypes, sel.GlassTypeID)).
		Add(gridFactor)

	span := decimal.NewFromInt(int64(sel.Width + sel.Height))
	return RoundCents(span.Mul(total))
}

// Find returns the option with the provided id.
func Find(opts []Option, id *uuid.UUID) (Option, bool) {
	if id == nil {
		return Option{}, false
	}
	for _, opt := range opts {
		if opt.ID == *id {
			return opt, true
		}
	}
	return Option{}, false
}

func lookup(opts []Option, id *uuid.UUID) decimal.Decimal {
	if opt, ok := Find(opts, id); ok {
		return opt.Factor
	}
	return neutralFactor
}

// RoundCents rounds to two places with halves going up (toward positive infinity).
func RoundCents(value decimal.Decimal) decimal.Decimal {
	return value.Shift(2).Add(half).Floor().Shift(-2)
}
