package enums

import "strings"

// ReferenceKind names an admin-managed reference table. The value doubles as its URL segment.
type ReferenceKind string

const (
	ReferenceBrands         ReferenceKind = "brands"
	ReferenceFrameTypes     ReferenceKind = "frame-types"
	ReferenceFrameColors    ReferenceKind = "frame-colors"
	ReferenceGlassTypes     ReferenceKind = "glass-types"
	ReferenceGridStyles     ReferenceKind = "grid-styles"
	ReferenceGridSizes      ReferenceKind = "grid-sizes"
	ReferenceProductConfigs ReferenceKind = "product-configs"
	ReferenceDisclaimers    ReferenceKind = "disclaimers"
)

var referenceKinds = []ReferenceKind{
	ReferenceBrands,
	ReferenceFrameTypes,
	ReferenceFrameColors,
	ReferenceGlassTypes,
	ReferenceGridStyles,
	ReferenceGridSizes,
	ReferenceProductConfigs,
	ReferenceDisclaimers,
}

func (k ReferenceKind) String() string { return string(k) }

func (k ReferenceKind) IsValid() bool {
	parsed, err := ParseReferenceKind(string(k))
	return err == nil && parsed == k
}

// Priced reports whether rows of this kind carry a pricing factor.
func (k ReferenceKind) Priced() bool {
	switch k {
	case ReferenceBrands, ReferenceFrameTypes, ReferenceFrameColors, ReferenceGlassTypes, ReferenceGridStyles:
		return true
	}
	return false
}

// ParseReferenceKind also takes snake_case, so "grid_styles" resolves to ReferenceGridStyles.
func ParseReferenceKind(value string) (ReferenceKind, error) {
	return lookup("reference kind", value, referenceKinds, func(s string) string {
		return strings.ReplaceAll(strings.ToLower(s), "_", "-")
	})
}
