package reference

import (
	"strings"

	"github.com/angelmondragon/windowquote-backend/pkg/db/models"
	"github.com/angelmondragon/windowquote-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/windowquote-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

var defaultFactor = decimal.NewFromInt(1)

// OptionInput is the admin payload for one reference row. Fields that do not apply to
// the addressed kind are ignored; nil fields are left untouched on update.
type OptionInput struct {
	Name             *string                `json:"name" validate:"omitempty,min=1,max=120"`
	Description      *string                `json:"description" validate:"omitempty,max=2000"`
	Factor           *decimal.Decimal       `json:"factor" validate:"omitempty,gte=0"`
	HexColor         *string                `json:"hex_color" validate:"omitempty,hexcolor"`
	ImagePath        *string                `json:"image_path" validate:"omitempty,max=255"`
	Size             *string                `json:"size" validate:"omitempty,min=1,max=32"`
	Category         *enums.ProductCategory `json:"category" validate:"omitempty,oneof=window door"`
	OperationType    *string                `json:"operation_type" validate:"omitempty,max=16"`
	LiteCount        *int                   `json:"lite_count" validate:"omitempty,min=1,max=32"`
	IncludeByDefault *bool                  `json:"include_by_default"`
	IsActive         *bool                  `json:"is_active"`
	SortOrder        *int                   `json:"sort_order" validate:"omitempty,min=0"`
}

func errUnknownKind(kind enums.ReferenceKind) error {
	return pkgerrors.Newf(pkgerrors.CodeValidation, "unknown reference kind %q", kind)
}

func trimmed(value *string) string {
	if value == nil {
		return ""
	}
	return strings.TrimSpace(*value)
}

// newRow builds a model of the given kind. Factors default to 1.0 and rows start active.
func newRow(kind enums.ReferenceKind, in OptionInput) (any, error) {
	name := trimmed(in.Name)
	if kind != enums.ReferenceGridSizes && kind != enums.ReferenceDisclaimers && name == "" {
		return nil, pkgerrors.Field("name", "is required")
	}
	factor := defaultFactor
	if in.Factor != nil {
		factor = *in.Factor
	}

	var row any
	switch kind {
	case enums.ReferenceBrands:
		row = &models.Brand{Name: name, Factor: factor}
	case enums.ReferenceFrameTypes:
		row = &models.FrameType{Name: name, Factor: factor}
	case enums.ReferenceFrameColors:
		row = &models.FrameColor{Name: name, Factor: factor}
	case enums.ReferenceGlassTypes:
		row = &models.GlassType{Name: name, Factor: factor}
	case enums.ReferenceGridStyles:
		row = &models.GridStyle{Name: name, Factor: factor}
	case enums.ReferenceGridSizes:
		if trimmed(in.Size) == "" {
			return nil, pkgerrors.Field("size", "is required")
		}
		row = &models.GridSize{}
	case enums.ReferenceProductConfigs:
		if in.Category == nil {
			return nil, pkgerrors.Field("category", "is required")
		}
		if trimmed(in.ImagePath) == "" {
			return nil, pkgerrors.Field("image_path", "is required")
		}
		row = &models.ProductConfig{Name: name, LiteCount: 1}
	case enums.ReferenceDisclaimers:
		if trimmed(in.Description) == "" {
			return nil, pkgerrors.Field("description", "is required")
		}
		row = &models.Disclaimer{IncludeByDefault: true}
	default:
		return nil, errUnknownKind(kind)
	}

	active := true
	if in.IsActive == nil {
		in.IsActive = &active
	}
	applyInput(row, in)
	return row, nil
}

// applyInput copies the non-nil fields of in onto row.
func applyInput(row any, in OptionInput) {
	switch m := row.(type) {
	case *models.Brand:
		setString(&m.Name, in.Name)
		setDecimal(&m.Factor, in.Factor)
		setBool(&m.IsActive, in.IsActive)
		setInt(&m.SortOrder, in.SortOrder)
	case *models.FrameType:
		setString(&m.Name, in.Name)
		setOptional(&m.Description, in.Description)
		setDecimal(&m.Factor, in.Factor)
		setBool(&m.IsActive, in.IsActive)
		setInt(&m.SortOrder, in.SortOrder)
	case *models.FrameColor:
		setString(&m.Name, in.Name)
		setOptional(&m.HexColor, in.HexColor)
		setDecimal(&m.Factor, in.Factor)
		setBool(&m.IsActive, in.IsActive)
		setInt(&m.SortOrder, in.SortOrder)
	case *models.GlassType:
		setString(&m.Name, in.Name)
		setOptional(&m.Description, in.Description)
		setOptional(&m.ImagePath, in.ImagePath)
		setDecimal(&m.Factor, in.Factor)
		setBool(&m.IsActive, in.IsActive)
		setInt(&m.SortOrder, in.SortOrder)
	case *models.GridStyle:
		setString(&m.Name, in.Name)
		setOptional(&m.ImagePath, in.ImagePath)
		setDecimal(&m.Factor, in.Factor)
		setBool(&m.IsActive, in.IsActive)
		setInt(&m.SortOrder, in.SortOrder)
	case *models.GridSize:
		setString(&m.Size, in.Size)
		setBool(&m.IsActive, in.IsActive)
		setInt(&m.SortOrder, in.SortOrder)
	case *models.ProductConfig:
		setString(&m.Name, in.Name)
		if in.Category != nil {
			m.Category = *in.Category
		}
		setOptional(&m.OperationType, in.OperationType)
		setInt(&m.LiteCount, in.LiteCount)
		setOptional(&m.Description, in.Description)
		setString(&m.ImagePath, in.ImagePath)
		setBool(&m.IsActive, in.IsActive)
		setInt(&m.SortOrder, in.SortOrder)
	case *models.Disclaimer:
		setString(&m.Description, in.Description)
		setBool(&m.IncludeByDefault, in.IncludeByDefault)
		setBool(&m.IsActive, in.IsActive)
		setInt(&m.SortOrder, in.SortOrder)
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

// setOptional clears the column when src points at an empty string.
func setOptional(dst **string, src *string) {
	if src == nil {
		return
	}
	value := strings.TrimSpace(*src)
	if value == "" {
		*dst = nil
		return
	}
	*dst = &value
}

func setDecimal(dst *decimal.Decimal, src *decimal.Decimal) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}
