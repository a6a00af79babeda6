package configurator

import (
	"fmt"

	"github.com/angelmondragon/windowquote-backend/pkg/enums"
	"github.com/google/uuid"
)

// ChoiceKind tags which field of the draft a Choice sets.
type ChoiceKind string

const (
	ChoiceCategory    ChoiceKind = "category"
	ChoiceProductType ChoiceKind = "product_type"
	ChoiceOperation   ChoiceKind = "operation"
	ChoiceLocation    ChoiceKind = "location"
	ChoiceSize        ChoiceKind = "size"
	ChoiceBrand       ChoiceKind = "brand"
	ChoiceFrameType   ChoiceKind = "frame_type"
	ChoiceFrameColor  ChoiceKind = "frame_color"
	ChoiceGlass       ChoiceKind = "glass"
	ChoiceGridStyle   ChoiceKind = "grid_style"
	ChoiceGridSize    ChoiceKind = "grid_size"
	ChoiceNoGrid      ChoiceKind = "no_grid"
)

var choiceSteps = map[ChoiceKind]Step{
	ChoiceCategory:    StepCategory,
	ChoiceProductType: StepType,
	ChoiceOperation:   StepOperation,
	ChoiceLocation:    StepOperation,
	ChoiceSize:        StepSize,
	ChoiceBrand:       StepBrand,
	ChoiceFrameType:   StepColor,
	ChoiceFrameColor:  StepColor,
	ChoiceGlass:       StepGlass,
	ChoiceGridStyle:   StepGrids,
	ChoiceGridSize:    StepGrids,
	ChoiceNoGrid:      StepGrids,
}

// Step returns the step a choice of this kind belongs to.
func (k ChoiceKind) Step() Step {
	return choiceSteps[k]
}

// AutoAdvances reports whether a successful choice of this kind moves the flow forward.
func (k ChoiceKind) AutoAdvances() bool {
	switch k {
	case ChoiceCategory, ChoiceProductType, ChoiceOperation, ChoiceBrand,
		ChoiceFrameColor, ChoiceGlass, ChoiceGridSize, ChoiceNoGrid:
		return true
	}
	return false
}

func (k ChoiceKind) IsValid() bool {
	_, ok := choiceSteps[k]
	return ok
}

// ParseChoiceKind converts raw input into a ChoiceKind.
func ParseChoiceKind(value string) (ChoiceKind, error) {
	kind := ChoiceKind(value)
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid choice kind %q", value)
	}
	return kind, nil
}

// Choice is a single typed selection. Only the fields relevant to Kind are read.
type Choice struct {
	Kind          ChoiceKind            `json:"kind"`
	Category      enums.ProductCategory `json:"category,omitempty"`
	OptionID      *uuid.UUID            `json:"option_id,omitempty"`
	OperationType enums.OperationType   `json:"operation_type,omitempty"`
	Location      *string               `json:"location,omitempty"`
	Width         int                   `json:"width,omitempty"`
	Height        int                   `json:"height,omitempty"`
}

func CategoryChoice(category enums.ProductCategory) Choice {
	return Choice{Kind: ChoiceCategory, Category: category}
}

func OptionChoice(kind ChoiceKind, id uuid.UUID) Choice {
	return Choice{Kind: kind, OptionID: &id}
}

func OperationChoice(op enums.OperationType, location *string) Choice {
	return Choice{Kind: ChoiceOperation, OperationType: op, Location: location}
}

func LocationChoice(location string) Choice {
	return Choice{Kind: ChoiceLocation, Location: &location}
}

func SizeChoice(width, height int) Choice {
	return Choice{Kind: ChoiceSize, Width: width, Height: height}
}

func NoGridChoice() Choice {
	return Choice{Kind: ChoiceNoGrid}
}
