package configurator

import (
	"fmt"

	pkgerrors "github.com/angelmondragon/windowquote-backend/pkg/errors"
	"github.com/google/uuid"
)

// ActionType tags the wizard operation carried by an Action.
type ActionType string

const (
	ActionSelect     ActionType = "select"
	ActionAdvance    ActionType = "advance"
	ActionRetreat    ActionType = "retreat"
	ActionJump       ActionType = "jump"
	ActionCommit     ActionType = "commit"
	ActionRemove     ActionType = "remove"
	ActionEdit       ActionType = "edit"
	ActionClearCart  ActionType = "clear_cart"
	ActionResetDraft ActionType = "reset_draft"
)

// Opening sizes accepted from clients, in inches.
const (
	MinDimension = 12
	MaxDimension = 144
)

// Action is one client request against a wizard session. Only the fields the type needs are read.
type Action struct {
	Type   ActionType `json:"type" validate:"required,oneof=select advance retreat jump commit remove edit clear_cart reset_draft"`
	Step   Step       `json:"step,omitempty"`
	Choice *Choice    `json:"choice,omitempty"`
	ItemID *uuid.UUID `json:"item_id,omitempty"`
}

// Validate checks the action carries what its type requires. It does not consult wizard state.
func (a Action) Validate() error {
	switch a.Type {
	case ActionSelect:
		if !a.Step.IsValid() {
			return pkgerrors.Field("step", "must be a known step")
		}
		if a.Choice == nil {
			return pkgerrors.Field("choice", "is required")
		}
		return a.Choice.validate()
	case ActionJump:
		if !a.Step.IsValid() {
			return pkgerrors.Field("step", "must be a known step")
		}
	case ActionRemove, ActionEdit:
		if a.ItemID == nil || *a.ItemID == uuid.Nil {
			return pkgerrors.Field("item_id", "is required")
		}
	case ActionAdvance, ActionRetreat, ActionCommit, ActionClearCart, ActionResetDraft:
	default:
		return pkgerrors.Field("type", fmt.Sprintf("unknown action %q", a.Type))
	}
	return nil
}

func (c Choice) validate() error {
	if !c.Kind.IsValid() {
		return pkgerrors.Field("choice.kind", "must be a known choice kind")
	}
	switch c.Kind {
	case ChoiceCategory:
		if !c.Category.IsValid() {
			return pkgerrors.Field("choice.category", "must be window or door")
		}
	case ChoiceOperation:
		if !c.OperationType.IsValid() {
			return pkgerrors.Field("choice.operation_type", "must be a known operation type")
		}
	case ChoiceLocation:
		if c.Location == nil {
			return pkgerrors.Field("choice.location", "is required")
		}
	case ChoiceSize:
		if c.Width < MinDimension || c.Width > MaxDimension {
			return pkgerrors.Field("choice.width", fmt.Sprintf("must be between %d and %d", MinDimension, MaxDimension))
		}
		if c.Height < MinDimension || c.Height > MaxDimension {
			return pkgerrors.Field("choice.height", fmt.Sprintf("must be between %d and %d", MinDimension, MaxDimension))
		}
	case ChoiceNoGrid:
	default:
		if c.OptionID == nil || *c.OptionID == uuid.Nil {
			return pkgerrors.Field("choice.option_id", "is required")
		}
	}
	return nil
}
