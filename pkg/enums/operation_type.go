package enums

import (
	"slices"
	"strings"
)

// OperationType describes the panel layout of a unit: X is a fixed panel, O an operating one.
type OperationType string

const (
	OperationX   OperationType = "X"
	OperationO   OperationType = "O"
	OperationXO  OperationType = "XO"
	OperationOX  OperationType = "OX"
	OperationXX  OperationType = "XX"
	OperationOO  OperationType = "OO"
	OperationXOX OperationType = "XOX"
	OperationOXO OperationType = "OXO"
)

var operationTypes = []OperationType{
	OperationX,
	OperationO,
	OperationXO,
	OperationOX,
	OperationXX,
	OperationOO,
	OperationXOX,
	OperationOXO,
}

// OperationTypes lists the selectable layouts in display order.
func OperationTypes() []OperationType {
	return slices.Clone(operationTypes)
}

func (o OperationType) String() string { return string(o) }

func (o OperationType) IsValid() bool {
	parsed, err := ParseOperationType(string(o))
	return err == nil && parsed == o
}

// Panels is the number of sashes in the layout.
func (o OperationType) Panels() int { return len(o) }

// ParseOperationType accepts lowercase input such as "xo".
func ParseOperationType(value string) (OperationType, error) {
	return lookup("operation type", value, operationTypes, strings.ToUpper)
}
