package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNormalizesInput(t *testing.T) {
	role, err := ParseRole(" Admin ")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)

	category, err := ParseProductCategory("DOOR")
	require.NoError(t, err)
	assert.Equal(t, ProductCategoryDoor, category)

	kind, err := ParseReferenceKind("grid_styles")
	require.NoError(t, err)
	assert.Equal(t, ReferenceGridStyles, kind)

	op, err := ParseOperationType("xox")
	require.NoError(t, err)
	assert.Equal(t, OperationXOX, op)
}

func TestParseRejectsUnknownValues(t *testing.T) {
	_, err := ParseRole("owner")
	assert.EqualError(t, err, `invalid role "owner"`)

	_, err = ParseProductCategory("skylight")
	assert.EqualError(t, err, `invalid product category "skylight"`)

	_, err = ParseReferenceKind("colors")
	assert.Error(t, err)

	_, err = ParseOperationType("XXO")
	assert.Error(t, err)

	_, err = ParseOperationType("")
	assert.Error(t, err)
}

func TestIsValidIsStrict(t *testing.T) {
	assert.True(t, RoleRepresentative.IsValid())
	assert.False(t, Role("Admin").IsValid())
	assert.True(t, ProductCategoryWindow.IsValid())
	assert.False(t, ProductCategory(" window").IsValid())
	assert.True(t, ReferenceDisclaimers.IsValid())
	assert.False(t, ReferenceKind("grid_sizes").IsValid())
	assert.True(t, OperationOXO.IsValid())
	assert.False(t, OperationType("xo").IsValid())
}

func TestOperationTypesReturnsCopy(t *testing.T) {
	types := OperationTypes()
	require.Len(t, types, 8)
	types[0] = "ZZ"
	assert.Equal(t, OperationX, OperationTypes()[0])
	assert.Equal(t, 3, OperationXOX.Panels())
}

func TestPricedKinds(t *testing.T) {
	assert.True(t, ReferenceGlassTypes.Priced())
	assert.False(t, ReferenceGridSizes.Priced())
	assert.False(t, ReferenceDisclaimers.Priced())
}
