package configurator

import (
	"encoding/json"
	"testing"

	"github.com/angelmondragon/windowquote-backend/internal/pricing"
	"github.com/angelmondragon/windowquote-backend/internal/reference"
	"github.com/angelmondragon/windowquote-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	catalog      reference.Catalog
	milgard      pricing.Option
	nailFin      pricing.Option
	retrofit     pricing.Option
	tan          reference.FrameColor
	lowE         reference.ImageOption
	colonial     reference.ImageOption
	sevenEighths reference.GridSize
	slider       reference.ProductConfig
	frenchDoor   reference.ProductConfig
}

func option(name, factor string) pricing.Option {
	return pricing.Option{ID: uuid.New(), Name: name, Factor: decimal.RequireFromString(factor)}
}

func strPtr(v string) *string { return &v }

func newFixture() fixture {
	f := fixture{
		milgard:      option("Milgard", "1.25"),
		nailFin:      option("NF", "0"),
		retrofit:     option("RET", "0.10"),
		tan:          reference.FrameColor{Option: option("Tan", "0.05"), HexColor: strPtr("#D2B48C")},
		lowE:         reference.ImageOption{Option: option("Low-E", "0.15")},
		colonial:     reference.ImageOption{Option: option("Colonial", "0.10")},
		sevenEighths: reference.GridSize{ID: uuid.New(), Size: `7/8"`},
		slider: reference.ProductConfig{
			ID:            uuid.New(),
			Name:          "Horizontal Slider",
			Category:      enums.ProductCategoryWindow,
			OperationType: strPtr("XO"),
			LiteCount:     2,
		},
		frenchDoor: reference.ProductConfig{
			ID:            uuid.New(),
			Name:          "French Door",
			Category:      enums.ProductCategoryDoor,
			OperationType: strPtr("OX"),
			LiteCount:     2,
		},
	}
	f.catalog = reference.Catalog{
		Brands:         []pricing.Option{f.milgard},
		FrameTypes:     []pricing.Option{f.nailFin, f.retrofit},
		FrameColors:    []reference.FrameColor{f.tan},
		GlassTypes:     []reference.ImageOption{f.lowE},
		GridStyles:     []reference.ImageOption{f.colonial},
		GridSizes:      []reference.GridSize{f.sevenEighths},
		ProductConfigs: []reference.ProductConfig{f.slider, f.frenchDoor},
	}
	return f
}

// walkToReview drives a fresh wizard through every step with no grids.
func walkToReview(t *testing.T, w *Wizard, f fixture) {
	t.Helper()
	require.True(t, w.SelectOption(StepCategory, CategoryChoice(enums.ProductCategoryWindow)))
	require.True(t, w.SelectOption(StepType, OptionChoice(ChoiceProductType, f.slider.ID)))
	require.True(t, w.SelectOption(StepOperation, OperationChoice(enums.OperationXO, nil)))
	require.True(t, w.SelectOption(StepSize, SizeChoice(36, 48)))
	require.True(t, w.Advance())
	require.True(t, w.SelectOption(StepBrand, OptionChoice(ChoiceBrand, f.milgard.ID)))
	require.True(t, w.SelectOption(StepColor, OptionChoice(ChoiceFrameType, f.nailFin.ID)))
	require.True(t, w.SelectOption(StepColor, OptionChoice(ChoiceFrameColor, f.tan.ID)))
	require.True(t, w.SelectOption(StepGlass, OptionChoice(ChoiceGlass, f.lowE.ID)))
	require.True(t, w.SelectOption(StepGrids, NoGridChoice()))
	require.Equal(t, StepReview, w.Step())
}

func TestNewWizardDefaults(t *testing.T) {
	w := New(uuid.New(), newFixture().catalog)

	assert.Equal(t, StepCategory, w.Step())
	assert.Equal(t, DefaultWidth, w.Draft().Width)
	assert.Equal(t, DefaultHeight, w.Draft().Height)
	assert.Empty(t, w.Cart())
	assert.Nil(t, w.ProductTypes())
}

func TestFullFlowCommitsScenarioPrice(t *testing.T) {
	f := newFixture()
	customerID := uuid.New()
	w := New(customerID, f.catalog)

	walkToReview(t, w, f)
	assert.Equal(t, "205.80", w.PricePreview().StringFixed(2))

	item, ok := w.CommitToCart()
	require.True(t, ok)

	assert.NotEqual(t, uuid.Nil, item.ID)
	assert.Equal(t, customerID, item.CustomerID)
	assert.Equal(t, "205.80", item.CalculatedPrice.StringFixed(2))
	assert.Equal(t, "Window 1", item.Location)
	assert.Equal(t, "Horizontal Slider", item.ProductConfigName)
	assert.Equal(t, "#D2B48C", item.FrameColorHex)
	assert.True(t, item.NoGrid)
	assert.Nil(t, item.GridStyleID)

	assert.Equal(t, StepCategory, w.Step())
	assert.Equal(t, DefaultConfig(), w.Draft())
	require.Len(t, w.Cart(), 1)
}

func TestAutoAdvanceRules(t *testing.T) {
	f := newFixture()
	w := New(uuid.New(), f.catalog)

	require.True(t, w.SelectOption(StepCategory, CategoryChoice(enums.ProductCategoryWindow)))
	assert.Equal(t, StepType, w.Step())

	require.True(t, w.SelectOption(StepType, OptionChoice(ChoiceProductType, f.slider.ID)))
	assert.Equal(t, StepOperation, w.Step())
	assert.Equal(t, "XO", w.Draft().OperationType, "product type seeds its default operation")

	require.True(t, w.SelectOption(StepOperation, LocationChoice("Kitchen")))
	assert.Equal(t, StepOperation, w.Step(), "location alone does not advance")

	require.True(t, w.SelectOption(StepOperation, OperationChoice(enums.OperationXOX, nil)))
	assert.Equal(t, StepSize, w.Step())
	assert.Equal(t, "Kitchen", w.Draft().Location)

	require.True(t, w.SelectOption(StepSize, SizeChoice(60, 40)))
	assert.Equal(t, StepSize, w.Step(), "size requires explicit advance")
	require.True(t, w.Advance())

	require.True(t, w.SelectOption(StepBrand, OptionChoice(ChoiceBrand, f.milgard.ID)))
	assert.Equal(t, StepColor, w.Step())

	require.True(t, w.SelectOption(StepColor, OptionChoice(ChoiceFrameType, f.nailFin.ID)))
	assert.Equal(t, StepColor, w.Step(), "frame type is an intermediate pick")

	require.True(t, w.SelectOption(StepColor, OptionChoice(ChoiceFrameColor, f.tan.ID)))
	assert.Equal(t, StepGlass, w.Step())

	require.True(t, w.SelectOption(StepGlass, OptionChoice(ChoiceGlass, f.lowE.ID)))
	assert.Equal(t, StepGrids, w.Step())

	require.True(t, w.SelectOption(StepGrids, OptionChoice(ChoiceGridStyle, f.colonial.ID)))
	assert.Equal(t, StepGrids, w.Step(), "grid style is an intermediate pick")

	require.True(t, w.SelectOption(StepGrids, OptionChoice(ChoiceGridSize, f.sevenEighths.ID)))
	assert.Equal(t, StepReview, w.Step())
}

func TestSelectOptionRefusals(t *testing.T) {
	f := newFixture()
	w := New(uuid.New(), f.catalog)

	assert.False(t, w.SelectOption(StepType, OptionChoice(ChoiceProductType, f.slider.ID)), "not the current step")
	assert.False(t, w.SelectOption(StepCategory, OptionChoice(ChoiceBrand, f.milgard.ID)), "kind of another step")
	assert.False(t, w.SelectOption(StepCategory, CategoryChoice("skylight")))

	require.True(t, w.SelectOption(StepCategory, CategoryChoice(enums.ProductCategoryWindow)))
	assert.False(t, w.SelectOption(StepType, OptionChoice(ChoiceProductType, f.frenchDoor.ID)), "door config for a window")
	assert.False(t, w.SelectOption(StepType, OptionChoice(ChoiceProductType, uuid.New())))
	assert.False(t, w.SelectOption(StepType, Choice{Kind: ChoiceProductType}))
	assert.Equal(t, StepType, w.Step())

	require.True(t, w.SelectOption(StepType, OptionChoice(ChoiceProductType, f.slider.ID)))
	assert.False(t, w.SelectOption(StepOperation, OperationChoice("SH", nil)))
	assert.False(t, w.SelectOption(StepOperation, Choice{Kind: ChoiceLocation}))
}

func TestFrameColorRequiresFrameType(t *testing.T) {
	f := newFixture()
	w := Restore(Snapshot{CustomerID: uuid.New(), Step: StepColor, Draft: DefaultConfig(), Catalog: f.catalog})

	assert.False(t, w.SelectOption(StepColor, OptionChoice(ChoiceFrameColor, f.tan.ID)))
	assert.False(t, w.CanAdvance(StepColor))

	require.True(t, w.SelectOption(StepColor, OptionChoice(ChoiceFrameType, f.nailFin.ID)))
	assert.False(t, w.CanAdvance(StepColor))
	require.True(t, w.SelectOption(StepColor, OptionChoice(ChoiceFrameColor, f.tan.ID)))
	assert.Equal(t, StepGlass, w.Step())
}

func TestChangingFrameTypeClearsColor(t *testing.T) {
	f := newFixture()
	w := Restore(Snapshot{CustomerID: uuid.New(), Step: StepColor, Draft: DefaultConfig(), Catalog: f.catalog})

	require.True(t, w.SelectOption(StepColor, OptionChoice(ChoiceFrameType, f.nailFin.ID)))
	require.True(t, w.SelectOption(StepColor, OptionChoice(ChoiceFrameColor, f.tan.ID)))
	require.True(t, w.JumpTo(StepColor))

	require.True(t, w.SelectOption(StepColor, OptionChoice(ChoiceFrameType, f.nailFin.ID)))
	assert.NotNil(t, w.Draft().FrameColorID, "same frame type keeps color")

	require.True(t, w.SelectOption(StepColor, OptionChoice(ChoiceFrameType, f.retrofit.ID)))
	assert.Nil(t, w.Draft().FrameColorID)
	assert.Empty(t, w.Draft().FrameColorHex)
	assert.False(t, w.CanAdvance(StepColor))
}

func TestGridsCanAdvance(t *testing.T) {
	f := newFixture()
	w := Restore(Snapshot{CustomerID: uuid.New(), Step: StepGrids, Draft: DefaultConfig(), Catalog: f.catalog})

	assert.False(t, w.CanAdvance(StepGrids))
	assert.False(t, w.SelectOption(StepGrids, OptionChoice(ChoiceGridSize, f.sevenEighths.ID)), "size needs a style")

	require.True(t, w.SelectOption(StepGrids, OptionChoice(ChoiceGridStyle, f.colonial.ID)))
	assert.False(t, w.CanAdvance(StepGrids))
	assert.False(t, w.Advance())

	require.True(t, w.SelectOption(StepGrids, OptionChoice(ChoiceGridSize, f.sevenEighths.ID)))
	assert.True(t, w.CanAdvance(StepGrids))
	assert.Equal(t, StepReview, w.Step())
}

func TestNoGridClearsStyleAndSize(t *testing.T) {
	f := newFixture()
	draft := DefaultConfig()
	draft.GridStyleID = &f.colonial.ID
	draft.GridStyleName = f.colonial.Name
	draft.GridSizeID = &f.sevenEighths.ID
	draft.GridSizeName = f.sevenEighths.Size
	w := Restore(Snapshot{CustomerID: uuid.New(), Step: StepGrids, Draft: draft, Catalog: f.catalog})

	require.True(t, w.SelectOption(StepGrids, NoGridChoice()))

	got := w.Draft()
	assert.True(t, got.NoGrid)
	assert.Nil(t, got.GridStyleID)
	assert.Nil(t, got.GridSizeID)
	assert.Empty(t, got.GridStyleName)
	assert.Empty(t, got.GridSizeName)
	assert.True(t, w.CanAdvance(StepGrids))

	require.True(t, w.JumpTo(StepGrids))
	require.True(t, w.SelectOption(StepGrids, OptionChoice(ChoiceGridStyle, f.colonial.ID)))
	assert.False(t, w.Draft().NoGrid, "picking a style turns grids back on")
}

func TestAdvanceAndRetreatBounds(t *testing.T) {
	f := newFixture()
	w := New(uuid.New(), f.catalog)

	assert.False(t, w.Retreat())
	assert.False(t, w.Advance(), "category unset")
	assert.Equal(t, StepCategory, w.Step())

	walkToReview(t, w, f)
	assert.False(t, w.Advance(), "review is terminal")
	assert.Equal(t, StepReview, w.Step())

	require.True(t, w.Retreat())
	assert.Equal(t, StepGrids, w.Step())
}

func TestJumpToForwardIsIgnored(t *testing.T) {
	f := newFixture()
	w := New(uuid.New(), f.catalog)
	require.True(t, w.SelectOption(StepCategory, CategoryChoice(enums.ProductCategoryWindow)))
	require.True(t, w.SelectOption(StepType, OptionChoice(ChoiceProductType, f.slider.ID)))
	require.Equal(t, StepOperation, w.Step())

	assert.False(t, w.JumpTo(StepReview))
	assert.False(t, w.JumpTo(StepSize))
	assert.False(t, w.JumpTo("bogus"))
	assert.Equal(t, StepOperation, w.Step())

	assert.True(t, w.JumpTo(StepOperation))
	assert.True(t, w.JumpTo(StepCategory))
	assert.Equal(t, StepCategory, w.Step())
}

func TestCommitRequiresReview(t *testing.T) {
	f := newFixture()
	w := New(uuid.New(), f.catalog)

	_, ok := w.CommitToCart()
	assert.False(t, ok)
	assert.Empty(t, w.Cart())

	anonymous := Restore(Snapshot{Step: StepReview, Draft: DefaultConfig(), Catalog: f.catalog})
	_, ok = anonymous.CommitToCart()
	assert.False(t, ok, "no customer")
}

func TestCommitWithoutDimensionsPricesZero(t *testing.T) {
	f := newFixture()
	draft := WindowConfig{BrandID: &f.milgard.ID, NoGrid: true}
	w := Restore(Snapshot{CustomerID: uuid.New(), Step: StepReview, Draft: draft, Catalog: f.catalog})

	item, ok := w.CommitToCart()
	require.True(t, ok)

	assert.True(t, item.CalculatedPrice.IsZero())
	assert.Equal(t, enums.ProductCategoryWindow, item.Category)
	assert.Equal(t, 0, item.Width)
}

func TestCommitKeepsLocationAndNumbersBlankOnes(t *testing.T) {
	f := newFixture()
	w := New(uuid.New(), f.catalog)

	walkToReview(t, w, f)
	_, ok := w.CommitToCart()
	require.True(t, ok)

	walkToReview(t, w, f)
	require.True(t, w.JumpTo(StepOperation))
	require.True(t, w.SelectOption(StepOperation, LocationChoice("Lanai")))
	for w.Step() != StepReview {
		require.True(t, w.Advance())
	}
	named, ok := w.CommitToCart()
	require.True(t, ok)
	assert.Equal(t, "Lanai", named.Location)

	walkToReview(t, w, f)
	third, ok := w.CommitToCart()
	require.True(t, ok)
	assert.Equal(t, "Window 3", third.Location)
}

func TestCommittedPriceIsSnapshot(t *testing.T) {
	f := newFixture()
	w := New(uuid.New(), f.catalog)
	walkToReview(t, w, f)

	item, ok := w.CommitToCart()
	require.True(t, ok)

	w.catalog.Brands[0].Factor = decimal.RequireFromString("9")
	assert.Equal(t, "205.80", w.Cart()[0].CalculatedPrice.StringFixed(2))
	assert.Equal(t, item.CalculatedPrice, w.Cart()[0].CalculatedPrice)
}

func TestRemoveFromCart(t *testing.T) {
	f := newFixture()
	w := New(uuid.New(), f.catalog)
	walkToReview(t, w, f)
	first, _ := w.CommitToCart()
	walkToReview(t, w, f)
	second, _ := w.CommitToCart()

	assert.False(t, w.RemoveFromCart(uuid.New()))
	require.Len(t, w.Cart(), 2)

	assert.True(t, w.RemoveFromCart(first.ID))
	cart := w.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, second.ID, cart[0].ID)
}

func TestEditCartItemMovesEntryIntoDraft(t *testing.T) {
	f := newFixture()
	w := New(uuid.New(), f.catalog)
	walkToReview(t, w, f)
	item, _ := w.CommitToCart()

	assert.False(t, w.EditCartItem(uuid.New()))

	require.True(t, w.EditCartItem(item.ID))
	assert.Empty(t, w.Cart())
	assert.Equal(t, StepCategory, w.Step())
	assert.Equal(t, item.WindowConfig, w.Draft())

	// prefilled selections let the flow be re-confirmed step by step
	for w.Step() != StepReview {
		require.True(t, w.Advance(), "stuck at %s", w.Step())
	}
	again, ok := w.CommitToCart()
	require.True(t, ok)
	assert.NotEqual(t, item.ID, again.ID)
	assert.Equal(t, item.CalculatedPrice, again.CalculatedPrice)
}

func TestClearCartKeepsDraft(t *testing.T) {
	f := newFixture()
	w := New(uuid.New(), f.catalog)
	walkToReview(t, w, f)
	_, _ = w.CommitToCart()
	require.True(t, w.SelectOption(StepCategory, CategoryChoice(enums.ProductCategoryDoor)))

	w.ClearCart()

	assert.Empty(t, w.Cart())
	assert.Equal(t, enums.ProductCategoryDoor, w.Draft().Category)
	assert.Equal(t, StepType, w.Step())
}

func TestResetDraftKeepsCart(t *testing.T) {
	f := newFixture()
	w := New(uuid.New(), f.catalog)
	walkToReview(t, w, f)
	_, _ = w.CommitToCart()
	require.True(t, w.SelectOption(StepCategory, CategoryChoice(enums.ProductCategoryDoor)))

	w.ResetDraft()

	assert.Equal(t, StepCategory, w.Step())
	assert.Equal(t, DefaultConfig(), w.Draft())
	assert.Len(t, w.Cart(), 1)
}

func TestCategoryChangeDropsProductType(t *testing.T) {
	f := newFixture()
	w := New(uuid.New(), f.catalog)
	require.True(t, w.SelectOption(StepCategory, CategoryChoice(enums.ProductCategoryWindow)))
	require.True(t, w.SelectOption(StepType, OptionChoice(ChoiceProductType, f.slider.ID)))
	require.True(t, w.JumpTo(StepCategory))

	require.True(t, w.SelectOption(StepCategory, CategoryChoice(enums.ProductCategoryDoor)))

	assert.Nil(t, w.Draft().ProductConfigID)
	require.Len(t, w.ProductTypes(), 1)
	assert.Equal(t, f.frenchDoor.ID, w.ProductTypes()[0].ID)
}

func TestSnapshotRoundTripThroughJSON(t *testing.T) {
	f := newFixture()
	w := New(uuid.New(), f.catalog)
	walkToReview(t, w, f)
	_, _ = w.CommitToCart()
	require.True(t, w.SelectOption(StepCategory, CategoryChoice(enums.ProductCategoryWindow)))

	raw, err := json.Marshal(w.Snapshot())
	require.NoError(t, err)
	var snap Snapshot
	require.NoError(t, json.Unmarshal(raw, &snap))

	restored := Restore(snap)
	assert.Equal(t, w.Step(), restored.Step())
	assert.Equal(t, w.Draft(), restored.Draft())
	require.Len(t, restored.Cart(), 1)
	assert.True(t, w.Cart()[0].CalculatedPrice.Equal(restored.Cart()[0].CalculatedPrice))
	assert.Equal(t, w.PricePreview().String(), restored.PricePreview().String())
}

func TestRestoreUnknownStepStartsOver(t *testing.T) {
	w := Restore(Snapshot{CustomerID: uuid.New(), Step: "checkout"})
	assert.Equal(t, StepCategory, w.Step())
}
