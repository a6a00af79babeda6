package seed

import (
	"github.com/angelmondragon/windowquote-backend/pkg/db/models"
	"github.com/angelmondragon/windowquote-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

func factor(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func text(v string) *string {
	return &v
}

func defaultBrands() []models.Brand {
	return []models.Brand{
		{Name: "Milgard", Factor: factor("1.25"), IsActive: true, SortOrder: 1},
		{Name: "Anlin", Factor: factor("1.15"), IsActive: true, SortOrder: 2},
		{Name: "PGT", Factor: factor("1.20"), IsActive: true, SortOrder: 3},
	}
}

func defaultFrameColors() []models.FrameColor {
	return []models.FrameColor{
		{Name: "White", HexColor: text("#FFFFFF"), Factor: factor("0"), IsActive: true, SortOrder: 1},
		{Name: "Tan", HexColor: text("#D2B48C"), Factor: factor("0.05"), IsActive: true, SortOrder: 2},
		{Name: "Bronze", HexColor: text("#8B4513"), Factor: factor("0.10"), IsActive: true, SortOrder: 3},
		{Name: "Black", HexColor: text("#000000"), Factor: factor("0.15"), IsActive: true, SortOrder: 4},
	}
}

func defaultFrameTypes() []models.FrameType {
	return []models.FrameType{
		{Name: "NF", Description: text("New Frame"), Factor: factor("0"), IsActive: true, SortOrder: 1},
		{Name: "RET", Description: text("Retrofit"), Factor: factor("0.10"), IsActive: true, SortOrder: 2},
		{Name: "BLK", Description: text("Block Frame"), Factor: factor("0.15"), IsActive: true, SortOrder: 3},
		{Name: "RBO", Description: text("Retrofit Block Out"), Factor: factor("0.20"), IsActive: true, SortOrder: 4},
	}
}

func defaultGlassTypes() []models.GlassType {
	return []models.GlassType{
		{Name: "Clear", Description: text("Standard clear glass"), Factor: factor("0"), IsActive: true, SortOrder: 1},
		{Name: "Low-E", Description: text("Low emissivity coating"), Factor: factor("0.15"), IsActive: true, SortOrder: 2},
		{Name: "Tinted", Description: text("Grey/Bronze tint"), Factor: factor("0.10"), IsActive: true, SortOrder: 3},
		{Name: "Obscure", Description: text("Privacy glass"), Factor: factor("0.20"), IsActive: true, SortOrder: 4},
	}
}

func defaultGridStyles() []models.GridStyle {
	return []models.GridStyle{
		{Name: "None", Factor: factor("0"), IsActive: true, SortOrder: 1},
		{Name: "Colonial", Factor: factor("0.10"), IsActive: true, SortOrder: 2},
		{Name: "Prairie", Factor: factor("0.10"), IsActive: true, SortOrder: 3},
		{Name: "SDL", Factor: factor("0.15"), IsActive: true, SortOrder: 4},
	}
}

func defaultGridSizes() []models.GridSize {
	return []models.GridSize{
		{Size: `5/8"`, IsActive: true, SortOrder: 1},
		{Size: `7/8"`, IsActive: true, SortOrder: 2},
		{Size: `1"`, IsActive: true, SortOrder: 3},
	}
}

func productConfig(name string, category enums.ProductCategory, op string, lites int, image string, order int) models.ProductConfig {
	return models.ProductConfig{
		Name:          name,
		Category:      category,
		OperationType: text(op),
		LiteCount:     lites,
		ImagePath:     "/images/configs/" + image,
		IsActive:      true,
		SortOrder:     order,
	}
}

func defaultProductConfigs() []models.ProductConfig {
	w, d := enums.ProductCategoryWindow, enums.ProductCategoryDoor
	return []models.ProductConfig{
		productConfig("Single Hung", w, "SH", 1, "single-hung.png", 1),
		productConfig("Double Hung", w, "DH", 1, "double-hung.png", 2),
		productConfig("Horizontal Slider XO", w, "XO", 2, "slider-xo.png", 3),
		productConfig("Horizontal Slider OX", w, "OX", 2, "slider-ox.png", 4),
		productConfig("Horizontal Slider XOX", w, "XOX", 3, "slider-xox.png", 5),
		productConfig("Casement Left", w, "CL", 1, "casement-left.png", 6),
		productConfig("Casement Right", w, "CR", 1, "casement-right.png", 7),
		productConfig("Awning", w, "AW", 1, "awning.png", 8),
		productConfig("Picture", w, "PIC", 1, "picture.png", 9),
		productConfig("Sliding Patio OX", d, "OX", 2, "patio-ox.png", 20),
		productConfig("Sliding Patio XO", d, "XO", 2, "patio-xo.png", 21),
		productConfig("French Door", d, "XX", 2, "french.png", 22),
	}
}

func defaultDisclaimers() []models.Disclaimer {
	clauses := []string{
		"Customer agrees to provide clear access to all window and door locations.",
		"Final measurements will be taken after contract signing. Minor variations from estimate are possible.",
		"Permit fees are not included unless otherwise specified.",
		"Lead time for custom orders is typically 4-6 weeks after final measurements.",
	}
	out := make([]models.Disclaimer, 0, len(clauses))
	for i, c := range clauses {
		out = append(out, models.Disclaimer{Description: c, IncludeByDefault: true, IsActive: true, SortOrder: i + 1})
	}
	return out
}
