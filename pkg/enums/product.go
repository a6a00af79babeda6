package enums

import "strings"

// ProductCategory separates windows from doors in the product catalog.
type ProductCategory string

const (
	ProductCategoryWindow ProductCategory = "window"
	ProductCategoryDoor   ProductCategory = "door"
)

var productCategories = []ProductCategory{ProductCategoryWindow, ProductCategoryDoor}

func (c ProductCategory) String() string { return string(c) }

// IsValid is strict: only the stored lowercase spelling counts.
func (c ProductCategory) IsValid() bool {
	parsed, err := ParseProductCategory(string(c))
	return err == nil && parsed == c
}

// ParseProductCategory accepts "Window", "DOOR" and similar spellings.
func ParseProductCategory(value string) (ProductCategory, error) {
	return lookup("product category", value, productCategories, strings.ToLower)
}
