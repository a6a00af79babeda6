package models

import "github.com/google/uuid"

// Disclaimer is a global contract clause template.
type Disclaimer struct {
	ID               uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Description      string    `gorm:"column:description;not null" json:"description"`
	IncludeByDefault bool      `gorm:"column:include_by_default;not null" json:"include_by_default"`
	IsActive         bool      `gorm:"column:is_active;not null" json:"is_active"`
	SortOrder        int       `gorm:"column:sort_order;not null" json:"sort_order"`
}

// ContractDisclaimer is a customer's own copy of a clause, editable per contract.
type ContractDisclaimer struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CustomerID  uuid.UUID `gorm:"column:customer_id;type:uuid;not null;index" json:"customer_id"`
	Description string    `gorm:"column:description;not null" json:"description"`
	SortOrder   int       `gorm:"column:sort_order;not null" json:"sort_order"`
}
