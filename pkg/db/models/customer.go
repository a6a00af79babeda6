package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer is the order aggregate: contact details, pricing terms and line items.
type Customer struct {
	ID                  uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	RepresentativeID    uuid.UUID            `gorm:"column:representative_id;type:uuid;not null;index"`
	Name                string               `gorm:"column:name;not null"`
	Address             *string              `gorm:"column:address"`
	City                *string              `gorm:"column:city"`
	State               string               `gorm:"column:state;not null"`
	Zip                 *string              `gorm:"column:zip"`
	Email               *string              `gorm:"column:email"`
	Phone               *string              `gorm:"column:phone"`
	AltPhone            *string              `gorm:"column:alt_phone"`
	Comments            *string              `gorm:"column:comments"`
	DiscountPercent     decimal.Decimal      `gorm:"column:discount_percent;type:numeric(5,2);not null"`
	DownPaymentAmount   *decimal.Decimal     `gorm:"column:down_payment_amount;type:numeric(10,2)"`
	EstimateStartDate   *string              `gorm:"column:estimate_start_date"`
	EstimateEndDate     *string              `gorm:"column:estimate_end_date"`
	Representative      *Representative      `gorm:"foreignKey:RepresentativeID"`
	Windows             []Window             `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	ContractDisclaimers []ContractDisclaimer `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE"`
	CreatedAt           time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
