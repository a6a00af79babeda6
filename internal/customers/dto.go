package customers

import (
	"strings"
	"time"

	"github.com/angelmondragon/windowquote-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultState is applied when a customer is created without a state.
const DefaultState = "HI"

// CreateCustomerInput is the payload for a new customer record.
type CreateCustomerInput struct {
	RepresentativeID  *uuid.UUID       `json:"representative_id"`
	Name              string           `json:"name" validate:"required,max=200"`
	Address           *string          `json:"address" validate:"omitempty,max=255"`
	City              *string          `json:"city" validate:"omitempty,max=120"`
	State             *string          `json:"state" validate:"omitempty,len=2,alpha"`
	Zip               *string          `json:"zip" validate:"omitempty,max=10"`
	Email             *string          `json:"email" validate:"omitempty,email"`
	Phone             *string          `json:"phone" validate:"omitempty,max=32"`
	AltPhone          *string          `json:"alt_phone" validate:"omitempty,max=32"`
	Comments          *string          `json:"comments" validate:"omitempty,max=4000"`
	DiscountPercent   *decimal.Decimal `json:"discount_percent" validate:"omitempty,gte=0,lte=100"`
	DownPaymentAmount *decimal.Decimal `json:"down_payment_amount" validate:"omitempty,gte=0"`
	EstimateStartDate *string          `json:"estimate_start_date" validate:"omitempty,datetime=2006-01-02"`
	EstimateEndDate   *string          `json:"estimate_end_date" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateTermsInput patches pricing terms and contact fields. Nil fields are left untouched;
// an empty string clears an optional text field.
type UpdateTermsInput struct {
	Name              *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Address           *string          `json:"address" validate:"omitempty,max=255"`
	City              *string          `json:"city" validate:"omitempty,max=120"`
	State             *string          `json:"state" validate:"omitempty,len=2,alpha"`
	Zip               *string          `json:"zip" validate:"omitempty,max=10"`
	Email             *string          `json:"email" validate:"omitempty,email"`
	Phone             *string          `json:"phone" validate:"omitempty,max=32"`
	AltPhone          *string          `json:"alt_phone" validate:"omitempty,max=32"`
	Comments          *string          `json:"comments" validate:"omitempty,max=4000"`
	DiscountPercent   *decimal.Decimal `json:"discount_percent" validate:"omitempty,gte=0,lte=100"`
	DownPaymentAmount *decimal.Decimal `json:"down_payment_amount" validate:"omitempty,gte=0"`
	ClearDownPayment  bool             `json:"clear_down_payment"`
	EstimateStartDate *string          `json:"estimate_start_date" validate:"omitempty,datetime=2006-01-02"`
	EstimateEndDate   *string          `json:"estimate_end_date" validate:"omitempty,datetime=2006-01-02"`
}

// CustomerDTO is the transport shape of a customer.
type CustomerDTO struct {
	ID                uuid.UUID        `json:"id"`
	RepresentativeID  uuid.UUID        `json:"representative_id"`
	Name              string           `json:"name"`
	Address           *string          `json:"address,omitempty"`
	City              *string          `json:"city,omitempty"`
	State             string           `json:"state"`
	Zip               *string          `json:"zip,omitempty"`
	Email             *string          `json:"email,omitempty"`
	Phone             *string          `json:"phone,omitempty"`
	AltPhone          *string          `json:"alt_phone,omitempty"`
	Comments          *string          `json:"comments,omitempty"`
	DiscountPercent   decimal.Decimal  `json:"discount_percent" validate:"omitempty,gte=0,lte=100"`
	DownPaymentAmount *decimal.Decimal `json:"down_payment_amount,omitempty"`
	EstimateStartDate *string          `json:"estimate_start_date,omitempty"`
	EstimateEndDate   *string          `json:"estimate_end_date,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// DisclaimerDTO is one clause of a customer's contract.
type DisclaimerDTO struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	SortOrder   int       `json:"sort_order"`
}

// DisclaimersInput replaces a customer's contract clauses with the given texts, in order.
type DisclaimersInput struct {
	Descriptions []string `json:"descriptions" validate:"dive,required,max=4000"`
}

func FromModel(c *models.Customer) *CustomerDTO {
	if c == nil {
		return nil
	}
	return &CustomerDTO{
		ID:                c.ID,
		RepresentativeID:  c.RepresentativeID,
		Name:              c.Name,
		Address:           c.Address,
		City:              c.City,
		State:             c.State,
		Zip:               c.Zip,
		Email:             c.Email,
		Phone:             c.Phone,
		AltPhone:          c.AltPhone,
		Comments:          c.Comments,
		DiscountPercent:   c.DiscountPercent,
		DownPaymentAmount: c.DownPaymentAmount,
		EstimateStartDate: c.EstimateStartDate,
		EstimateEndDate:   c.EstimateEndDate,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

func DisclaimersFromModels(rows []models.ContractDisclaimer) []DisclaimerDTO {
	out := make([]DisclaimerDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, DisclaimerDTO{ID: row.ID, Description: row.Description, SortOrder: row.SortOrder})
	}
	return out
}

// optional trims the value and maps blanks to nil.
func optional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func normalizeState(value *string) string {
	if v := optional(value); v != nil {
		return strings.ToUpper(*v)
	}
	return DefaultState
}
