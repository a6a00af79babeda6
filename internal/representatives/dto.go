package representatives

import (
	"time"

	"github.com/angelmondragon/windowquote-backend/pkg/db/models"
	"github.com/angelmondragon/windowquote-backend/pkg/enums"
	"github.com/google/uuid"
)

// RepresentativeDTO is the transport shape that omits credentials.
type RepresentativeDTO struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Username    string     `json:"username"`
	Email       *string    `json:"email,omitempty"`
	Phone       *string    `json:"phone,omitempty"`
	Role        enums.Role `json:"role"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CreateRepresentativeDTO holds the data required to persist a new representative.
type CreateRepresentativeDTO struct {
	Name         string
	Username     string
	PasswordHash string
	Email        *string
	Phone        *string
	Role         enums.Role
	IsActive     *bool
}

func FromModel(r *models.Representative) *RepresentativeDTO {
	if r == nil {
		return nil
	}
	return &RepresentativeDTO{
		ID:          r.ID,
		Name:        r.Name,
		Username:    r.Username,
		Email:       r.Email,
		Phone:       r.Phone,
		Role:        r.Role,
		IsActive:    r.IsActive,
		LastLoginAt: r.LastLoginAt,
		CreatedAt:   r.CreatedAt,
	}
}

func (c CreateRepresentativeDTO) ToModel() *models.Representative {
	isActive := true
	if c.IsActive != nil {
		isActive = *c.IsActive
	}
	role := c.Role
	if role == "" {
		role = enums.RoleRepresentative
	}
	return &models.Representative{
		Name:         c.Name,
		Username:     c.Username,
		PasswordHash: c.PasswordHash,
		Email:        c.Email,
		Phone:        c.Phone,
		Role:         role,
		IsActive:     isActive,
	}
}
