package representatives

import (
	"context"
	"time"

	"github.com/angelmondragon/windowquote-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes representative persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a representatives repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new representative and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateRepresentativeDTO) (*models.Representative, error) {
	rep := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(rep).Error; err != nil {
		return nil, err
	}
	return rep, nil
}

// FindByUsername retrieves the representative matching the provided username.
func (r *Repository) FindByUsername(ctx context.Context, username string) (*models.Representative, error) {
	var rep models.Representative
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&rep).Error; err != nil {
		return nil, err
	}
	return &rep, nil
}

// FindByID loads a representative by UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Representative, error) {
	var rep models.Representative
	if err := r.db.WithContext(ctx).First(&rep, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rep, nil
}

// UpdateLastLogin refreshes the representative's last_login_at timestamp.
func (r *Repository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Representative{}).
		Where("id = ?", id).
		UpdateColumn("last_login_at", at).Error
}

// UpdatePasswordHash replaces the stored hash, used when hashing parameters change.
func (r *Repository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	return r.db.WithContext(ctx).
		Model(&models.Representative{}).
		Where("id = ?", id).
		UpdateColumn("password_hash", hash).Error
}
