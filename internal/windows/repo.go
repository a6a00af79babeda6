package windows

import (
	"context"

	"github.com/angelmondragon/windowquote-backend/internal/repo"
	"github.com/angelmondragon/windowquote-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DisplayOrder is the order lines are listed in everywhere.
const DisplayOrder = "sort_order ASC, created_at ASC"

var nameAssociations = []string{"ProductConfig", "Brand", "FrameType", "FrameColor", "GlassType", "GridStyle", "GridSize"}

// PreloadNames joins the reference rows a line refers to. prefix addresses a nested
// association, e.g. "Windows." when loading through a customer.
func PreloadNames(db *gorm.DB, prefix string) *gorm.DB {
	for _, assoc := range nameAssociations {
		db = db.Preload(prefix + assoc)
	}
	return db
}

// Repository exposes persistence helpers for line items.
type Repository interface {
	MaxSortOrder(ctx context.Context, customerID uuid.UUID) (int, error)
	Insert(ctx context.Context, window *models.Window) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Window, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Window, error)
	Save(ctx context.Context, window *models.Window) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	SetSortOrders(ctx context.Context, customerID uuid.UUID, ids []uuid.UUID) error
}

type repository struct {
	repo.Base
}

// NewRepository returns a line item repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) MaxSortOrder(ctx context.Context, customerID uuid.UUID) (int, error) {
	var max int
	err := r.DB(ctx).
		Model(&models.Window{}).
		Where("customer_id = ?", customerID).
		Select("COALESCE(MAX(sort_order), 0)").
		Scan(&max).Error
	return max, err
}

func (r *repository) Insert(ctx context.Context, window *models.Window) error {
	return r.DB(ctx).Omit(nameAssociations...).Create(window).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Window, error) {
	var window models.Window
	if err := PreloadNames(r.DB(ctx), "").First(&window, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &window, nil
}

func (r *repository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.Window, error) {
	var rows []models.Window
	err := PreloadNames(r.DB(ctx), "").
		Where("customer_id = ?", customerID).
		Order(DisplayOrder).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) Save(ctx context.Context, window *models.Window) error {
	return r.DB(ctx).Omit(nameAssociations...).Save(window).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.DeleteByID(ctx, &models.Window{}, id)
}

func (r *repository) SetSortOrders(ctx context.Context, customerID uuid.UUID, ids []uuid.UUID) error {
	return r.DB(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range ids {
			err := tx.Model(&models.Window{}).
				Where("id = ? AND customer_id = ?", id, customerID).
				UpdateColumn("sort_order", i+1).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
