package reference

import (
	"context"

	"github.com/angelmondragon/windowquote-backend/internal/repo"
	"github.com/angelmondragon/windowquote-backend/pkg/db/models"
	"github.com/angelmondragon/windowquote-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes persistence helpers for the reference tables.
type Repository interface {
	Active(ctx context.Context) (*Tables, error)
	List(ctx context.Context, kind enums.ReferenceKind) (any, error)
	Find(ctx context.Context, kind enums.ReferenceKind, id uuid.UUID) (any, error)
	Create(ctx context.Context, row any) error
	Save(ctx context.Context, row any) error
	Delete(ctx context.Context, kind enums.ReferenceKind, id uuid.UUID) (bool, error)
	DefaultDisclaimers(ctx context.Context) ([]models.Disclaimer, error)
}

// Tables is one read of every reference table.
type Tables struct {
	Brands         []models.Brand
	FrameTypes     []models.FrameType
	FrameColors    []models.FrameColor
	GlassTypes     []models.GlassType
	GridStyles     []models.GridStyle
	GridSizes      []models.GridSize
	ProductConfigs []models.ProductConfig
}

type repositoryImpl struct {
	repo.Base
}

// NewRepository returns a reference repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{Base: repo.NewBase(db)}
}

// Admin-set sort_order leads; the natural key breaks ties.
const (
	byPositionName     = "sort_order, name"
	byPositionSize     = "sort_order, size"
	byCategoryPosition = "category, sort_order, name"
	byDisclaimerPos    = "sort_order, description"
)

func (r *repositoryImpl) Active(ctx context.Context) (*Tables, error) {
	db := r.DB(ctx)
	var out Tables
	if err := findActive(db, &out.Brands, byPositionName); err != nil {
		return nil, err
	}
	if err := findActive(db, &out.FrameTypes, byPositionName); err != nil {
		return nil, err
	}
	if err := findActive(db, &out.FrameColors, byPositionName); err != nil {
		return nil, err
	}
	if err := findActive(db, &out.GlassTypes, byPositionName); err != nil {
		return nil, err
	}
	if err := findActive(db, &out.GridStyles, byPositionName); err != nil {
		return nil, err
	}
	if err := findActive(db, &out.GridSizes, byPositionSize); err != nil {
		return nil, err
	}
	if err := findActive(db, &out.ProductConfigs, byCategoryPosition); err != nil {
		return nil, err
	}
	return &out, nil
}

func findActive[T any](db *gorm.DB, dest *[]T, order string) error {
	return db.Where("is_active = ?", true).Order(order).Find(dest).Error
}

func findAll[T any](db *gorm.DB, order string) ([]T, error) {
	var rows []T
	if err := db.Order(order).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func findOne[T any](db *gorm.DB, id uuid.UUID) (*T, error) {
	var row T
	if err := db.First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repositoryImpl) List(ctx context.Context, kind enums.ReferenceKind) (any, error) {
	db := r.DB(ctx)
	switch kind {
	case enums.ReferenceBrands:
		return findAll[models.Brand](db, byPositionName)
	case enums.ReferenceFrameTypes:
		return findAll[models.FrameType](db, byPositionName)
	case enums.ReferenceFrameColors:
		return findAll[models.FrameColor](db, byPositionName)
	case enums.ReferenceGlassTypes:
		return findAll[models.GlassType](db, byPositionName)
	case enums.ReferenceGridStyles:
		return findAll[models.GridStyle](db, byPositionName)
	case enums.ReferenceGridSizes:
		return findAll[models.GridSize](db, byPositionSize)
	case enums.ReferenceProductConfigs:
		return findAll[models.ProductConfig](db, byCategoryPosition)
	case enums.ReferenceDisclaimers:
		return findAll[models.Disclaimer](db, byDisclaimerPos)
	}
	return nil, errUnknownKind(kind)
}

func (r *repositoryImpl) Find(ctx context.Context, kind enums.ReferenceKind, id uuid.UUID) (any, error) {
	db := r.DB(ctx)
	switch kind {
	case enums.ReferenceBrands:
		return findOne[models.Brand](db, id)
	case enums.ReferenceFrameTypes:
		return findOne[models.FrameType](db, id)
	case enums.ReferenceFrameColors:
		return findOne[models.FrameColor](db, id)
	case enums.ReferenceGlassTypes:
		return findOne[models.GlassType](db, id)
	case enums.ReferenceGridStyles:
		return findOne[models.GridStyle](db, id)
	case enums.ReferenceGridSizes:
		return findOne[models.GridSize](db, id)
	case enums.ReferenceProductConfigs:
		return findOne[models.ProductConfig](db, id)
	case enums.ReferenceDisclaimers:
		return findOne[models.Disclaimer](db, id)
	}
	return nil, errUnknownKind(kind)
}

func (r *repositoryImpl) Create(ctx context.Context, row any) error {
	return r.DB(ctx).Create(row).Error
}

func (r *repositoryImpl) Save(ctx context.Context, row any) error {
	return r.DB(ctx).Save(row).Error
}

func (r *repositoryImpl) Delete(ctx context.Context, kind enums.ReferenceKind, id uuid.UUID) (bool, error) {
	model, err := modelFor(kind)
	if err != nil {
		return false, err
	}
	return r.DeleteByID(ctx, model, id)
}

func (r *repositoryImpl) DefaultDisclaimers(ctx context.Context) ([]models.Disclaimer, error) {
	var rows []models.Disclaimer
	err := r.DB(ctx).
		Where("is_active = ? AND include_by_default = ?", true, true).
		Order(byDisclaimerPos).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func modelFor(kind enums.ReferenceKind) (any, error) {
	switch kind {
	case enums.ReferenceBrands:
		return &models.Brand{}, nil
	case enums.ReferenceFrameTypes:
		return &models.FrameType{}, nil
	case enums.ReferenceFrameColors:
		return &models.FrameColor{}, nil
	case enums.ReferenceGlassTypes:
		return &models.GlassType{}, nil
	case enums.ReferenceGridStyles:
		return &models.GridStyle{}, nil
	case enums.ReferenceGridSizes:
		return &models.GridSize{}, nil
	case enums.ReferenceProductConfigs:
		return &models.ProductConfig{}, nil
	case enums.ReferenceDisclaimers:
		return &models.Disclaimer{}, nil
	}
	return nil, errUnknownKind(kind)
}
