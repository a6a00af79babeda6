package customers

import (
	"context"
	"strings"

	"github.com/angelmondragon/windowquote-backend/internal/repo"
	"github.com/angelmondragon/windowquote-backend/internal/windows"
	"github.com/angelmondragon/windowquote-backend/pkg/db/models"
	"github.com/angelmondragon/windowquote-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes persistence helpers for customers.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, customer *models.Customer) error
	CreateDisclaimers(ctx context.Context, rows []models.ContractDisclaimer) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	FindDetailed(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	List(ctx context.Context, params listCustomersParams) ([]models.Customer, *pagination.Cursor, error)
	UpdateColumns(ctx context.Context, id uuid.UUID, updates map[string]any) error
	ReplaceDisclaimers(ctx context.Context, customerID uuid.UUID, rows []models.ContractDisclaimer) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type listCustomersParams struct {
	RepresentativeID *uuid.UUID
	Search           string
	Limit            int
	Cursor           *pagination.Cursor
}

type repositoryImpl struct {
	repo.Base
}

// NewRepository returns a customers repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{Base: repo.NewBase(db)}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	return &repositoryImpl{Base: r.Bind(tx)}
}

func (r *repositoryImpl) Create(ctx context.Context, customer *models.Customer) error {
	return r.DB(ctx).Omit("Representative", "Windows", "ContractDisclaimers").Create(customer).Error
}

func (r *repositoryImpl) CreateDisclaimers(ctx context.Context, rows []models.ContractDisclaimer) error {
	if len(rows) == 0 {
		return nil
	}
	return r.DB(ctx).Create(&rows).Error
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := r.DB(ctx).First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *repositoryImpl) FindDetailed(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	query := r.DB(ctx).
		Preload("Representative").
		Preload("Windows", func(db *gorm.DB) *gorm.DB {
			return db.Order(windows.DisplayOrder)
		}).
		Preload("ContractDisclaimers", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		})
	query = windows.PreloadNames(query, "Windows.")

	var customer models.Customer
	if err := query.First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *repositoryImpl) List(ctx context.Context, params listCustomersParams) ([]models.Customer, *pagination.Cursor, error) {
	query := r.DB(ctx).Model(&models.Customer{})
	if params.RepresentativeID != nil {
		query = query.Where("representative_id = ?", *params.RepresentativeID)
	}
	if search := strings.ToLower(strings.TrimSpace(params.Search)); search != "" {
		pattern := "%" + likeEscaper.Replace(search) + "%"
		query = query.Where(
			`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(COALESCE(address, '')) LIKE ? ESCAPE '\' OR LOWER(COALESCE(city, '')) LIKE ? ESCAPE '\' OR LOWER(COALESCE(zip, '')) LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern, pattern,
		)
	}
	if params.Cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var rows []models.Customer
	if err := query.Order("created_at DESC, id DESC").Limit(pagination.FetchLimit(params.Limit)).Find(&rows).Error; err != nil {
		return nil, nil, err
	}
	page, next := pagination.Trim(rows, params.Limit, func(c models.Customer) pagination.Cursor {
		return pagination.Cursor{CreatedAt: c.CreatedAt, ID: c.ID}
	})
	return page, next, nil
}

func (r *repositoryImpl) UpdateColumns(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.DB(ctx).
		Model(&models.Customer{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repositoryImpl) ReplaceDisclaimers(ctx context.Context, customerID uuid.UUID, rows []models.ContractDisclaimer) error {
	if err := r.DB(ctx).Where("customer_id = ?", customerID).Delete(&models.ContractDisclaimer{}).Error; err != nil {
		return err
	}
	return r.CreateDisclaimers(ctx, rows)
}

// Delete removes the customer with its lines and contract clauses.
func (r *repositoryImpl) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	db := r.DB(ctx)
	if err := db.Where("customer_id = ?", id).Delete(&models.Window{}).Error; err != nil {
		return false, err
	}
	if err := db.Where("customer_id = ?", id).Delete(&models.ContractDisclaimer{}).Error; err != nil {
		return false, err
	}
	return r.DeleteByID(ctx, &models.Customer{}, id)
}
