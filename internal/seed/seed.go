// Package seed loads the default catalogue, contract clauses and the first admin account.
// Every step is idempotent: rows are matched on their natural key and only missing ones are inserted.
package seed

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/windowquote-backend/pkg/config"
	"github.com/angelmondragon/windowquote-backend/pkg/db/models"
	"github.com/angelmondragon/windowquote-backend/pkg/enums"
	"github.com/angelmondragon/windowquote-backend/pkg/logger"
	"github.com/angelmondragon/windowquote-backend/pkg/security"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

// Result reports how many rows each step inserted.
type Result struct {
	Inserted map[string]int
}

// Total sums inserted rows across steps.
func (r Result) Total() int {
	total := 0
	for _, n := range r.Inserted {
		total += n
	}
	return total
}

// Seeder writes default data through a gorm connection.
type Seeder struct {
	db        *gorm.DB
	admin     config.SeedConfig
	passwords config.PasswordConfig
	logg      *logger.Logger
}

func NewSeeder(db *gorm.DB, admin config.SeedConfig, passwords config.PasswordConfig, logg *logger.Logger) (*Seeder, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	return &Seeder{db: db, admin: admin, passwords: passwords, logg: logg}, nil
}

type step struct {
	name string
	run  func(ctx context.Context) (int, error)
}

// Run executes every step. A failing step does not stop the others; all failures are returned combined.
func (s *Seeder) Run(ctx context.Context) (Result, error) {
	res := Result{Inserted: map[string]int{}}
	steps := []step{
		{"representatives", s.seedAdmin},
		{"brands", func(ctx context.Context) (int, error) {
			return insertMissing(ctx, s.db, defaultBrands(), byName[models.Brand])
		}},
		{"frame_types", func(ctx context.Context) (int, error) {
			return insertMissing(ctx, s.db, defaultFrameTypes(), byName[models.FrameType])
		}},
		{"frame_colors", func(ctx context.Context) (int, error) {
			return insertMissing(ctx, s.db, defaultFrameColors(), byName[models.FrameColor])
		}},
		{"glass_types", func(ctx context.Context) (int, error) {
			return insertMissing(ctx, s.db, defaultGlassTypes(), byName[models.GlassType])
		}},
		{"grid_styles", func(ctx context.Context) (int, error) {
			return insertMissing(ctx, s.db, defaultGridStyles(), byName[models.GridStyle])
		}},
		{"grid_sizes", func(ctx context.Context) (int, error) { return insertMissing(ctx, s.db, defaultGridSizes(), bySize) }},
		{"product_configs", func(ctx context.Context) (int, error) {
			return insertMissing(ctx, s.db, defaultProductConfigs(), byNameAndCategory)
		}},
		{"disclaimers", func(ctx context.Context) (int, error) {
			return insertMissing(ctx, s.db, defaultDisclaimers(), byDescription)
		}},
	}

	var errs error
	for _, st := range steps {
		n, err := st.run(ctx)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("seeding %s: %w", st.name, err))
			continue
		}
		res.Inserted[st.name] = n
		if s.logg != nil {
			s.logg.Info(s.logg.WithFields(ctx, map[string]any{"table": st.name, "inserted": n}), "seed step complete")
		}
	}
	return res, errs
}

func (s *Seeder) seedAdmin(ctx context.Context) (int, error) {
	username := strings.ToLower(strings.TrimSpace(s.admin.AdminUsername))
	if username == "" {
		return 0, nil
	}
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Representative{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}
	hash, err := security.HashPassword(s.admin.AdminPassword, s.passwords)
	if err != nil {
		return 0, err
	}
	admin := &models.Representative{
		Name:         "Admin User",
		Username:     username,
		PasswordHash: hash,
		Role:         enums.RoleAdmin,
		IsActive:     true,
	}
	if email := strings.TrimSpace(s.admin.AdminEmail); email != "" {
		admin.Email = &email
	}
	if err := s.db.WithContext(ctx).Create(admin).Error; err != nil {
		return 0, err
	}
	return 1, nil
}

func byName[T interface {
	models.Brand | models.FrameType | models.FrameColor | models.GlassType | models.GridStyle
}](row *T) map[string]any {
	switch v := any(row).(type) {
	case *models.Brand:
		return map[string]any{"name": v.Name}
	case *models.FrameType:
		return map[string]any{"name": v.Name}
	case *models.FrameColor:
		return map[string]any{"name": v.Name}
	case *models.GlassType:
		return map[string]any{"name": v.Name}
	case *models.GridStyle:
		return map[string]any{"name": v.Name}
	}
	return nil
}

func bySize(row *models.GridSize) map[string]any {
	return map[string]any{"size": row.Size}
}

func byNameAndCategory(row *models.ProductConfig) map[string]any {
	return map[string]any{"name": row.Name, "category": row.Category}
}

func byDescription(row *models.Disclaimer) map[string]any {
	return map[string]any{"description": row.Description}
}

// insertMissing creates rows whose natural key is not present yet.
func insertMissing[T any](ctx context.Context, db *gorm.DB, rows []T, key func(*T) map[string]any) (int, error) {
	inserted := 0
	for i := range rows {
		var count int64
		if err := db.WithContext(ctx).Model(new(T)).Where(key(&rows[i])).Count(&count).Error; err != nil {
			return inserted, err
		}
		if count > 0 {
			continue
		}
		if err := db.WithContext(ctx).Create(&rows[i]).Error; err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}
