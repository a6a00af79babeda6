package reference

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/angelmondragon/windowquote-backend/internal/pricing"
	pkgdb "github.com/angelmondragon/windowquote-backend/pkg/db"
	"github.com/angelmondragon/windowquote-backend/pkg/db/models"
	"github.com/angelmondragon/windowquote-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/windowquote-backend/pkg/errors"
	"github.com/angelmondragon/windowquote-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Service serves the active catalog to the configurator and reference CRUD to admins.
type Service interface {
	Catalog(ctx context.Context) (*Catalog, error)
	List(ctx context.Context, kind enums.ReferenceKind) (any, error)
	Create(ctx context.Context, kind enums.ReferenceKind, in OptionInput) (any, error)
	Update(ctx context.Context, kind enums.ReferenceKind, id uuid.UUID, in OptionInput) (any, error)
	Delete(ctx context.Context, kind enums.ReferenceKind, id uuid.UUID) error
}

type catalogCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CatalogKey() string
}

// ServiceParams bundles the reference service dependencies. Cache is optional.
type ServiceParams struct {
	Repo     Repository
	Cache    catalogCache
	CacheTTL time.Duration
	Logger   *logger.Logger
}

type service struct {
	repo  Repository
	cache catalogCache
	ttl   time.Duration
	logg  *logger.Logger
}

// NewService wires reference dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "reference repository required")
	}
	return &service{
		repo:  params.Repo,
		cache: params.Cache,
		ttl:   params.CacheTTL,
		logg:  params.Logger,
	}, nil
}

func (s *service) Catalog(ctx context.Context) (*Catalog, error) {
	if cached, ok := s.cached(ctx); ok {
		return cached, nil
	}

	tables, err := s.repo.Active(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load reference data")
	}
	catalog := FromTables(tables)
	s.store(ctx, &catalog)
	return &catalog, nil
}

func (s *service) cached(ctx context.Context) (*Catalog, bool) {
	if s.cache == nil || s.ttl <= 0 {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, s.cache.CatalogKey())
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.warn(ctx, "catalog cache read failed", err)
		}
		return nil, false
	}
	var catalog Catalog
	if err := json.Unmarshal([]byte(raw), &catalog); err != nil {
		s.warn(ctx, "catalog cache decode failed", err)
		return nil, false
	}
	return &catalog, true
}

func (s *service) store(ctx context.Context, catalog *Catalog) {
	if s.cache == nil || s.ttl <= 0 {
		return
	}
	payload, err := json.Marshal(catalog)
	if err != nil {
		s.warn(ctx, "catalog cache encode failed", err)
		return
	}
	if err := s.cache.Set(ctx, s.cache.CatalogKey(), payload, s.ttl); err != nil {
		s.warn(ctx, "catalog cache write failed", err)
	}
}

func (s *service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, s.cache.CatalogKey()); err != nil {
		s.warn(ctx, "catalog cache invalidation failed", err)
	}
}

func (s *service) warn(ctx context.Context, msg string, err error) {
	if s.logg == nil {
		return
	}
	s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), msg)
}

func (s *service) List(ctx context.Context, kind enums.ReferenceKind) (any, error) {
	if !kind.IsValid() {
		return nil, errUnknownKind(kind)
	}
	rows, err := s.repo.List(ctx, kind)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reference data")
	}
	return rows, nil
}

func (s *service) Create(ctx context.Context, kind enums.ReferenceKind, in OptionInput) (any, error) {
	row, err := newRow(kind, in)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, mapWriteError(err, "create reference row")
	}
	s.invalidate(ctx)
	return row, nil
}

func (s *service) Update(ctx context.Context, kind enums.ReferenceKind, id uuid.UUID, in OptionInput) (any, error) {
	if !kind.IsValid() {
		return nil, errUnknownKind(kind)
	}
	for field, value := range map[string]*string{"name": in.Name, "size": in.Size, "description": in.Description} {
		if value != nil && trimmed(value) == "" && requiresText(kind, field) {
			return nil, pkgerrors.Field(field, "is required")
		}
	}

	row, err := s.repo.Find(ctx, kind, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "reference row not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load reference row")
	}
	applyInput(row, in)
	if err := s.repo.Save(ctx, row); err != nil {
		return nil, mapWriteError(err, "update reference row")
	}
	s.invalidate(ctx)
	return row, nil
}

func (s *service) Delete(ctx context.Context, kind enums.ReferenceKind, id uuid.UUID) error {
	if !kind.IsValid() {
		return errUnknownKind(kind)
	}
	found, err := s.repo.Delete(ctx, kind, id)
	if err != nil {
		if pkgdb.IsForeignKeyViolation(err) {
			return pkgerrors.New(pkgerrors.CodeConflict, "reference row is in use; deactivate it instead")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete reference row")
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "reference row not found")
	}
	s.invalidate(ctx)
	return nil
}

func requiresText(kind enums.ReferenceKind, field string) bool {
	switch field {
	case "size":
		return kind == enums.ReferenceGridSizes
	case "description":
		return kind == enums.ReferenceDisclaimers
	}
	return kind != enums.ReferenceGridSizes && kind != enums.ReferenceDisclaimers
}

func mapWriteError(err error, msg string) error {
	if pkgdb.IsUniqueViolation(err, "") {
		return pkgerrors.New(pkgerrors.CodeConflict, "a row with this name already exists")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, msg)
}

// FromTables projects active reference rows onto the catalog shape.
func FromTables(t *Tables) Catalog {
	if t == nil {
		return Catalog{}
	}
	out := Catalog{
		Brands:         make([]pricing.Option, 0, len(t.Brands)),
		FrameTypes:     make([]pricing.Option, 0, len(t.FrameTypes)),
		FrameColors:    make([]FrameColor, 0, len(t.FrameColors)),
		GlassTypes:     make([]ImageOption, 0, len(t.GlassTypes)),
		GridStyles:     make([]ImageOption, 0, len(t.GridStyles)),
		GridSizes:      make([]GridSize, 0, len(t.GridSizes)),
		ProductConfigs: make([]ProductConfig, 0, len(t.ProductConfigs)),
	}
	for _, b := range t.Brands {
		out.Brands = append(out.Brands, pricing.Option{ID: b.ID, Name: b.Name, Factor: b.Factor})
	}
	for _, ft := range t.FrameTypes {
		out.FrameTypes = append(out.FrameTypes, pricing.Option{ID: ft.ID, Name: ft.Name, Factor: ft.Factor})
	}
	for _, fc := range t.FrameColors {
		out.FrameColors = append(out.FrameColors, FrameColor{
			Option:   pricing.Option{ID: fc.ID, Name: fc.Name, Factor: fc.Factor},
			HexColor: fc.HexColor,
		})
	}
	for _, g := range t.GlassTypes {
		out.GlassTypes = append(out.GlassTypes, ImageOption{
			Option:    pricing.Option{ID: g.ID, Name: g.Name, Factor: g.Factor},
			ImagePath: g.ImagePath,
		})
	}
	for _, gs := range t.GridStyles {
		out.GridStyles = append(out.GridStyles, ImageOption{
			Option:    pricing.Option{ID: gs.ID, Name: gs.Name, Factor: gs.Factor},
			ImagePath: gs.ImagePath,
		})
	}
	for _, size := range t.GridSizes {
		out.GridSizes = append(out.GridSizes, GridSize{ID: size.ID, Size: size.Size})
	}
	for _, pc := range t.ProductConfigs {
		out.ProductConfigs = append(out.ProductConfigs, productConfigFromModel(pc))
	}
	return out
}

func productConfigFromModel(pc models.ProductConfig) ProductConfig {
	return ProductConfig{
		ID:            pc.ID,
		Name:          pc.Name,
		Category:      pc.Category,
		OperationType: pc.OperationType,
		LiteCount:     pc.LiteCount,
		ImagePath:     pc.ImagePath,
	}
}
