package windows

import (
	"context"
	"errors"
	"strings"

	pkgAuth "github.com/angelmondragon/windowquote-backend/pkg/auth"
	"github.com/angelmondragon/windowquote-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/windowquote-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service persists and edits a customer's line items.
type Service interface {
	SaveCart(ctx context.Context, actor pkgAuth.Actor, customerID uuid.UUID, items []NewWindow) ([]WindowDTO, error)
	List(ctx context.Context, actor pkgAuth.Actor, customerID uuid.UUID) ([]WindowDTO, error)
	Update(ctx context.Context, actor pkgAuth.Actor, windowID uuid.UUID, in UpdateInput) (*WindowDTO, error)
	Delete(ctx context.Context, actor pkgAuth.Actor, windowID uuid.UUID) error
	Reorder(ctx context.Context, actor pkgAuth.Actor, customerID uuid.UUID, windowIDs []uuid.UUID) ([]WindowDTO, error)
}

type customerAuthorizer interface {
	Authorize(ctx context.Context, actor pkgAuth.Actor, customerID uuid.UUID) (*models.Customer, error)
}

type service struct {
	repo      Repository
	customers customerAuthorizer
}

// NewService wires line item dependencies.
func NewService(repo Repository, customers customerAuthorizer) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "windows repository required")
	}
	if customers == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "customer authorizer required")
	}
	return &service{repo: repo, customers: customers}, nil
}

// SaveCart inserts items one by one with sort positions continuing after the customer's
// current last line. Inserts are not wrapped in a transaction: on failure the rows already
// written stay and are returned together with the error.
func (s *service) SaveCart(ctx context.Context, actor pkgAuth.Actor, customerID uuid.UUID, items []NewWindow) ([]WindowDTO, error) {
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	if _, err := s.customers.Authorize(ctx, actor, customerID); err != nil {
		return nil, err
	}

	next, err := s.repo.MaxSortOrder(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read sort order")
	}

	saved := make([]WindowDTO, 0, len(items))
	for _, item := range items {
		next++
		row := item.toModel(customerID, next)
		if err := s.repo.Insert(ctx, row); err != nil {
			return saved, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert window").
				WithDetails(map[string]any{"saved": len(saved), "requested": len(items)})
		}
		saved = append(saved, *FromModel(row))
	}
	return saved, nil
}

func (s *service) List(ctx context.Context, actor pkgAuth.Actor, customerID uuid.UUID) ([]WindowDTO, error) {
	if _, err := s.customers.Authorize(ctx, actor, customerID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list windows")
	}
	return FromModels(rows), nil
}

func (s *service) Update(ctx context.Context, actor pkgAuth.Actor, windowID uuid.UUID, in UpdateInput) (*WindowDTO, error) {
	if in.ManualPrice != nil && in.ManualPrice.IsNegative() {
		return nil, pkgerrors.Field("manual_price", "must be at least 0")
	}
	if in.Location != nil && strings.TrimSpace(*in.Location) == "" {
		return nil, pkgerrors.Field("location", "is required")
	}

	window, err := s.load(ctx, actor, windowID)
	if err != nil {
		return nil, err
	}
	applyUpdate(window, in)
	clearAssociations(window)

	if err := s.repo.Save(ctx, window); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update window")
	}
	updated, err := s.repo.FindByID(ctx, windowID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload window")
	}
	return FromModel(updated), nil
}

func (s *service) Delete(ctx context.Context, actor pkgAuth.Actor, windowID uuid.UUID) error {
	if _, err := s.load(ctx, actor, windowID); err != nil {
		return err
	}
	found, err := s.repo.Delete(ctx, windowID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete window")
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "window not found")
	}
	return nil
}

func (s *service) Reorder(ctx context.Context, actor pkgAuth.Actor, customerID uuid.UUID, windowIDs []uuid.UUID) ([]WindowDTO, error) {
	if len(windowIDs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "window ids required")
	}
	if _, err := s.customers.Authorize(ctx, actor, customerID); err != nil {
		return nil, err
	}

	rows, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list windows")
	}
	owned := make(map[uuid.UUID]bool, len(rows))
	for _, row := range rows {
		owned[row.ID] = true
	}
	seen := make(map[uuid.UUID]bool, len(windowIDs))
	for _, id := range windowIDs {
		if !owned[id] || seen[id] {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "window ids must be distinct lines of this customer").
				WithDetails(map[string]any{"window_id": id})
		}
		seen[id] = true
	}
	// Unlisted lines follow the listed ones in their current order.
	order := append(make([]uuid.UUID, 0, len(rows)), windowIDs...)
	for _, row := range rows {
		if !seen[row.ID] {
			order = append(order, row.ID)
		}
	}

	if err := s.repo.SetSortOrders(ctx, customerID, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reorder windows")
	}
	return s.List(ctx, actor, customerID)
}

// load fetches a window and checks the actor owns its customer.
func (s *service) load(ctx context.Context, actor pkgAuth.Actor, windowID uuid.UUID) (*models.Window, error) {
	window, err := s.repo.FindByID(ctx, windowID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "window not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load window")
	}
	if _, err := s.customers.Authorize(ctx, actor, window.CustomerID); err != nil {
		return nil, err
	}
	return window, nil
}

func applyUpdate(w *models.Window, in UpdateInput) {
	if in.Location != nil {
		w.Location = strings.TrimSpace(*in.Location)
	}
	if in.ProductConfigID != nil {
		w.ProductConfigID = in.ProductConfigID
	}
	if in.OperationType != nil {
		w.OperationType = in.OperationType
	}
	if in.BrandID != nil {
		w.BrandID = in.BrandID
	}
	if in.FrameTypeID != nil {
		w.FrameTypeID = in.FrameTypeID
	}
	if in.FrameColorID != nil {
		w.FrameColorID = in.FrameColorID
	}
	if in.GlassTypeID != nil {
		w.GlassTypeID = in.GlassTypeID
	}
	if in.GridStyleID != nil || in.GridSizeID != nil {
		w.NoGrid = false
		if in.GridStyleID != nil {
			w.GridStyleID = in.GridStyleID
		}
		if in.GridSizeID != nil {
			w.GridSizeID = in.GridSizeID
		}
	}
	if in.NoGrid != nil {
		w.NoGrid = *in.NoGrid
	}
	if w.NoGrid {
		w.GridStyleID = nil
		w.GridSizeID = nil
	}
	if in.Width != nil {
		w.Width = *in.Width
	}
	if in.Height != nil {
		w.Height = *in.Height
	}
	switch {
	case in.ClearManualPrice:
		w.ManualPrice = nil
	case in.ManualPrice != nil:
		price := *in.ManualPrice
		w.ManualPrice = &price
	}
	if in.SpecialInstructions != nil {
		if text := strings.TrimSpace(*in.SpecialInstructions); text != "" {
			w.SpecialInstructions = &text
		} else {
			w.SpecialInstructions = nil
		}
	}
	if in.SortOrder != nil {
		w.SortOrder = *in.SortOrder
	}
}

func clearAssociations(w *models.Window) {
	w.ProductConfig = nil
	w.Brand = nil
	w.FrameType = nil
	w.FrameColor = nil
	w.GlassType = nil
	w.GridStyle = nil
	w.GridSize = nil
}
