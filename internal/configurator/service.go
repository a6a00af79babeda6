package configurator

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/angelmondragon/windowquote-backend/internal/pricing"
	"github.com/angelmondragon/windowquote-backend/internal/reference"
	"github.com/angelmondragon/windowquote-backend/internal/windows"
	pkgAuth "github.com/angelmondragon/windowquote-backend/pkg/auth"
	"github.com/angelmondragon/windowquote-backend/pkg/db/models"
	"github.com/angelmondragon/windowquote-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/windowquote-backend/pkg/errors"
	"github.com/angelmondragon/windowquote-backend/pkg/logger"
	"github.com/angelmondragon/windowquote-backend/pkg/metrics"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// View is the client-facing state of a wizard session after an operation.
type View struct {
	CustomerID     uuid.UUID                 `json:"customer_id"`
	Step           Step                      `json:"step"`
	Steps          []Step                    `json:"steps"`
	Draft          WindowConfig              `json:"draft"`
	CanAdvance     bool                      `json:"can_advance"`
	PricePreview   decimal.Decimal           `json:"price_preview"`
	ProductTypes   []reference.ProductConfig `json:"product_types"`
	OperationTypes []enums.OperationType     `json:"operation_types"`
	Cart           []CartItem                `json:"cart"`
	CartTotal      decimal.Decimal           `json:"cart_total"`
	Applied        bool                      `json:"applied"`
	Catalog        reference.Catalog         `json:"catalog"`
}

// SaveResult reports the lines written by a cart save.
type SaveResult struct {
	Saved []windows.WindowDTO `json:"saved"`
	View  *View               `json:"view"`
}

// Service runs wizard sessions stored per representative and customer.
type Service interface {
	Start(ctx context.Context, actor pkgAuth.Actor, customerID uuid.UUID) (*View, error)
	State(ctx context.Context, actor pkgAuth.Actor, customerID uuid.UUID) (*View, error)
	Apply(ctx context.Context, actor pkgAuth.Actor, customerID uuid.UUID, action Action) (*View, error)
	SaveCart(ctx context.Context, actor pkgAuth.Actor, customerID uuid.UUID) (*SaveResult, error)
	Discard(ctx context.Context, actor pkgAuth.Actor, customerID uuid.UUID) error
}

type sessionStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	WizardKey(representativeID, customerID string) string
}

type catalogProvider interface {
	Catalog(ctx context.Context) (*reference.Catalog, error)
}

type customerAuthorizer interface {
	Authorize(ctx context.Context, actor pkgAuth.Actor, customerID uuid.UUID) (*models.Customer, error)
}

type cartWriter interface {
	SaveCart(ctx context.Context, actor pkgAuth.Actor, customerID uuid.UUID, items []windows.NewWindow) ([]windows.WindowDTO, error)
}

// ServiceParams bundles the configurator service dependencies. Metrics and Logger are optional.
type ServiceParams struct {
	Store      sessionStore
	Catalog    catalogProvider
	Customers  customerAuthorizer
	Windows    cartWriter
	SessionTTL time.Duration
	Metrics    *metrics.QuoteMetrics
	Logger     *logger.Logger
}

type service struct {
	store     sessionStore
	catalog   catalogProvider
	customers customerAuthorizer
	windows   cartWriter
	ttl       time.Duration
	metrics   *metrics.QuoteMetrics
	logg      *logger.Logger
}

// NewService wires configurator dependencies.
func NewService(params ServiceParams) (Service, error) {
	switch {
	case params.Store == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "session store required")
	case params.Catalog == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "catalog provider required")
	case params.Customers == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "customer authorizer required")
	case params.Windows == nil:
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "cart writer required")
	}
	return &service{
		store:     params.Store,
		catalog:   params.Catalog,
		customers: params.Customers,
		windows:   params.Windows,
		ttl:       params.SessionTTL,
		metrics:   params.Metrics,
		logg:      params.Logger,
	}, nil
}

// Start opens a session with a fresh catalog. Unsaved cart items from a previous
// session for the same customer are carried over with their price snapshots.
func (s *service) Start(ctx context.Context, actor pkgAuth.Actor, customerID uuid.UUID) (*View, error) {
	if _, err := s.customers.Authorize(ctx, actor, customerID); err != nil {
		return nil, err
	}
	previous, err := s.load(ctx, actor, customerID)
	if err != nil {
		return nil, err
	}
	w, err := s.begin(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if previous != nil {
		snap := w.Snapshot()
		snap.Cart = previous.Cart()
		w = Restore(snap)
	}
	if err := s.save(ctx, actor, w); err != nil {
		return nil, err
	}
	return buildView(w, true), nil
}

func (s *service) State(ctx context.Context, actor pkgAuth.Actor, customerID uuid.UUID) (*View, error) {
	w, err := s.session(ctx, actor, customerID)
	if err != nil {
		return nil, err
	}
	return buildView(w, true), nil
}

func (s *service) Apply(ctx context.Context, actor pkgAuth.Actor, customerID uuid.UUID, action Action) (*View, error) {
	if err := action.Validate(); err != nil {
		return nil, err
	}
	w, err := s.session(ctx, actor, customerID)
	if err != nil {
		return nil, err
	}

	applied := apply(w, action)
	s.metrics.ObserveAction(string(action.Type), applied)
	if action.Type == ActionCommit && applied {
		s.metrics.IncCommitted()
	}
	if applied {
		if err := s.save(ctx, actor, w); err != nil {
			return nil, err
		}
	}
	return buildView(w, applied), nil
}

func apply(w *Wizard, action Action) bool {
	switch action.Type {
	case ActionSelect:
		return w.SelectOption(action.Step, *action.Choice)
	case ActionAdvance:
		return w.Advance()
	case ActionRetreat:
		return w.Retreat()
	case ActionJump:
		return w.JumpTo(action.Step)
	case ActionCommit:
		_, ok := w.CommitToCart()
		return ok
	case ActionRemove:
		return w.RemoveFromCart(*action.ItemID)
	case ActionEdit:
		return w.EditCartItem(*action.ItemID)
	case ActionClearCart:
		w.ClearCart()
		return true
	case ActionResetDraft:
		w.ResetDraft()
		return true
	}
	return false
}

// SaveCart persists the cart as customer lines. The cart is cleared only when every item
// was written; otherwise the session is left as it was and the error is returned.
func (s *service) SaveCart(ctx context.Context, actor pkgAuth.Actor, customerID uuid.UUID) (*SaveResult, error) {
	w, err := s.session(ctx, actor, customerID)
	if err != nil {
		return nil, err
	}
	cart := w.Cart()
	if len(cart) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	items := make([]windows.NewWindow, 0, len(cart))
	for _, item := range cart {
		items = append(items, toNewWindow(item))
	}

	started := time.Now()
	saved, err := s.windows.SaveCart(ctx, actor, customerID, items)
	if err != nil {
		s.metrics.ObserveCartSave(metrics.ResultFailure, time.Since(started))
		if typed := pkgerrors.As(err); typed != nil && typed.Code() != pkgerrors.CodeInternal {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart").
			WithDetails(map[string]any{"saved": len(saved), "requested": len(items)})
	}
	s.metrics.ObserveCartSave(metrics.ResultSuccess, time.Since(started))

	w.ClearCart()
	if err := s.save(ctx, actor, w); err != nil {
		return nil, err
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithFields(ctx, map[string]any{
			"customer_id": customerID.String(),
			"lines_saved": len(saved),
		}), "cart saved")
	}
	return &SaveResult{Saved: saved, View: buildView(w, true)}, nil
}

func (s *service) Discard(ctx context.Context, actor pkgAuth.Actor, customerID uuid.UUID) error {
	if _, err := s.customers.Authorize(ctx, actor, customerID); err != nil {
		return err
	}
	if err := s.store.Del(ctx, s.key(actor, customerID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "discard wizard session")
	}
	return nil
}

// session returns the stored wizard, starting one when none exists.
func (s *service) session(ctx context.Context, actor pkgAuth.Actor, customerID uuid.UUID) (*Wizard, error) {
	if _, err := s.customers.Authorize(ctx, actor, customerID); err != nil {
		return nil, err
	}
	w, err := s.load(ctx, actor, customerID)
	if err != nil {
		return nil, err
	}
	if w != nil {
		return w, nil
	}
	w, err = s.begin(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := s.save(ctx, actor, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *service) begin(ctx context.Context, customerID uuid.UUID) (*Wizard, error) {
	catalog, err := s.catalog.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	return New(customerID, *catalog), nil
}

func (s *service) load(ctx context.Context, actor pkgAuth.Actor, customerID uuid.UUID) (*Wizard, error) {
	raw, err := s.store.Get(ctx, s.key(actor, customerID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wizard session")
	}
	var snap Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "discarding unreadable wizard session")
		}
		return nil, nil
	}
	if snap.CustomerID != customerID {
		return nil, nil
	}
	return Restore(snap), nil
}

func (s *service) save(ctx context.Context, actor pkgAuth.Actor, w *Wizard) error {
	payload, err := json.Marshal(w.Snapshot())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode wizard session")
	}
	if err := s.store.Set(ctx, s.key(actor, w.CustomerID()), payload, s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store wizard session")
	}
	return nil
}

func (s *service) key(actor pkgAuth.Actor, customerID uuid.UUID) string {
	return s.store.WizardKey(actor.RepresentativeID.String(), customerID.String())
}

func buildView(w *Wizard, applied bool) *View {
	cart := w.Cart()
	total := decimal.Zero
	for _, item := range cart {
		total = total.Add(item.CalculatedPrice)
	}
	if cart == nil {
		cart = []CartItem{}
	}
	return &View{
		CustomerID:     w.CustomerID(),
		Step:           w.Step(),
		Steps:          Steps(),
		Draft:          w.Draft(),
		CanAdvance:     w.CanAdvance(w.Step()),
		PricePreview:   w.PricePreview(),
		ProductTypes:   w.ProductTypes(),
		OperationTypes: enums.OperationTypes(),
		Cart:           cart,
		CartTotal:      pricing.RoundCents(total),
		Applied:        applied,
		Catalog:        w.Catalog(),
	}
}

func toNewWindow(item CartItem) windows.NewWindow {
	var op *string
	if item.OperationType != "" {
		op = ptr(item.OperationType)
	}
	return windows.NewWindow{
		Location:        item.Location,
		Category:        item.Category,
		ProductConfigID: item.ProductConfigID,
		OperationType:   op,
		BrandID:         item.BrandID,
		FrameTypeID:     item.FrameTypeID,
		FrameColorID:    item.FrameColorID,
		GlassTypeID:     item.GlassTypeID,
		GridStyleID:     item.GridStyleID,
		GridSizeID:      item.GridSizeID,
		Width:           item.Width,
		Height:          item.Height,
		NoGrid:          item.NoGrid,
		CalculatedPrice: item.CalculatedPrice,
	}
}
