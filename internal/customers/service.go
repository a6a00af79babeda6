package customers

import (
	"context"
	"errors"
	"strings"

	"github.com/angelmondragon/windowquote-backend/internal/pricing"
	"github.com/angelmondragon/windowquote-backend/internal/windows"
	pkgAuth "github.com/angelmondragon/windowquote-backend/pkg/auth"
	"github.com/angelmondragon/windowquote-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/windowquote-backend/pkg/errors"
	"github.com/angelmondragon/windowquote-backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var maxDiscount = decimal.NewFromInt(100)

// Service manages customer records and enforces representative ownership.
type Service interface {
	Create(ctx context.Context, actor pkgAuth.Actor, in CreateCustomerInput) (*CustomerDTO, error)
	Get(ctx context.Context, actor pkgAuth.Actor, id uuid.UUID) (*DetailDTO, error)
	List(ctx context.Context, actor pkgAuth.Actor, params ListParams) (*ListResult, error)
	UpdateTerms(ctx context.Context, actor pkgAuth.Actor, id uuid.UUID, in UpdateTermsInput) (*CustomerDTO, error)
	ReplaceDisclaimers(ctx context.Context, actor pkgAuth.Actor, id uuid.UUID, descriptions []string) ([]DisclaimerDTO, error)
	Delete(ctx context.Context, actor pkgAuth.Actor, id uuid.UUID) error
	Authorize(ctx context.Context, actor pkgAuth.Actor, id uuid.UUID) (*models.Customer, error)
	Load(ctx context.Context, actor pkgAuth.Actor, id uuid.UUID) (*models.Customer, error)
}

// ListParams configures customer search and pagination.
type ListParams struct {
	Search           string
	RepresentativeID *uuid.UUID
	Limit            int
	Cursor           string
}

// ListResult wraps returned customers and the cursor for the next page.
type ListResult struct {
	Items  []CustomerDTO `json:"items"`
	Cursor string        `json:"cursor"`
}

// DetailDTO is a customer with its ordered lines, order totals and contract clauses.
type DetailDTO struct {
	CustomerDTO
	RepresentativeName *string             `json:"representative_name,omitempty"`
	Windows            []windows.WindowDTO `json:"windows"`
	Totals             pricing.Totals      `json:"totals"`
	Disclaimers        []DisclaimerDTO     `json:"disclaimers"`
}

type disclaimerSource interface {
	DefaultDisclaimers(ctx context.Context) ([]models.Disclaimer, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ServiceParams bundles the customer service dependencies.
type ServiceParams struct {
	Repo        Repository
	Disclaimers disclaimerSource
	Tx          txRunner
}

type service struct {
	repo        Repository
	disclaimers disclaimerSource
	tx          txRunner
}

// NewService wires customer dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "customers repository required")
	}
	if params.Disclaimers == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "disclaimer source required")
	}
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "transaction runner required")
	}
	return &service{repo: params.Repo, disclaimers: params.Disclaimers, tx: params.Tx}, nil
}

func (s *service) Create(ctx context.Context, actor pkgAuth.Actor, in CreateCustomerInput) (*CustomerDTO, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, pkgerrors.Field("name", "is required")
	}
	if err := validateTerms(in.DiscountPercent, in.DownPaymentAmount); err != nil {
		return nil, err
	}

	owner := actor.RepresentativeID
	if in.RepresentativeID != nil && *in.RepresentativeID != owner {
		if !actor.IsAdmin() {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "cannot create customers for another representative")
		}
		owner = *in.RepresentativeID
	}
	if owner == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "representative required")
	}

	customer := &models.Customer{
		RepresentativeID:  owner,
		Name:              name,
		Address:           optional(in.Address),
		City:              optional(in.City),
		State:             normalizeState(in.State),
		Zip:               optional(in.Zip),
		Email:             optional(in.Email),
		Phone:             optional(in.Phone),
		AltPhone:          optional(in.AltPhone),
		Comments:          optional(in.Comments),
		DownPaymentAmount: in.DownPaymentAmount,
		EstimateStartDate: optional(in.EstimateStartDate),
		EstimateEndDate:   optional(in.EstimateEndDate),
	}
	if in.DiscountPercent != nil {
		customer.DiscountPercent = *in.DiscountPercent
	}

	templates, err := s.disclaimers.DefaultDisclaimers(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load default disclaimers")
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.Create(ctx, customer); err != nil {
			return err
		}
		rows := make([]models.ContractDisclaimer, 0, len(templates))
		for i, tpl := range templates {
			rows = append(rows, models.ContractDisclaimer{
				CustomerID:  customer.ID,
				Description: tpl.Description,
				SortOrder:   i + 1,
			})
		}
		return repo.CreateDisclaimers(ctx, rows)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create customer")
	}
	return FromModel(customer), nil
}

func (s *service) Get(ctx context.Context, actor pkgAuth.Actor, id uuid.UUID) (*DetailDTO, error) {
	customer, err := s.Load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	detail := &DetailDTO{
		CustomerDTO: *FromModel(customer),
		Windows:     windows.FromModels(customer.Windows),
		Totals:      Totals(customer),
		Disclaimers: DisclaimersFromModels(customer.ContractDisclaimers),
	}
	if customer.Representative != nil {
		detail.RepresentativeName = &customer.Representative.Name
	}
	return detail, nil
}

// Totals aggregates the customer's lines under their discount and down payment terms.
// Manual prices win over calculated ones line by line.
func Totals(customer *models.Customer) pricing.Totals {
	lines := make([]pricing.Line, 0, len(customer.Windows))
	for _, w := range customer.Windows {
		lines = append(lines, windows.Line(w))
	}
	return pricing.Aggregate(lines, pricing.Terms{
		DiscountPercent: customer.DiscountPercent,
		DownPayment:     customer.DownPaymentAmount,
	})
}

// Load returns the customer with its lines, reference names and clauses after checking ownership.
func (s *service) Load(ctx context.Context, actor pkgAuth.Actor, id uuid.UUID) (*models.Customer, error) {
	customer, err := s.repo.FindDetailed(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "load customer")
	}
	if !actor.CanAccess(customer.RepresentativeID) {
		return nil, forbidden()
	}
	return customer, nil
}

// Authorize returns the bare customer row when the actor may act on it.
func (s *service) Authorize(ctx context.Context, actor pkgAuth.Actor, id uuid.UUID) (*models.Customer, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "load customer")
	}
	if !actor.CanAccess(customer.RepresentativeID) {
		return nil, forbidden()
	}
	return customer, nil
}

func (s *service) List(ctx context.Context, actor pkgAuth.Actor, params ListParams) (*ListResult, error) {
	query := listCustomersParams{
		Search: params.Search,
		Limit:  params.Limit,
	}
	switch {
	case !actor.IsAdmin():
		if actor.RepresentativeID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "representative required")
		}
		id := actor.RepresentativeID
		query.RepresentativeID = &id
	case params.RepresentativeID != nil:
		query.RepresentativeID = params.RepresentativeID
	}
	if params.Cursor != "" {
		cursor, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.Cursor = cursor
	}

	rows, next, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customers")
	}
	items := make([]CustomerDTO, 0, len(rows))
	for i := range rows {
		items = append(items, *FromModel(&rows[i]))
	}
	cursor := ""
	if next != nil {
		cursor = next.Encode()
	}
	return &ListResult{Items: items, Cursor: cursor}, nil
}

func (s *service) UpdateTerms(ctx context.Context, actor pkgAuth.Actor, id uuid.UUID, in UpdateTermsInput) (*CustomerDTO, error) {
	if err := validateTerms(in.DiscountPercent, in.DownPaymentAmount); err != nil {
		return nil, err
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, pkgerrors.Field("name", "is required")
	}
	if _, err := s.Authorize(ctx, actor, id); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateColumns(ctx, id, termUpdates(in)); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update customer")
	}
	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "reload customer")
	}
	return FromModel(updated), nil
}

func (s *service) ReplaceDisclaimers(ctx context.Context, actor pkgAuth.Actor, id uuid.UUID, descriptions []string) ([]DisclaimerDTO, error) {
	if _, err := s.Authorize(ctx, actor, id); err != nil {
		return nil, err
	}
	rows := make([]models.ContractDisclaimer, 0, len(descriptions))
	for _, text := range descriptions {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		rows = append(rows, models.ContractDisclaimer{CustomerID: id, Description: text, SortOrder: len(rows) + 1})
	}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).ReplaceDisclaimers(ctx, id, rows)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace disclaimers")
	}
	return DisclaimersFromModels(rows), nil
}

func (s *service) Delete(ctx context.Context, actor pkgAuth.Actor, id uuid.UUID) error {
	if _, err := s.Authorize(ctx, actor, id); err != nil {
		return err
	}
	var found bool
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		var err error
		found, err = s.repo.WithTx(tx).Delete(ctx, id)
		return err
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete customer")
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
	}
	return nil
}

func termUpdates(in UpdateTermsInput) map[string]any {
	updates := map[string]any{}
	if in.Name != nil {
		updates["name"] = strings.TrimSpace(*in.Name)
	}
	text := map[string]*string{
		"address":             in.Address,
		"city":                in.City,
		"zip":                 in.Zip,
		"email":               in.Email,
		"phone":               in.Phone,
		"alt_phone":           in.AltPhone,
		"comments":            in.Comments,
		"estimate_start_date": in.EstimateStartDate,
		"estimate_end_date":   in.EstimateEndDate,
	}
	for column, value := range text {
		if value != nil {
			updates[column] = optional(value)
		}
	}
	if in.State != nil {
		updates["state"] = normalizeState(in.State)
	}
	if in.DiscountPercent != nil {
		updates["discount_percent"] = *in.DiscountPercent
	}
	switch {
	case in.ClearDownPayment:
		updates["down_payment_amount"] = nil
	case in.DownPaymentAmount != nil:
		updates["down_payment_amount"] = *in.DownPaymentAmount
	}
	return updates
}

func validateTerms(discount, downPayment *decimal.Decimal) error {
	if discount != nil && (discount.IsNegative() || discount.GreaterThan(maxDiscount)) {
		return pkgerrors.Field("discount_percent", "must be between 0 and 100")
	}
	if downPayment != nil && downPayment.IsNegative() {
		return pkgerrors.Field("down_payment_amount", "must be at least 0")
	}
	return nil
}

func forbidden() error {
	return pkgerrors.New(pkgerrors.CodeForbidden, "customer belongs to another representative")
}

func notFoundOr(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, msg)
}
