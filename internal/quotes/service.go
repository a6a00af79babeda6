package quotes

import (
	"context"
	"time"

	"github.com/angelmondragon/windowquote-backend/internal/customers"
	"github.com/angelmondragon/windowquote-backend/internal/pricing"
	"github.com/angelmondragon/windowquote-backend/internal/windows"
	pkgAuth "github.com/angelmondragon/windowquote-backend/pkg/auth"
	"github.com/angelmondragon/windowquote-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/windowquote-backend/pkg/errors"
	"github.com/google/uuid"
)

// Kind names the document a quote is rendered into.
type Kind string

const (
	KindEstimate Kind = "estimate"
	KindContract Kind = "contract"
)

// Document is everything an external renderer needs to lay out an estimate or contract.
type Document struct {
	Kind               Kind                      `json:"kind"`
	GeneratedAt        time.Time                 `json:"generated_at"`
	Customer           customers.CustomerDTO     `json:"customer"`
	RepresentativeName *string                   `json:"representative_name,omitempty"`
	Lines              []windows.WindowDTO       `json:"lines"`
	Totals             pricing.Totals            `json:"totals"`
	Disclaimers        []customers.DisclaimerDTO `json:"disclaimers,omitempty"`
}

// Service assembles estimate and contract inputs.
type Service interface {
	Estimate(ctx context.Context, actor pkgAuth.Actor, customerID uuid.UUID) (*Document, error)
	Contract(ctx context.Context, actor pkgAuth.Actor, customerID uuid.UUID) (*Document, error)
}

type customerLoader interface {
	Load(ctx context.Context, actor pkgAuth.Actor, id uuid.UUID) (*models.Customer, error)
}

type service struct {
	customers customerLoader
	now       func() time.Time
}

// NewService wires quote dependencies.
func NewService(customers customerLoader) (Service, error) {
	if customers == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "customer loader required")
	}
	return &service{customers: customers, now: time.Now}, nil
}

func (s *service) Estimate(ctx context.Context, actor pkgAuth.Actor, customerID uuid.UUID) (*Document, error) {
	return s.build(ctx, actor, customerID, KindEstimate)
}

// Contract is the estimate plus the customer's contract clauses.
func (s *service) Contract(ctx context.Context, actor pkgAuth.Actor, customerID uuid.UUID) (*Document, error) {
	return s.build(ctx, actor, customerID, KindContract)
}

func (s *service) build(ctx context.Context, actor pkgAuth.Actor, customerID uuid.UUID, kind Kind) (*Document, error) {
	customer, err := s.customers.Load(ctx, actor, customerID)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Kind:        kind,
		GeneratedAt: s.now().UTC(),
		Customer:    *customers.FromModel(customer),
		Lines:       windows.FromModels(customer.Windows),
		Totals:      customers.Totals(customer),
	}
	if customer.Representative != nil {
		doc.RepresentativeName = &customer.Representative.Name
	}
	if kind == KindContract {
		doc.Disclaimers = customers.DisclaimersFromModels(customer.ContractDisclaimers)
	}
	return doc, nil
}
