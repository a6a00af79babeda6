package quotes

import (
	"context"
	"net/http"

	"github.com/angelmondragon/windowquote-backend/api/middleware"
	"github.com/angelmondragon/windowquote-backend/api/responses"
	"github.com/angelmondragon/windowquote-backend/api/validators"
	internalquotes "github.com/angelmondragon/windowquote-backend/internal/quotes"
	pkgAuth "github.com/angelmondragon/windowquote-backend/pkg/auth"
	pkgerrors "github.com/angelmondragon/windowquote-backend/pkg/errors"
	"github.com/angelmondragon/windowquote-backend/pkg/logger"
	"github.com/google/uuid"
)

type documentBuilder func(ctx context.Context, actor pkgAuth.Actor, customerID uuid.UUID) (*internalquotes.Document, error)

// Estimate renders the priced estimate for a customer.
func Estimate(svc internalquotes.Service, logg *logger.Logger) http.HandlerFunc {
	if svc == nil {
		return unavailable(logg)
	}
	return document(svc.Estimate, logg)
}

// Contract renders the estimate plus contract terms and disclaimers.
func Contract(svc internalquotes.Service, logg *logger.Logger) http.HandlerFunc {
	if svc == nil {
		return unavailable(logg)
	}
	return document(svc.Contract, logg)
}

func document(build documentBuilder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := middleware.RequireActor(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		customerID, err := validators.ParseUUIDParam(r, "customerID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		doc, err := build(r.Context(), actor, customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, doc)
	}
}

func unavailable(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quotes service unavailable"))
	}
}
