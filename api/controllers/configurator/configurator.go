package configurator

import (
	"net/http"

	"github.com/angelmondragon/windowquote-backend/api/middleware"
	"github.com/angelmondragon/windowquote-backend/api/responses"
	"github.com/angelmondragon/windowquote-backend/api/validators"
	internalconfigurator "github.com/angelmondragon/windowquote-backend/internal/configurator"
	pkgAuth "github.com/angelmondragon/windowquote-backend/pkg/auth"
	pkgerrors "github.com/angelmondragon/windowquote-backend/pkg/errors"
	"github.com/angelmondragon/windowquote-backend/pkg/logger"
	"github.com/google/uuid"
)

// State returns the wizard session of a customer, opening one on first access.
func State(svc internalconfigurator.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, customerID, ok := sessionTarget(w, r, svc, logg)
		if !ok {
			return
		}
		view, err := svc.State(r.Context(), actor, customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// Start opens a fresh draft against the current catalog. Unsaved cart items are kept.
func Start(svc internalconfigurator.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, customerID, ok := sessionTarget(w, r, svc, logg)
		if !ok {
			return
		}
		view, err := svc.Start(r.Context(), actor, customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// Apply runs one wizard action. Refused transitions answer 200 with applied=false.
func Apply(svc internalconfigurator.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, customerID, ok := sessionTarget(w, r, svc, logg)
		if !ok {
			return
		}

		var action internalconfigurator.Action
		if err := validators.DecodeJSONBody(r, &action); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Apply(r.Context(), actor, customerID, action)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// Save persists the cart as customer lines and empties it.
func Save(svc internalconfigurator.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, customerID, ok := sessionTarget(w, r, svc, logg)
		if !ok {
			return
		}
		result, err := svc.SaveCart(r.Context(), actor, customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, result)
	}
}

func Discard(svc internalconfigurator.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, customerID, ok := sessionTarget(w, r, svc, logg)
		if !ok {
			return
		}
		if err := svc.Discard(r.Context(), actor, customerID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

func sessionTarget(w http.ResponseWriter, r *http.Request, svc internalconfigurator.Service, logg *logger.Logger) (pkgAuth.Actor, uuid.UUID, bool) {
	if svc == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "configurator service unavailable"))
		return pkgAuth.Actor{}, uuid.Nil, false
	}
	actor, err := middleware.RequireActor(r.Context())
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return pkgAuth.Actor{}, uuid.Nil, false
	}
	customerID, err := validators.ParseUUIDParam(r, "customerID")
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return pkgAuth.Actor{}, uuid.Nil, false
	}
	return actor, customerID, true
}
