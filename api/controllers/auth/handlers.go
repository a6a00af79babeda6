package auth

import (
	"net/http"

	"github.com/angelmondragon/windowquote-backend/api/middleware"
	"github.com/angelmondragon/windowquote-backend/api/responses"
	"github.com/angelmondragon/windowquote-backend/api/validators"
	"github.com/angelmondragon/windowquote-backend/internal/auth"
	pkgerrors "github.com/angelmondragon/windowquote-backend/pkg/errors"
	"github.com/angelmondragon/windowquote-backend/pkg/logger"
)

// meResponse echoes the identity bound to the presented access token.
type meResponse struct {
	RepresentativeID string `json:"representative_id"`
	Username         string `json:"username"`
	Role             string `json:"role"`
	IsAdmin          bool   `json:"is_admin"`
}

// AuthLogin exchanges a username and password for a token pair.
func AuthLogin(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !available(w, r, svc, logg) {
			return
		}

		var body auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.Header().Set(validators.TokenHeader, result.AccessToken)
		responses.WriteSuccess(w, result)
	}
}

// AuthRefresh rotates the refresh token bound to the presented access token, which may be expired.
func AuthRefresh(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !available(w, r, svc, logg) {
			return
		}
		accessToken, ok := presentedToken(w, r, logg)
		if !ok {
			return
		}

		var body auth.RefreshRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pair, err := svc.Refresh(r.Context(), accessToken, body.RefreshToken)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		w.Header().Set(validators.TokenHeader, pair.AccessToken)
		responses.WriteSuccess(w, pair)
	}
}

// AuthLogout ends the session of the presented access token.
func AuthLogout(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !available(w, r, svc, logg) {
			return
		}
		accessToken, ok := presentedToken(w, r, logg)
		if !ok {
			return
		}

		if err := svc.Logout(r.Context(), accessToken); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

// AuthMe runs behind the Auth middleware and reports who the token belongs to.
func AuthMe(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := middleware.RequireActor(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, meResponse{
			RepresentativeID: actor.RepresentativeID.String(),
			Username:         middleware.UsernameFromContext(r.Context()),
			Role:             actor.Role.String(),
			IsAdmin:          actor.IsAdmin(),
		})
	}
}

func available(w http.ResponseWriter, r *http.Request, svc auth.Service, logg *logger.Logger) bool {
	if svc == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
		return false
	}
	return true
}

func presentedToken(w http.ResponseWriter, r *http.Request, logg *logger.Logger) (string, bool) {
	token, err := validators.AccessToken(r.Header)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
		return "", false
	}
	return token, true
}
