package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/angelmondragon/windowquote-backend/api/responses"
	"github.com/angelmondragon/windowquote-backend/api/validators"
	pkgAuth "github.com/angelmondragon/windowquote-backend/pkg/auth"
	"github.com/angelmondragon/windowquote-backend/pkg/auth/session"
	pkgerrors "github.com/angelmondragon/windowquote-backend/pkg/errors"
	"github.com/angelmondragon/windowquote-backend/pkg/logger"
)

// TokenVerifier checks a bearer access token.
type TokenVerifier interface {
	Verify(token string) (*pkgAuth.Claims, error)
}

// Auth admits requests carrying a valid access token whose session is still live in Redis.
// A nil sessions checker skips the revocation check.
func Auth(tokens TokenVerifier, sessions session.AccessSessionChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, err := authenticate(r, tokens, sessions)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			if logg != nil {
				actor, _ := ActorFromContext(ctx)
				ctx = logg.WithRepresentativeID(ctx, actor.RepresentativeID.String())
				ctx = logg.WithActorRole(ctx, string(actor.Role))
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func authenticate(r *http.Request, tokens TokenVerifier, sessions session.AccessSessionChecker) (context.Context, error) {
	raw, err := validators.AccessToken(r.Header)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}

	claims, err := tokens.Verify(raw)
	switch {
	case errors.Is(err, pkgAuth.ErrTokenExpired):
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "access token expired")
	case err != nil:
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid access token")
	}

	if sessions != nil {
		live, err := sessions.HasSession(r.Context(), claims.SessionID())
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check session")
		}
		if !live {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session has ended")
		}
	}

	ctx := WithActor(r.Context(), claims.Actor())
	ctx = context.WithValue(ctx, ctxUsername, claims.Username)
	ctx = context.WithValue(ctx, ctxAccessID, claims.SessionID())
	return ctx, nil
}
