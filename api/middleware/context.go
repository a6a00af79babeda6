package middleware

import (
	"context"

	pkgAuth "github.com/angelmondragon/windowquote-backend/pkg/auth"
	"github.com/angelmondragon/windowquote-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/windowquote-backend/pkg/errors"
	"github.com/google/uuid"
)

type contextKey string

const (
	ctxRepresentativeID contextKey = "representative_id"
	ctxRole             contextKey = "actor_role"
	ctxUsername         contextKey = "username"
	ctxAccessID         contextKey = "access_id"
)

func RepresentativeIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRepresentativeID).(string); ok {
		return v
	}
	return ""
}

func RoleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(string); ok {
		return v
	}
	return ""
}

func UsernameFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUsername).(string); ok {
		return v
	}
	return ""
}

// AccessIDFromContext returns the jti of the access token that authenticated the request.
func AccessIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxAccessID).(string); ok {
		return v
	}
	return ""
}

// ActorFromContext rebuilds the authenticated actor. ok is false on unauthenticated requests.
func ActorFromContext(ctx context.Context) (pkgAuth.Actor, bool) {
	id, err := uuid.Parse(RepresentativeIDFromContext(ctx))
	if err != nil || id == uuid.Nil {
		return pkgAuth.Actor{}, false
	}
	role, err := enums.ParseRole(RoleFromContext(ctx))
	if err != nil {
		return pkgAuth.Actor{}, false
	}
	return pkgAuth.Actor{RepresentativeID: id, Role: role}, true
}

// WithActor injects the actor into the context.
func WithActor(ctx context.Context, actor pkgAuth.Actor) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxRepresentativeID, actor.RepresentativeID.String())
	return context.WithValue(ctx, ctxRole, string(actor.Role))
}

// RequireActor returns the authenticated actor or an unauthorized error.
func RequireActor(ctx context.Context) (pkgAuth.Actor, error) {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		return pkgAuth.Actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	return actor, nil
}
