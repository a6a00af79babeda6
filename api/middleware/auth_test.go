package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/angelmondragon/windowquote-backend/pkg/auth"
	"github.com/angelmondragon/windowquote-backend/pkg/auth/session"
	"github.com/angelmondragon/windowquote-backend/pkg/config"
	"github.com/angelmondragon/windowquote-backend/pkg/enums"
	"github.com/google/uuid"
)

func TestAuthRejectsMissingToken(t *testing.T) {
	signer := testTokenSigner(t)
	handler := Auth(signer, stubSessionVerifier{ok: true}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	signer := testTokenSigner(t)
	handler := Auth(signer, stubSessionVerifier{ok: true}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer invalid")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthReportsExpiredToken(t *testing.T) {
	expired, err := auth.NewSigner(config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 1})
	if err != nil {
		t.Fatalf("signer: %v", err)
	}
	token, _, err := expired.Mint(auth.Subject{RepresentativeID: uuid.New(), Role: enums.RoleRepresentative})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	verifier := expiredVerifier{}
	handler := Auth(verifier, stubSessionVerifier{ok: true}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "expired") {
		t.Fatalf("expected expiry message, got %s", resp.Body.String())
	}
}

type expiredVerifier struct{}

func (expiredVerifier) Verify(string) (*auth.Claims, error) {
	return nil, auth.ErrTokenExpired
}

func TestAuthRejectsRevokedSession(t *testing.T) {
	signer := testTokenSigner(t)
	token, _ := mintTestToken(t, signer, enums.RoleRepresentative)

	handler := Auth(signer, stubSessionVerifier{ok: false}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthSessionLookupFailure(t *testing.T) {
	signer := testTokenSigner(t)
	token, _ := mintTestToken(t, signer, enums.RoleRepresentative)

	handler := Auth(signer, stubSessionVerifier{err: errors.New("redis down")}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}

func TestAuthAllowsValidToken(t *testing.T) {
	signer := testTokenSigner(t)
	token, repID := mintTestToken(t, signer, enums.RoleRepresentative)

	var captured struct {
		actor    auth.Actor
		ok       bool
		username string
		accessID string
	}
	handler := Auth(signer, stubSessionVerifier{ok: true}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.actor, captured.ok = ActorFromContext(r.Context())
		captured.username = UsernameFromContext(r.Context())
		captured.accessID = AccessIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !captured.ok {
		t.Fatal("expected actor in context")
	}
	if captured.actor.RepresentativeID != repID {
		t.Fatalf("expected representative %s got %s", repID, captured.actor.RepresentativeID)
	}
	if captured.actor.Role != enums.RoleRepresentative {
		t.Fatalf("expected role representative got %s", captured.actor.Role)
	}
	if captured.username != "keoni" {
		t.Fatalf("expected username keoni got %s", captured.username)
	}
	if captured.accessID == "" {
		t.Fatal("expected access id in context")
	}
}

func TestRequireRoleBlocksRepresentative(t *testing.T) {
	handler := RequireRole(nil, enums.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithActor(req.Context(), auth.Actor{RepresentativeID: uuid.New(), Role: enums.RoleRepresentative}))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}

	admin := httptest.NewRequest(http.MethodGet, "/", nil)
	admin = admin.WithContext(WithActor(admin.Context(), auth.Actor{RepresentativeID: uuid.New(), Role: enums.RoleAdmin}))
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestRequireRoleRejectsAnonymous(t *testing.T) {
	handler := RequireRole(nil, enums.RoleAdmin, enums.RoleRepresentative)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthAcceptsTokenHeader(t *testing.T) {
	signer := testTokenSigner(t)
	token, _ := mintTestToken(t, signer, enums.RoleRepresentative)

	handler := Auth(signer, nil, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-WQ-Token", token)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204 got %d", resp.Code)
	}
}

func TestActorFromContextMissing(t *testing.T) {
	if _, ok := ActorFromContext(context.Background()); ok {
		t.Fatal("expected no actor on empty context")
	}
}

func testTokenSigner(t *testing.T) *auth.Signer {
	t.Helper()
	signer, err := auth.NewSigner(config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60})
	if err != nil {
		t.Fatalf("signer: %v", err)
	}
	return signer
}

func mintTestToken(t *testing.T, signer *auth.Signer, role enums.Role) (string, uuid.UUID) {
	t.Helper()
	repID := uuid.New()
	token, _, err := signer.Mint(auth.Subject{
		RepresentativeID: repID,
		Username:         "keoni",
		Role:             role,
		SessionID:        session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token, repID
}

type stubSessionVerifier struct {
	ok  bool
	err error
}

func (s stubSessionVerifier) HasSession(ctx context.Context, accessID string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.ok, nil
}
