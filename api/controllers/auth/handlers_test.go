package auth

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/windowquote-backend/internal/auth"
	"github.com/angelmondragon/windowquote-backend/pkg/logger"
)

type recordingService struct {
	accessToken  string
	refreshToken string
	loggedOut    string
}

func (s *recordingService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return &auth.LoginResponse{TokenPair: auth.TokenPair{AccessToken: "access-1", RefreshToken: "refresh-1"}}, nil
}

func (s *recordingService) Refresh(ctx context.Context, accessToken, refreshToken string) (*auth.TokenPair, error) {
	s.accessToken, s.refreshToken = accessToken, refreshToken
	return &auth.TokenPair{AccessToken: "access-2", RefreshToken: "refresh-2"}, nil
}

func (s *recordingService) Logout(ctx context.Context, accessToken string) error {
	s.loggedOut = accessToken
	return nil
}

func quietLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestAuthRefreshPassesBothTokens(t *testing.T) {
	svc := &recordingService{}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", strings.NewReader(`{"refresh_token":"refresh-1"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer expired-access")
	resp := httptest.NewRecorder()

	AuthRefresh(svc, quietLogger()).ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, "expired-access", svc.accessToken)
	assert.Equal(t, "refresh-1", svc.refreshToken)
	assert.Equal(t, "access-2", resp.Header().Get("X-WQ-Token"))
}

func TestAuthRefreshRequiresAccessToken(t *testing.T) {
	svc := &recordingService{}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", strings.NewReader(`{"refresh_token":"refresh-1"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	AuthRefresh(svc, quietLogger()).ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Empty(t, svc.refreshToken)
}

func TestAuthLogoutAcceptsTokenHeader(t *testing.T) {
	svc := &recordingService{}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("X-WQ-Token", "access-1")
	resp := httptest.NewRecorder()

	AuthLogout(svc, quietLogger()).ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNoContent, resp.Code)
	assert.Equal(t, "access-1", svc.loggedOut)
}

func TestAuthHandlersWithoutService(t *testing.T) {
	resp := httptest.NewRecorder()
	AuthLogin(nil, quietLogger()).ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil))
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}

func TestAuthMeRequiresActor(t *testing.T) {
	resp := httptest.NewRecorder()
	AuthMe(quietLogger()).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
