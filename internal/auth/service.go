package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/windowquote-backend/internal/representatives"
	pkgAuth "github.com/angelmondragon/windowquote-backend/pkg/auth"
	"github.com/angelmondragon/windowquote-backend/pkg/auth/session"
	"github.com/angelmondragon/windowquote-backend/pkg/config"
	"github.com/angelmondragon/windowquote-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/windowquote-backend/pkg/errors"
	"github.com/angelmondragon/windowquote-backend/pkg/logger"
	"github.com/angelmondragon/windowquote-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const invalidCredentialsMessage = "invalid credentials"

// Service defines the behavior needed by the auth controllers.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Refresh(ctx context.Context, accessToken, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, accessToken string) error
}

type service struct {
	reps        representativeRepository
	session     sessionManager
	tokens      tokenSigner
	passwordCfg config.PasswordConfig
	logg        *logger.Logger
}

type representativeRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.Representative, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Representative, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}

type tokenSigner interface {
	Mint(sub pkgAuth.Subject) (string, *pkgAuth.Claims, error)
	Inspect(token string) (*pkgAuth.Claims, error)
}

type sessionManager interface {
	Generate(ctx context.Context, accessID string, representativeID uuid.UUID) (string, error)
	Rotate(ctx context.Context, oldAccessID string, representativeID uuid.UUID, provided string) (string, string, error)
	Revoke(ctx context.Context, accessID string) error
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	RepresentativeRepo representativeRepository
	SessionManager     sessionManager
	Tokens             tokenSigner
	PasswordConfig     config.PasswordConfig
	Logger             *logger.Logger
}

// NewService constructs a login service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.RepresentativeRepo == nil {
		return nil, fmt.Errorf("representative repository is required")
	}
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	if params.Tokens == nil {
		return nil, fmt.Errorf("token signer is required")
	}
	return &service{
		reps:        params.RepresentativeRepo,
		session:     params.SessionManager,
		tokens:      params.Tokens,
		passwordCfg: params.PasswordConfig,
		logg:        params.Logger,
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	rep, err := s.authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.reps.UpdateLastLogin(ctx, rep.ID, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update last login")
	}
	rep.LastLoginAt = &now
	s.upgradeHash(ctx, rep, req.Password)

	pair, err := s.issue(ctx, rep)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{
		TokenPair:      *pair,
		Representative: representatives.FromModel(rep),
	}, nil
}

func (s *service) Refresh(ctx context.Context, accessToken, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokens.Inspect(accessToken)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token")
	}

	rep, err := s.reps.FindByID(ctx, claims.RepresentativeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup representative")
	}
	if !rep.IsActive {
		_ = s.session.Revoke(ctx, claims.SessionID())
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	newAccessID, newRefresh, err := s.session.Rotate(ctx, claims.SessionID(), rep.ID, refreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "rotate session")
	}

	accessToken, minted, err := s.tokens.Mint(subjectFor(rep, newAccessID))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: newRefresh, ExpiresAt: minted.ExpiresAt.Time}, nil
}

func (s *service) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.tokens.Inspect(accessToken)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token")
	}
	if err := s.session.Revoke(ctx, claims.SessionID()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "revoke session")
	}
	return nil
}

func (s *service) authenticate(ctx context.Context, username, password string) (*models.Representative, error) {
	input := strings.TrimSpace(username)
	if input == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	rep, err := s.reps.FindByUsername(ctx, input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup representative")
	}

	valid, err := security.VerifyPassword(password, rep.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid || !rep.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return rep, nil
}

// upgradeHash re-hashes the password when the stored parameters are weaker than configured.
// Failures are logged and never block the login.
func (s *service) upgradeHash(ctx context.Context, rep *models.Representative, password string) {
	if !security.NeedsRehash(rep.PasswordHash, s.passwordCfg) {
		return
	}
	hash, err := security.HashPassword(password, s.passwordCfg)
	if err == nil {
		err = s.reps.UpdatePasswordHash(ctx, rep.ID, hash)
	}
	if err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, "password rehash failed: "+err.Error())
		}
		return
	}
	rep.PasswordHash = hash
}

func (s *service) issue(ctx context.Context, rep *models.Representative) (*TokenPair, error) {
	accessID := session.NewAccessID()
	accessToken, minted, err := s.tokens.Mint(subjectFor(rep, accessID))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}
	refreshToken, err := s.session.Generate(ctx, accessID, rep.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store refresh token")
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken, ExpiresAt: minted.ExpiresAt.Time}, nil
}

func subjectFor(rep *models.Representative, accessID string) pkgAuth.Subject {
	return pkgAuth.Subject{
		RepresentativeID: rep.ID,
		Username:         rep.Username,
		Role:             rep.Role,
		SessionID:        accessID,
	}
}
