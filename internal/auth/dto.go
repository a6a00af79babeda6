package auth

import (
	"time"

	"github.com/angelmondragon/windowquote-backend/internal/representatives"
)

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries the refresh token issued alongside the access token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// TokenPair is the access/refresh token couple returned by login and refresh.
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// LoginResponse contains the tokens and the authenticated representative.
type LoginResponse struct {
	TokenPair
	Representative *representatives.RepresentativeDTO `json:"representative"`
}
