package auth

import (
	"github.com/angelmondragon/windowquote-backend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Subject is the representative an access token is minted for.
type Subject struct {
	RepresentativeID uuid.UUID
	Username         string
	Role             enums.Role
	// SessionID becomes the token's jti and keys the refresh record in Redis.
	SessionID string
}

// Claims is the payload of an access token.
type Claims struct {
	RepresentativeID uuid.UUID  `json:"rid"`
	Username         string     `json:"usr,omitempty"`
	Role             enums.Role `json:"role"`
	jwt.RegisteredClaims
}

// SessionID returns the jti the refresh record is stored under.
func (c *Claims) SessionID() string {
	if c == nil {
		return ""
	}
	return c.ID
}

func (c *Claims) Actor() Actor {
	if c == nil {
		return Actor{}
	}
	return Actor{RepresentativeID: c.RepresentativeID, Role: c.Role}
}
