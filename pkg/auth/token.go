package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/angelmondragon/windowquote-backend/pkg/config"
)

const clockSkew = 30 * time.Second

var (
	// ErrTokenExpired is returned by Verify for a well-signed token past its expiry.
	ErrTokenExpired = errors.New("access token expired")
	// ErrTokenInvalid covers every other rejection: bad signature, issuer, algorithm or shape.
	ErrTokenInvalid = errors.New("access token invalid")
)

// Signer mints and checks HS256 access tokens for one issuer.
type Signer struct {
	key    []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewSigner(cfg config.JWTConfig) (*Signer, error) {
	switch {
	case cfg.Secret == "":
		return nil, errors.New("jwt secret is required")
	case strings.TrimSpace(cfg.Issuer) == "":
		return nil, errors.New("jwt issuer is required")
	case cfg.ExpirationMinutes <= 0:
		return nil, errors.New("jwt expiration minutes must be positive")
	}
	return &Signer{
		key:    []byte(cfg.Secret),
		issuer: cfg.Issuer,
		ttl:    time.Duration(cfg.ExpirationMinutes) * time.Minute,
		now:    time.Now,
	}, nil
}

// TTL is how long a freshly minted token stays valid.
func (s *Signer) TTL() time.Duration {
	return s.ttl
}

// Mint signs a token for sub. A missing SessionID is generated.
func (s *Signer) Mint(sub Subject) (string, *Claims, error) {
	if sub.RepresentativeID == uuid.Nil {
		return "", nil, errors.New("representative id is required")
	}
	if !sub.Role.IsValid() {
		return "", nil, fmt.Errorf("invalid role %q", sub.Role)
	}
	sessionID := strings.TrimSpace(sub.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	now := s.now().UTC()
	claims := &Claims{
		RepresentativeID: sub.RepresentativeID,
		Username:         sub.Username,
		Role:             sub.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   sub.RepresentativeID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			ID:        sessionID,
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", nil, fmt.Errorf("sign access token: %w", err)
	}
	return signed, claims, nil
}

// Verify checks signature, issuer and time claims.
func (s *Signer) Verify(token string) (*Claims, error) {
	return s.parse(token, jwt.WithExpirationRequired(), jwt.WithLeeway(clockSkew))
}

// Inspect checks the signature and issuer but ignores expiry, so refresh and logout
// can still identify the session behind an expired token.
func (s *Signer) Inspect(token string) (*Claims, error) {
	return s.parse(token, jwt.WithoutClaimsValidation())
}

func (s *Signer) parse(token string, opts ...jwt.ParserOption) (*Claims, error) {
	opts = append(opts,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	claims := &Claims{}
	_, err := jwt.NewParser(opts...).ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	})
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrTokenExpired
	default:
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}
	if claims.Issuer != s.issuer {
		return nil, fmt.Errorf("%w: unexpected issuer %q", ErrTokenInvalid, claims.Issuer)
	}
	if claims.RepresentativeID == uuid.Nil || claims.ID == "" {
		return nil, fmt.Errorf("%w: missing representative or session", ErrTokenInvalid)
	}
	return claims, nil
}
