package validators

import (
	"errors"
	"net/http"
	"strings"
)

// TokenHeader carries the access token on login and refresh responses. Clients may send it back
// instead of an Authorization header.
const TokenHeader = "X-WQ-Token"

var ErrInvalidToken = errors.New("invalid auth token")

// AccessToken reads the credential from Authorization first, then from TokenHeader.
func AccessToken(h http.Header) (string, error) {
	if raw := h.Get("Authorization"); raw != "" {
		return BearerToken(raw)
	}
	return BearerToken(h.Get(TokenHeader))
}

// BearerToken extracts the token from an Authorization header value. The scheme is optional,
// but any scheme other than Bearer is rejected.
func BearerToken(raw string) (string, error) {
	scheme, token, found := strings.Cut(strings.TrimSpace(raw), " ")
	if !found {
		if strings.EqualFold(scheme, "bearer") {
			return "", ErrInvalidToken
		}
		token = scheme
	} else if !strings.EqualFold(scheme, "bearer") {
		return "", ErrInvalidToken
	}

	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", ErrInvalidToken
	}
	return token, nil
}
