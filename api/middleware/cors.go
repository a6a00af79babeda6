package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"

	"github.com/angelmondragon/windowquote-backend/api/validators"
)

const corsMaxAgeSeconds = 600

var localCORSOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}

// CORS applies the browser origin policy. Origins may use a single wildcard such as
// https://*.example.com; an empty list admits only the local dev servers.
func CORS(origins []string) func(http.Handler) http.Handler {
	allowed := make([]string, 0, len(origins))
	for _, origin := range origins {
		if origin = strings.TrimRight(strings.TrimSpace(origin), "/"); origin != "" {
			allowed = append(allowed, origin)
		}
	}
	if len(allowed) == 0 {
		allowed = localCORSOrigins
	}

	return cors.New(cors.Options{
		AllowedOrigins: allowed,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			IdempotencyHeader,
			RequestIDHeader,
			validators.TokenHeader,
		},
		ExposedHeaders:   []string{RequestIDHeader, validators.TokenHeader, ReplayHeader, "Retry-After"},
		AllowCredentials: true,
		MaxAge:           corsMaxAgeSeconds,
	}).Handler
}
