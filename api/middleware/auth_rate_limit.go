package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/angelmondragon/windowquote-backend/api/responses"
	pkgerrors "github.com/angelmondragon/windowquote-backend/pkg/errors"
	"github.com/angelmondragon/windowquote-backend/pkg/logger"
	pkgredis "github.com/angelmondragon/windowquote-backend/pkg/redis"
)

const maxCredentialBody = 64 << 10

// RateLimitStore is the counter surface the auth throttle needs.
type RateLimitStore interface {
	Hit(ctx context.Context, key string, window time.Duration) (pkgredis.Hit, error)
	RateLimitKey(scope string) string
}

// AuthRateLimitPolicy throttles one auth endpoint. A zero limit disables that dimension.
type AuthRateLimitPolicy struct {
	Name          string
	Window        time.Duration
	IPLimit       int
	UsernameLimit int
}

func (p AuthRateLimitPolicy) enabled() bool {
	return p.Window > 0 && (p.IPLimit > 0 || p.UsernameLimit > 0)
}

func (p AuthRateLimitPolicy) name() string {
	if name := strings.ToLower(strings.TrimSpace(p.Name)); name != "" {
		return name
	}
	return "auth"
}

type rateBucket struct {
	dimension string
	subject   string
	limit     int
}

// AuthRateLimit counts attempts per client IP and per username within a fixed window.
// Usernames are hashed before they reach Redis or the logs.
func AuthRateLimit(policy AuthRateLimitPolicy, store RateLimitStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || store == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			var buckets []rateBucket
			if policy.IPLimit > 0 {
				if ip := clientIP(r); ip != "" {
					buckets = append(buckets, rateBucket{dimension: "ip", subject: ip, limit: policy.IPLimit})
				}
			}
			if policy.UsernameLimit > 0 {
				body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxCredentialBody))
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "request body could not be read"))
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(body))
				if username := usernameFromBody(body); username != "" {
					buckets = append(buckets, rateBucket{dimension: "username", subject: UsernameDigest(username), limit: policy.UsernameLimit})
				}
			}

			for _, b := range buckets {
				key := store.RateLimitKey(b.dimension + ":" + policy.name() + ":" + b.subject)
				hit, err := store.Hit(ctx, key, policy.Window)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limit check failed"))
					return
				}
				if hit.Count > int64(b.limit) {
					rejectRateLimited(ctx, logg, w, policy, b, hit)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func rejectRateLimited(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, policy AuthRateLimitPolicy, b rateBucket, hit pkgredis.Hit) {
	if logg != nil {
		logg.Warn(logg.WithFields(ctx, map[string]any{
			"policy":    policy.name(),
			"dimension": b.dimension,
			"subject":   b.subject,
			"attempts":  hit.Count,
			"limit":     b.limit,
			"reset_in":  hit.ResetIn.String(),
		}), "auth.rate_limited")
	}
	w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(hit.ResetIn)))
	responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "too many attempts, try again later"))
}

func retryAfterSeconds(d time.Duration) int {
	if d <= 0 {
		return 1
	}
	return int(math.Ceil(d.Seconds()))
}

// UsernameDigest is the stable identifier used for per-username counters.
func UsernameDigest(username string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(username))))
	return hex.EncodeToString(sum[:])
}

func usernameFromBody(payload []byte) string {
	var body struct {
		Username string `json:"username"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	return strings.TrimSpace(body.Username)
}

// clientIP trusts the first well-formed X-Forwarded-For entry, then X-Real-IP, then the peer address.
func clientIP(r *http.Request) string {
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		first, _, _ := strings.Cut(header, ",")
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip.String()
		}
	}
	if ip := net.ParseIP(strings.TrimSpace(r.Header.Get("X-Real-IP"))); ip != nil {
		return ip.String()
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
