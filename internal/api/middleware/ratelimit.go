package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/httprate"

	"github.com/weathertunes/weathertunes/internal/api/models"
)

// RateLimitConfig holds configuration for rate limiting.
type RateLimitConfig struct {
	// Requests per window
	RequestLimit int
	// Window duration
	WindowLength time.Duration
}

// StandardRateLimit applies to the GraphQL endpoint (100 req/min per client).
var StandardRateLimit = RateLimitConfig{
	RequestLimit: 100,
	WindowLength: time.Minute,
}

// RateLimitByClient creates a rate limiter keyed by authenticated user when
// the request carries a resolved identity, falling back to the client IP.
func RateLimitByClient(cfg RateLimitConfig) func(http.Handler) http.Handler {
	return httprate.Limit(
		cfg.RequestLimit,
		cfg.WindowLength,
		httprate.WithKeyFuncs(keyByIdentityOrIP),
		httprate.WithLimitHandler(rateLimitExceededHandler),
	)
}

// keyByIdentityOrIP returns the user ID if authenticated, otherwise the
// client IP.
func keyByIdentityOrIP(r *http.Request) (string, error) {
	if identity := GetIdentity(r.Context()); !identity.IsAnonymous() {
		return "user:" + identity.User.ID, nil
	}
	return httprate.KeyByRealIP(r)
}

// rateLimitExceededHandler writes an RFC7807 Problem response when the rate
// limit is exceeded.
func rateLimitExceededHandler(w http.ResponseWriter, r *http.Request) {
	traceID := GetRequestID(r.Context())

	problem := models.NewTooManyRequests(traceID, "Rate limit exceeded. Please try again later.")
	problem.Instance = r.URL.Path

	// httprate doesn't expose the exact reset time; use the window length.
	w.Header().Set("Retry-After", strconv.Itoa(60))

	problem.Write(w)
}
