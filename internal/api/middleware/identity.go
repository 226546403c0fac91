package middleware

import (
	"context"
	"net"
	"net/http"

	"github.com/weathertunes/weathertunes/internal/auth"
)

// identityKey is the context key for the resolved request identity.
type identityKey struct{}

// clientIPKey is the context key for the client IP address.
type clientIPKey struct{}

// Identity resolves the request's bearer credential into an Identity value
// and stores it, together with the client IP, in the request context. It
// runs on every request and never rejects: all failure paths collapse to
// the anonymous identity, and operations that require authentication check
// the identity themselves.
func Identity(resolver *auth.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := resolver.Resolve(r.Context(), r.Header)

			ctx := context.WithValue(r.Context(), identityKey{}, identity)
			ctx = context.WithValue(ctx, clientIPKey{}, clientIP(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity retrieves the resolved identity from the context. Returns the
// anonymous identity when the middleware did not run.
func GetIdentity(ctx context.Context) auth.Identity {
	if id, ok := ctx.Value(identityKey{}).(auth.Identity); ok {
		return id
	}
	return auth.Anonymous()
}

// GetClientIP retrieves the client IP address from the context.
func GetClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(clientIPKey{}).(string); ok {
		return ip
	}
	return ""
}

// clientIP returns the request's remote address without the port. RemoteAddr
// has already been rewritten by chi's RealIP middleware when forwarding
// headers are present.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
