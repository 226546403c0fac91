package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// Identity is the per-request resolved subject: either an authenticated user
// or anonymous. It is created once per inbound request and discarded when
// the request completes.
type Identity struct {
	// User is the resolved account, or nil for anonymous access.
	User *User
}

// Anonymous returns the anonymous identity.
func Anonymous() Identity {
	return Identity{}
}

// IsAnonymous reports whether no user was resolved for the request.
func (i Identity) IsAnonymous() bool {
	return i.User == nil
}

// Resolver derives a request-scoped Identity from the Authorization header.
//
// Resolution is total: it never returns an error and never panics past its
// boundary. A missing header, a non-Bearer header, an invalid or expired
// token, and a token whose subject no longer exists all collapse to the
// anonymous identity. Rejecting anonymous access is the responsibility of
// the individual operation, not of this resolver, because it runs on every
// request including public ones.
type Resolver struct {
	tokens *TokenService
	users  UserRepository
	logger zerolog.Logger
}

// NewResolver creates a new identity resolver.
func NewResolver(tokens *TokenService, users UserRepository, logger zerolog.Logger) *Resolver {
	return &Resolver{tokens: tokens, users: users, logger: logger}
}

// Resolve extracts the bearer credential from the given headers and resolves
// it to an Identity. It is read-only and safe for concurrent use.
func (r *Resolver) Resolve(ctx context.Context, headers http.Header) Identity {
	token := bearerToken(headers)
	if token == "" {
		return Anonymous()
	}

	userID, err := r.tokens.Verify(token)
	if err != nil {
		r.logger.Debug().Err(err).Msg("bearer token rejected, proceeding anonymously")
		return Anonymous()
	}

	user, err := r.users.FindByID(ctx, userID)
	if err != nil {
		// Covers deleted accounts and transient store failures alike: the
		// request proceeds unauthenticated rather than failing here.
		r.logger.Debug().Err(err).Str("user_id", userID).Msg("token subject not found, proceeding anonymously")
		return Anonymous()
	}

	return Identity{User: user}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Returns "" for a missing header, a non-Bearer scheme, or an empty
// credential.
func bearerToken(headers http.Header) string {
	authHeader := headers.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	const bearerPrefix = "Bearer "
	if len(authHeader) < len(bearerPrefix) ||
		!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}

	return authHeader[len(bearerPrefix):]
}
