package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry is how long issued bearer tokens remain valid. Tokens are
// issued once at register/login and carried by the client until they expire;
// there is no refresh flow.
const TokenExpiry = 30 * 24 * time.Hour // 30 days

// Predefined token errors.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token has expired")
)

// TokenClaims are the claims carried by issued bearer tokens. The subject is
// the user ID.
type TokenClaims struct {
	jwt.RegisteredClaims
}

// TokenService signs and verifies bearer tokens with a process-wide secret.
type TokenService struct {
	signingKey []byte
	issuer     string
}

// TokenConfig holds configuration for the token service.
type TokenConfig struct {
	// SigningKey is the secret used to sign tokens (required).
	SigningKey string

	// Issuer is the issuer claim for tokens.
	Issuer string
}

// NewTokenService creates a new token service.
func NewTokenService(cfg TokenConfig) *TokenService {
	issuer := cfg.Issuer
	if issuer == "" {
		issuer = "weathertunes-api"
	}

	return &TokenService{
		signingKey: []byte(cfg.SigningKey),
		issuer:     issuer,
	}
}

// Sign issues a new HS256 token for the given user ID.
func (s *TokenService) Sign(userID string) (string, error) {
	now := time.Now()

	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return signed, nil
}

// Verify validates a bearer token and returns its subject user ID.
func (s *TokenService) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.signingKey, nil
	}, jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %s", ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
