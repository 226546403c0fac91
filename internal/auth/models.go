// Package auth provides user accounts, credential handling, and
// request-scoped identity resolution.
package auth

import (
	"errors"
	"time"
)

// Predefined auth errors.
var (
	ErrUserNotFound = errors.New("user not found")

	// ErrUserExists is returned when registration hits the store's unique
	// email or username index.
	ErrUserExists = errors.New("user with this email or username already exists")

	// ErrInvalidCredentials covers every login failure. The same error is
	// returned for an unknown email and for a wrong password, so a login
	// response never reveals whether an account exists.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// User represents a registered account.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`

	// PasswordHash is a bcrypt digest. Never serialized outward.
	PasswordHash string `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
}

// AuthResponse is returned by register and login: the account identity plus
// a freshly signed bearer token.
type AuthResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Token    string `json:"token"`
}

// RegisterInput is the validated input for account registration.
// The email pattern and minimum password length mirror the user schema
// constraints enforced by the store.
type RegisterInput struct {
	Username string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}
