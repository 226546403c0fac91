package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Service provides registration, login, and user lookup.
type Service struct {
	users    UserRepository
	tokens   *TokenService
	validate *validator.Validate
}

// ServiceConfig holds configuration for the auth service.
type ServiceConfig struct {
	UserRepo     UserRepository
	TokenService *TokenService
}

// NewService creates a new auth service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		users:    cfg.UserRepo,
		tokens:   cfg.TokenService,
		validate: validator.New(),
	}
}

// Register creates a new account. The password is hashed before it reaches
// the store; uniqueness violations surface as ErrUserExists.
func (s *Service) Register(ctx context.Context, username, email, password string) (*AuthResponse, error) {
	input := RegisterInput{
		Username: strings.TrimSpace(username),
		Email:    email,
		Password: password,
	}
	if err := s.validate.Struct(input); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			return nil, fmt.Errorf("validation error: %s", fieldError(ve[0]))
		}
		return nil, err
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.users.Insert(ctx, user)
	if err != nil {
		return nil, err
	}

	return s.respond(created)
}

// Login authenticates an existing account by email and password. Any
// mismatch returns ErrInvalidCredentials without distinguishing an unknown
// email from a wrong password.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.respond(user)
}

// GetUser retrieves a user by ID.
func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *Service) respond(user *User) (*AuthResponse, error) {
	token, err := s.tokens.Sign(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Token:    token,
	}, nil
}

// fieldError converts a single validation error into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
