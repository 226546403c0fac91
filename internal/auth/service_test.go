package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weathertunes/weathertunes/internal/auth"
)

func newTestService() *auth.Service {
	return auth.NewService(auth.ServiceConfig{
		UserRepo:     auth.NewInMemoryUserRepository(),
		TokenService: auth.NewTokenService(auth.TokenConfig{SigningKey: "test-signing-key"}),
	})
}

func TestService_Register(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	resp, err := svc.Register(ctx, "alice", "alice@example.com", "password123")
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, "alice@example.com", resp.Email)
	assert.NotEmpty(t, resp.Token)
}

func TestService_Register_IssuesVerifiableToken(t *testing.T) {
	tokens := auth.NewTokenService(auth.TokenConfig{SigningKey: "test-signing-key"})
	svc := auth.NewService(auth.ServiceConfig{
		UserRepo:     auth.NewInMemoryUserRepository(),
		TokenService: tokens,
	})

	resp, err := svc.Register(context.Background(), "alice", "alice@example.com", "password123")
	require.NoError(t, err)

	userID, err := tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, userID)
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "alice@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice2", "alice@example.com", "password456")
	assert.ErrorIs(t, err, auth.ErrUserExists)
}

func TestService_Register_Validation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		email    string
		password string
		wantMsg  string
	}{
		{"missing username", "", "alice@example.com", "password123", "username is required"},
		{"missing email", "alice", "", "password123", "email is required"},
		{"invalid email", "alice", "not-an-email", "password123", "email must be a valid email"},
		{"short password", "alice", "alice@example.com", "12345", "password must be at least 6 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.username, tt.email, tt.password)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestService_Login(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice", "alice@example.com", "password123")
	require.NoError(t, err)

	resp, err := svc.Login(ctx, "alice@example.com", "password123")
	require.NoError(t, err)

	assert.Equal(t, registered.ID, resp.ID)
	assert.Equal(t, "alice", resp.Username)
	assert.NotEmpty(t, resp.Token)
}

func TestService_Login_InvalidCredentials(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice", "alice@example.com", "password123")
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "alice@example.com", "wrong-password"},
		{"unknown email", "nobody@example.com", "password123"},
		{"empty email", "", "password123"},
		{"empty password", "alice@example.com", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tt.email, tt.password)
			// Unknown email and wrong password are indistinguishable to the caller.
			assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		})
	}
}

func TestService_GetUser(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice", "alice@example.com", "password123")
	require.NoError(t, err)

	user, err := svc.GetUser(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.False(t, user.CreatedAt.IsZero())

	_, err = svc.GetUser(ctx, "usr_999")
	assert.ErrorIs(t, err, auth.ErrUserNotFound)
}
