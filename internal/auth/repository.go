package auth

import (
	"context"
	"fmt"
	"sync"
)

// UserRepository defines the interface for user persistence. The store is
// expected to enforce email and username uniqueness.
type UserRepository interface {
	// Insert stores a new user and returns it with its assigned ID.
	// Returns ErrUserExists on an email or username collision.
	Insert(ctx context.Context, user *User) (*User, error)

	// FindByEmail finds a user by email. Returns ErrUserNotFound if absent.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByID finds a user by ID. Returns ErrUserNotFound if absent.
	FindByID(ctx context.Context, id string) (*User, error)
}

// InMemoryUserRepository is an in-memory implementation of UserRepository,
// used in tests in place of the Mongo-backed store.
type InMemoryUserRepository struct {
	mu      sync.RWMutex
	users   map[string]*User  // keyed by user ID
	byEmail map[string]string // email -> userID
	nextID  int
}

// NewInMemoryUserRepository creates a new in-memory user repository.
func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users:   make(map[string]*User),
		byEmail: make(map[string]string),
	}
}

// Insert stores a new user, enforcing the same uniqueness rules as the
// store's indexes.
func (r *InMemoryUserRepository) Insert(_ context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return nil, ErrUserExists
	}
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, ErrUserExists
		}
	}

	r.nextID++
	stored := *user
	if stored.ID == "" {
		stored.ID = fmt.Sprintf("usr_%03d", r.nextID)
	}

	r.users[stored.ID] = &stored
	r.byEmail[stored.Email] = stored.ID

	out := stored
	return &out, nil
}

// FindByEmail finds a user by email.
func (r *InMemoryUserRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}

	userCopy := *r.users[id]
	return &userCopy, nil
}

// FindByID finds a user by ID.
func (r *InMemoryUserRepository) FindByID(_ context.Context, id string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}

	userCopy := *user
	return &userCopy, nil
}
