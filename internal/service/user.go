package service

import (
	"context"

	"github.com/punchcard-app/punchcard/internal/domain"
)

// UserStore is the user data access interface consumed by UserService.
type UserStore interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, user domain.User) (*domain.User, error)
}

// UserService handles loyalty member records.
type UserService struct {
	users UserStore
}

// NewUserService creates a new UserService.
func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// Get retrieves a user by ID.
func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

// Create registers a new loyalty member.
func (s *UserService) Create(ctx context.Context, phoneNumber, displayName string) (*domain.User, error) {
	return s.users.Create(ctx, domain.User{
		PhoneNumber: phoneNumber,
		DisplayName: displayName,
	})
}
