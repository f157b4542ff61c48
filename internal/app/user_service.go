package app

import (
	"context"

	"bptracker/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

const (
	demoUsername = "demo"
	demoPassword = "demo"
)

// UserService provisions the owning identity for reading operations.
type UserService struct {
	users domain.UserRepository
}

// NewUserService creates a UserService backed by the given repository.
func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

// EnsureDemoUser finds or creates the demo account and returns its ID. The
// caller passes the ID explicitly into every reading call; nothing else holds
// onto it.
func (s *UserService) EnsureDemoUser(ctx context.Context) (int64, error) {
	user, err := s.users.GetUserByUsername(ctx, demoUsername)
	if err != nil {
		return 0, err
	}
	if user != nil {
		return user.ID, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}
	created, err := s.users.CreateUser(ctx, demoUsername, string(hash))
	if err != nil {
		return 0, err
	}
	return created.ID, nil
}
