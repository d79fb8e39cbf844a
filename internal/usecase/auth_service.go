package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/weekly-pickem/internal/domain/user"
)

// AuthService checks names against the roster. There are no passwords; the
// roster is the allowlist.
type AuthService struct {
	userRepo user.Repository
}

func NewAuthService(userRepo user.Repository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

func (s *AuthService) Login(ctx context.Context, name string) (user.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return user.User{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	u, ok, err := s.userRepo.GetByName(ctx, name)
	if err != nil {
		return user.User{}, fmt.Errorf("get user by name: %w", err)
	}
	if !ok {
		return user.User{}, fmt.Errorf("%w: %q is not on the roster", ErrInvalidInput, name)
	}
	return u, nil
}

// Resolve returns the user a session belongs to. Users removed from storage
// since the session was issued are unauthorized.
func (s *AuthService) Resolve(ctx context.Context, userID int64) (user.User, error) {
	if userID <= 0 {
		return user.User{}, ErrUnauthorized
	}
	u, ok, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	if !ok {
		return user.User{}, fmt.Errorf("%w: unknown user", ErrUnauthorized)
	}
	return u, nil
}

func (s *AuthService) Roster(ctx context.Context) ([]user.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
