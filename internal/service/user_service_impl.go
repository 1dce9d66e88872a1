package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"backlog/internal/domain"
	"backlog/internal/repository"

	"github.com/google/uuid"
)

type userService struct {
	users repository.UserRepo
}

func NewUserService(users repository.UserRepo) UserService {
	return &userService{users: users}
}

func (s *userService) Register(ctx context.Context, name, email string) (*domain.User, error) {
	u := &domain.User{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(name),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		CreatedAt: time.Now().UTC(),
	}
	if u.Name == "" {
		return nil, domain.NewValidationError("name", "must not be empty")
	}
	if !strings.Contains(u.Email, "@") {
		return nil, domain.NewValidationError("email", "must be a valid address")
	}

	if _, err := s.users.GetByEmail(ctx, u.Email); err == nil {
		return nil, domain.NewValidationError("email", "already registered")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NewNotFoundError("user")
		}
		return nil, err
	}
	return u, nil
}

// Resolve accepts a user ID or an email address.
func (s *userService) Resolve(ctx context.Context, ref string) (*domain.User, error) {
	if strings.Contains(ref, "@") {
		u, err := s.users.GetByEmail(ctx, strings.ToLower(ref))
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, domain.NewNotFoundError("user")
			}
			return nil, err
		}
		return u, nil
	}
	return s.GetByID(ctx, ref)
}
