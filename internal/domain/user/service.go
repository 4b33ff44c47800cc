package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/ec-shop/internal/apperr"
	"github.com/example/ec-shop/internal/auth"
)

type Service struct {
	users Store
}

func NewService(users Store) *Service {
	return &Service{users: users}
}

// Register creates a new account with the default wallet balance and
// the address sentinel. The password is stored as a bcrypt hash.
func (s *Service) Register(ctx context.Context, name, email, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if existing != nil {
		return nil, apperr.BadRequest("Email already taken")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
		Address:      DefaultAddress,
		WalletMoney:  DefaultWalletMoney,
		CreatedAt:    time.Now(),
	}

	if err := s.users.Create(ctx, u); err != nil {
		return nil, apperr.Internal("Something went wrong while creating user", err)
	}

	return u, nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, err := s.users.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if u == nil {
		return nil, apperr.NotFound("User not found")
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	if u == nil {
		return nil, apperr.NotFound("User not found")
	}
	return u, nil
}

// SetAddress replaces the user's shipping address and persists it.
func (s *Service) SetAddress(ctx context.Context, u *User, address string) error {
	u.Address = address
	if err := s.users.Save(ctx, u); err != nil {
		return apperr.Internal("Something went wrong while saving user", err)
	}
	return nil
}
