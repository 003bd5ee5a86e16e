package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/metropower/dashboard/internal/auth"
	"github.com/metropower/dashboard/internal/config"
	"github.com/metropower/dashboard/internal/domain"
	"github.com/metropower/dashboard/internal/repository"
)

// AuthService verifies operator credentials.
type AuthService struct {
	users      repository.UserRepository
	bcryptCost int
	logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{users: users, bcryptCost: cfg.BcryptCost, logger: logger}
}

// Authenticate returns the operator for username when password matches.
// Unknown users, inactive users and wrong passwords are indistinguishable.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.Active {
		return nil, domain.ErrInvalidCredentials
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// CreateUser stores a new operator with a hashed password.
func (s *AuthService) CreateUser(ctx context.Context, username, password string, role domain.UserRole) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, domain.Required("username")
	}
	if password == "" {
		return nil, domain.Required("password")
	}
	if role == "" {
		role = domain.UserRoleViewer
	}
	if role != domain.UserRoleAdmin && role != domain.UserRoleViewer {
		return nil, domain.Invalid("role", fmt.Sprintf("unknown role %q", role))
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	user := &domain.User{Username: username, PasswordHash: hash, Role: role, Active: true}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// EnsureAdmin creates the configured admin account, or resets its password
// when it already exists with a different one. An empty password skips seeding.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	if strings.TrimSpace(password) == "" {
		s.logger.Warn("AUTH_ADMIN_PASSWORD not set; no admin account seeded")
		return nil
	}

	existing, err := s.users.GetByUsername(ctx, username)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		if _, err := s.CreateUser(ctx, username, password, domain.UserRoleAdmin); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		s.logger.Info("admin account created", zap.String("username", username))
		return nil
	case err != nil:
		return err
	}

	if auth.ComparePassword(existing.PasswordHash, password) == nil {
		return nil
	}
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, existing.ID, hash); err != nil {
		return fmt.Errorf("reset admin password: %w", err)
	}
	s.logger.Info("admin password rotated", zap.String("username", username))
	return nil
}
