// Package auth implements the identity half of the demo: registration-backed
// accounts, bcrypt password verification, and HS256 tokens. Login requires a
// prior registration; there is no trust-any-username path.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/eventtick/eventtick-go/internal/domain"
	"github.com/eventtick/eventtick-go/internal/repository"
	"github.com/eventtick/eventtick-go/internal/repository/memory"
	"github.com/eventtick/eventtick-go/internal/sim"
)

const minPasswordLen = 6

type Config struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int

	LoginDelay    time.Duration
	RegisterDelay time.Duration
}

type Service struct {
	users *memory.UserStore
	cfg   Config
}

func New(users *memory.UserStore, cfg Config) *Service {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = time.Hour
	}

	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		cfg.BcryptCost = bcrypt.DefaultCost
	}

	return &Service{users: users, cfg: cfg}
}

// Register creates an account and returns it with a fresh token. Validation
// failures leave the registered-user set untouched. A username or email
// containing "admin" gets the ADMIN role, which is exactly as much access
// control as a demo deserves.
func (s *Service) Register(ctx context.Context, username, email, password, confirmPassword string) (*domain.User, string, error) {
	const op = "service.auth.Register"

	if err := sim.Wait(ctx, s.cfg.RegisterDelay); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" || password == "" {
		return nil, "", fmt.Errorf("%s: %w", op, ErrMissingFields)
	}

	if password != confirmPassword {
		return nil, "", fmt.Errorf("%s: %w", op, ErrPasswordMismatch)
	}

	if len(password) < minPasswordLen {
		return nil, "", fmt.Errorf("%s: %w", op, ErrPasswordTooShort)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:        "u-" + uuid.NewString(),
		Username:  username,
		Email:     email,
		Role:      roleFor(username, email),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.users.Create(memory.UserRecord{User: user, PasswordHash: string(hash)}); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil, "", fmt.Errorf("%s: %w", op, ErrUsernameTaken)
		}

		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	return &user, token, nil
}

// Login verifies the password against the stored hash and returns the user
// with a fresh token.
func (s *Service) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	const op = "service.auth.Login"

	if err := sim.Wait(ctx, s.cfg.LoginDelay); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, "", fmt.Errorf("%s: %w", op, ErrMissingFields)
	}

	rec, err := s.users.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}

		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)) != nil {
		return nil, "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := s.issueToken(rec.User)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	user := rec.User
	return &user, token, nil
}

// GetUser returns the account behind a verified token's subject.
func (s *Service) GetUser(ctx context.Context, id string) (*domain.User, error) {
	const op = "service.auth.GetUser"

	rec, err := s.users.Get(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user := rec.User
	return &user, nil
}

func roleFor(username, email string) domain.UserRole {
	if strings.Contains(strings.ToLower(username), "admin") ||
		strings.Contains(strings.ToLower(email), "admin") {
		return domain.RoleAdmin
	}

	return domain.RoleUser
}
