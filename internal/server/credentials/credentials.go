// Package credentials registers users and verifies their passwords.
package credentials

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/iudanet/futbol/internal/models"
	"github.com/iudanet/futbol/internal/server/storage"
	"github.com/iudanet/futbol/internal/validation"
)

// ErrInvalidCredentials is returned for an unknown email and for a wrong
// password alike.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service is the credential store: it owns user records and password hashes.
type Service struct {
	logger *slog.Logger
	users  storage.UserStorage
	now    func() time.Time
	// dummyHash keeps the unknown-user path as slow as a real comparison.
	dummyHash []byte
	cost      int
}

type Option func(*Service)

// WithCost overrides the bcrypt cost.
func WithCost(cost int) Option {
	return func(s *Service) { s.cost = cost }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(logger *slog.Logger, users storage.UserStorage, opts ...Option) *Service {
	s := &Service{
		logger: logger,
		users:  users,
		now:    time.Now,
		cost:   bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), s.cost)
	if err == nil {
		s.dummyHash = hash
	}

	return s
}

// Register validates and stores a new user. Input problems, including a
// taken email, come back as validation.Errors.
func (s *Service) Register(ctx context.Context, email, password string) (*models.User, error) {
	email = validation.NormalizeEmail(email)

	var errs validation.Errors
	errs = append(errs, validation.ValidateEmail(email)...)
	errs = append(errs, validation.ValidatePassword(password)...)
	if len(errs) > 0 {
		return nil, errs
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, validation.Errors{{
				Code:        validation.CodeTooLong,
				Description: "password must not exceed 72 bytes",
			}}
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			return nil, validation.Errors{{
				Code:        validation.CodeDuplicateEmail,
				Description: fmt.Sprintf("email '%s' is already taken", email),
			}}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.InfoContext(ctx, "User registered", slog.String("user_id", user.ID))

	return user, nil
}

// Authenticate checks the password for email and records the login time.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = validation.NormalizeEmail(email)

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			if s.dummyHash != nil {
				_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			}
			s.logger.WarnContext(ctx, "Login failed: user not found")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.WarnContext(ctx, "Login failed: wrong password", slog.String("user_id", user.ID))
		return nil, ErrInvalidCredentials
	}

	loginAt := s.now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, loginAt); err != nil {
		s.logger.WarnContext(ctx, "Failed to update last login",
			slog.String("user_id", user.ID),
			slog.Any("error", err))
	} else {
		user.LastLogin = &loginAt
	}

	return user, nil
}
