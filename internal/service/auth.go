// Package service — authentication business logic.
//
// AuthService sits between the HTTP handlers and the credential
// store/auth utilities:
//
//	user handlers (HTTP) → AuthService (rules) → UserRepository (users file)
//	                     ↘ PasswordService (bcrypt)
//	                     ↘ SessionService (session tokens)
//
// What it deliberately does NOT do: set cookies, read requests, or know
// any route exists. Those are handler concerns.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/farhan/scribe/internal/apperror"
	"github.com/farhan/scribe/internal/auth"
	"github.com/farhan/scribe/internal/repository"
)

// AuthService handles registration and login against the flat-file
// credential store.
type AuthService struct {
	users     repository.UserRepository
	passwords *auth.PasswordService
	sessions  *auth.SessionService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all dependencies injected.
func NewAuthService(
	users repository.UserRepository,
	passwords *auth.PasswordService,
	sessions *auth.SessionService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		passwords: passwords,
		sessions:  sessions,
		logger:    logger,
	}
}

// Register creates a new account.
//
// Rules:
//   - the username must be non-empty after trimming whitespace
//   - the username must not already be taken (exact, case-sensitive match)
//
// On success the password is bcrypt-hashed and the username → hash pair
// is appended to the credential file. Registration does NOT sign the
// user in — they log in with their new credentials afterwards.
func (s *AuthService) Register(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return apperror.ValidationFailed("username", "User name can't be empty.")
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return fmt.Errorf("registering user: %w", err)
	}

	if err := s.users.Save(ctx, username, hash); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return err
		}
		s.logger.Error("failed to save user",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("registering user: %w", err)
	}

	s.logger.Info("user registered", slog.String("username", username))
	return nil
}

// Login validates credentials and, on success, returns a signed session
// token for the cookie.
//
// A missing user and a wrong password both come back as
// apperror.ErrInvalidCredentials — the login form shows the same
// message either way.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	hash, err := s.users.Get(ctx, username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return "", apperror.InvalidCredentials()
		}
		s.logger.Error("failed to load user",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return "", fmt.Errorf("logging in: %w", err)
	}

	if err := s.passwords.Verify(hash, password); err != nil {
		s.logger.Info("login rejected", slog.String("username", username))
		return "", apperror.InvalidCredentials()
	}

	token, err := s.sessions.Issue(username)
	if err != nil {
		return "", fmt.Errorf("logging in: %w", err)
	}

	s.logger.Info("user logged in", slog.String("username", username))
	return token, nil
}
