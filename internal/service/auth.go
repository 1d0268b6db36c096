package service

import (
	"errors"
	"fmt"

	"pawplan-backend/internal/crypto"
	"pawplan-backend/internal/models"
	"pawplan-backend/internal/repository"
	"pawplan-backend/internal/token"
	"pawplan-backend/internal/validation"

	"go.uber.org/zap"
)

var (
	// ErrInvalidCredentials covers both unknown username and wrong password.
	// Callers must surface it identically in either case so usernames cannot
	// be enumerated.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError reports which field failed its format check. Checks run
// before any persistence or crypto work.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

type AuthService interface {
	Register(username, email, password string) (*models.User, error)
	Authenticate(username, password string) (string, error) // Returns a signed bearer token
}

type authService struct {
	repo   repository.UserRepository
	tokens *token.Service
	logger *zap.Logger
}

func NewAuthService(repo repository.UserRepository, tokens *token.Service, logger *zap.Logger) AuthService {
	return &authService{repo: repo, tokens: tokens, logger: logger}
}

func validateRegistration(username, email, password string) *ValidationError {
	if !validation.ValidUsername(username) {
		return &ValidationError{Field: "username", Reason: "must be 3-20 characters of letters, numbers and underscores"}
	}
	if !validation.ValidEmail(email) {
		return &ValidationError{Field: "email", Reason: "must be a valid email address"}
	}
	if !validation.ValidPassword(password) {
		return &ValidationError{Field: "password", Reason: "must be at least 8 characters with an uppercase letter, a lowercase letter, a digit and a symbol (@$!%*?&)"}
	}
	return nil
}

func (s *authService) Register(username, email, password string) (*models.User, error) {
	if verr := validateRegistration(username, email, password); verr != nil {
		return nil, verr
	}

	passwordHash, err := crypto.HashPassword(password)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		IsAdmin:      false,
	}

	// The unique indexes on username and email are the source of truth; a
	// concurrent registration racing to the same value loses at insert time
	// and surfaces as the per-field duplicate error.
	if err := s.repo.CreateUser(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) || errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, err
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered", zap.String("username", user.Username), zap.Int64("id", user.ID))
	return user, nil
}

func (s *authService) Authenticate(username, password string) (string, error) {
	user, err := s.repo.GetUserByUsername(username)
	if err != nil {
		s.logger.Error("Failed to get user by username", zap.Error(err))
		return "", fmt.Errorf("failed to retrieve user: %w", err)
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}

	if err := crypto.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, crypto.ErrInvalidHashFormat) {
			// Log distinctly, but the caller sees the same generic failure as
			// a wrong password.
			s.logger.Error("Stored password hash is malformed", zap.Int64("user_id", user.ID))
		}
		return "", ErrInvalidCredentials
	}

	tokenString, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.logger.Error("Failed to issue token", zap.Error(err))
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("User logged in", zap.String("username", user.Username))
	return tokenString, nil
}
