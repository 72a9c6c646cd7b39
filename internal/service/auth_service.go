package service

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"coupon-manager/internal/auth"
	"coupon-manager/internal/model"
	"coupon-manager/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	minPasswordLength = 6

	// maxPasswordLength is the most bytes bcrypt will hash.
	maxPasswordLength = 72
)

// authService implements AuthService.
type authService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
	logger   zerolog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenManager, logger zerolog.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger.With().Str("service", "auth").Logger(),
	}
}

// Register creates an account and returns a token for it.
func (s *authService) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	if req == nil {
		return nil, model.ErrValidation
	}

	email := normalizeEmail(req.Email)
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, model.NewValidationError("email", "A valid email is required")
	}
	if len(req.Password) < minPasswordLength {
		return nil, model.NewValidationError("password", "Password must be at least 6 characters")
	}
	if len(req.Password) > maxPasswordLength {
		return nil, model.NewValidationError("password", "Password must be at most 72 bytes")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, model.NewValidationError("name", "Name is required")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return nil, err
	}

	user := &model.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Debug().Err(err).Str("email", email).Msg("failed to register user")
		return nil, storeError(err)
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("user registered")

	return s.issue(user)
}

// Login exchanges credentials for a token. Unknown emails and wrong passwords
// fail the same way.
func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	if req == nil {
		return nil, model.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to look up user")
		return nil, storeError(err)
	}

	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.logger.Debug().Msg("login rejected")
		return nil, model.ErrInvalidCredentials
	}

	return s.issue(user)
}

// Me returns the account behind a verified token.
func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to look up user")
		return nil, storeError(err)
	}
	if user == nil {
		return nil, model.ErrUnauthorised
	}
	return user, nil
}

func (s *authService) issue(user *model.User) (*model.AuthResponse, error) {
	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to issue token")
		return nil, err
	}

	return &model.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      *user,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
