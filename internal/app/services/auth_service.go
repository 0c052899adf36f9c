package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/campuscrm/admitdesk/internal/app/models"
	"github.com/campuscrm/admitdesk/internal/app/repositories"
	"github.com/campuscrm/admitdesk/internal/pkg/apperrors"
	"github.com/campuscrm/admitdesk/internal/pkg/auth"
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Login(ctx context.Context, email, password string) (accessToken string, expiresIn int, user *models.User, err error)
	GetProfile(ctx context.Context, actorID int64) (*models.User, error)
}

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	userRepo   repositories.IUserRepository
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new auth service instance
func NewAuthService(userRepo repositories.IUserRepository, jwtService *auth.JWTService, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login verifies credentials against the stored hash and issues an access
// token. A missing account and a wrong password are indistinguishable to the
// caller.
func (s *authServiceImpl) Login(ctx context.Context, email, password string) (string, int, *models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return "", 0, nil, apperrors.ErrInvalidCredentials
		}
		return "", 0, nil, fmt.Errorf("error fetching user for login: %w", err)
	}

	if !auth.CheckPassword(user.Password, password) {
		return "", 0, nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to generate access token")
		return "", 0, nil, err
	}

	return token, expiresIn, user, nil
}

// GetProfile returns the current account, resolved fresh from the store
func (s *authServiceImpl) GetProfile(ctx context.Context, actorID int64) (*models.User, error) {
	if actorID <= 0 {
		return nil, apperrors.ErrUnauthenticated
	}

	user, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUnauthenticated
		}
		return nil, fmt.Errorf("error fetching profile: %w", err)
	}

	return user, nil
}
