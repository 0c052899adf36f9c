package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	appauth "github.com/campuscrm/admitdesk/internal/app/auth"
	"github.com/campuscrm/admitdesk/internal/app/models"
	"github.com/campuscrm/admitdesk/internal/app/repositories"
	"github.com/campuscrm/admitdesk/internal/pkg/apperrors"
	"github.com/campuscrm/admitdesk/internal/pkg/auth"
)

// MinPasswordLength is the minimum accepted password length for resets and
// self-service changes.
const MinPasswordLength = 6

// AccountService defines the interface for staff account management
type AccountService interface {
	CreateFacultyAccount(ctx context.Context, actorID int64, name, email, password string) (*models.User, error)
	ListAccounts(ctx context.Context, actorID int64) ([]*models.User, error)
	DeleteAccount(ctx context.Context, actorID, targetID int64) error
	ResetPassword(ctx context.Context, actorID, targetID int64, newPassword string) error
	ChangeRole(ctx context.Context, actorID, targetID int64, newRole models.Role) error
	ChangeOwnPassword(ctx context.Context, actorID int64, newPassword string) error
}

// accountServiceImpl implements the AccountService interface
type accountServiceImpl struct {
	userRepo repositories.IUserRepository
	logger   zerolog.Logger
}

// NewAccountService creates a new account service instance
func NewAccountService(userRepo repositories.IUserRepository, logger zerolog.Logger) AccountService {
	return &accountServiceImpl{
		userRepo: userRepo,
		logger:   logger,
	}
}

// validatePassword enforces the minimum length shared by reset and
// self-service changes
func validatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return apperrors.ErrPasswordTooShort
	}
	return nil
}

// CreateFacultyAccount creates a staff account. The role is always FACULTY:
// an ADMIN creates peers-of-lower-tier only, and a SUPER_ADMIN creates
// FACULTY too and promotes afterwards.
func (s *accountServiceImpl) CreateFacultyAccount(ctx context.Context, actorID int64, name, email, password string) (*models.User, error) {
	actor, err := resolvePrincipal(ctx, s.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	if !appauth.CanCreateAccount(actor) {
		return nil, apperrors.ErrPermissionDenied
	}

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, apperrors.NewValidationError("name, email and password are required")
	}

	// Friendly conflict before paying for the hash; the unique constraint
	// still backstops a race.
	exists, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     models.RoleFaculty,
	}

	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("error creating account: %w", err)
	}
	user.ID = id

	s.logger.Info().Int64("accountID", id).Int64("createdBy", actor.ID).Msg("Faculty account created")
	return user, nil
}

// ListAccounts returns all staff accounts, newest first. Restricted to the
// management tiers; the listing includes other admins so a SUPER_ADMIN can
// promote or demote them.
func (s *accountServiceImpl) ListAccounts(ctx context.Context, actorID int64) ([]*models.User, error) {
	actor, err := resolvePrincipal(ctx, s.userRepo, actorID)
	if err != nil {
		return nil, err
	}
	if !appauth.CanCreateAccount(actor) {
		return nil, apperrors.ErrPermissionDenied
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing accounts: %w", err)
	}
	return users, nil
}

// DeleteAccount removes a staff account. A missing target and a self-target
// are both silent no-ops; everything else goes through the management policy.
func (s *accountServiceImpl) DeleteAccount(ctx context.Context, actorID, targetID int64) error {
	actor, err := resolvePrincipal(ctx, s.userRepo, actorID)
	if err != nil {
		return err
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil
		}
		return fmt.Errorf("error fetching delete target: %w", err)
	}

	// Self-deletion is silently ignored for every tier, unlike other
	// self-action guards which error.
	if target.ID == actor.ID {
		return nil
	}

	if !appauth.CanManageAccount(actor, target) {
		return apperrors.ErrPermissionDenied
	}

	if err := s.userRepo.Delete(ctx, targetID); err != nil {
		return fmt.Errorf("error deleting account: %w", err)
	}

	s.logger.Info().Int64("accountID", targetID).Int64("deletedBy", actor.ID).Msg("Staff account deleted")
	return nil
}

// ResetPassword replaces another account's password hash. Length is checked
// before any privilege decision so a short password is always a validation
// failure, never a permission probe.
func (s *accountServiceImpl) ResetPassword(ctx context.Context, actorID, targetID int64, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	actor, err := resolvePrincipal(ctx, s.userRepo, actorID)
	if err != nil {
		return err
	}
	if !appauth.CanCreateAccount(actor) {
		return apperrors.ErrPermissionDenied
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("error fetching reset target: %w", err)
	}

	if !appauth.CanManageAccount(actor, target) {
		return apperrors.ErrPermissionDenied
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, targetID, hash); err != nil {
		return fmt.Errorf("error resetting password: %w", err)
	}

	s.logger.Info().Int64("accountID", targetID).Int64("resetBy", actor.ID).Msg("Password reset")
	return nil
}

// ChangeRole assigns a new role to another account. Only a SUPER_ADMIN may
// change roles, any role may be assigned including SUPER_ADMIN itself, and
// the actor may never change their own.
func (s *accountServiceImpl) ChangeRole(ctx context.Context, actorID, targetID int64, newRole models.Role) error {
	actor, err := resolvePrincipal(ctx, s.userRepo, actorID)
	if err != nil {
		return err
	}
	if !appauth.CanChangeRole(actor) {
		return apperrors.ErrPermissionDenied
	}

	if targetID == actor.ID {
		return apperrors.NewForbiddenError("you cannot change your own role")
	}

	if !newRole.Valid() {
		return apperrors.NewValidationError("unknown role")
	}

	if err := s.userRepo.UpdateRole(ctx, targetID, newRole); err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("error changing role: %w", err)
	}

	s.logger.Info().Int64("accountID", targetID).Str("role", string(newRole)).Int64("changedBy", actor.ID).Msg("Role changed")
	return nil
}

// ChangeOwnPassword replaces the actor's own password. Any authenticated
// principal may do this.
func (s *accountServiceImpl) ChangeOwnPassword(ctx context.Context, actorID int64, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	actor, err := resolvePrincipal(ctx, s.userRepo, actorID)
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, actor.ID, hash); err != nil {
		return fmt.Errorf("error changing password: %w", err)
	}

	return nil
}
