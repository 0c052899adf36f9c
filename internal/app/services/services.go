package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/campuscrm/admitdesk/internal/app/auth"
	"github.com/campuscrm/admitdesk/internal/app/repositories"
	"github.com/campuscrm/admitdesk/internal/pkg/apperrors"
)

// resolvePrincipal re-reads the actor from the store and builds the principal
// for policy decisions. This happens on every privileged call rather than
// trusting the session: the role may have changed between page render and
// action submission. An actor that cannot be resolved fails closed.
func resolvePrincipal(ctx context.Context, userRepo repositories.IUserRepository, actorID int64) (auth.Principal, error) {
	if actorID <= 0 {
		return auth.Principal{}, apperrors.ErrUnauthenticated
	}

	user, err := userRepo.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return auth.Principal{}, apperrors.ErrUnauthenticated
		}
		return auth.Principal{}, fmt.Errorf("error resolving principal: %w", err)
	}

	return auth.Principal{ID: user.ID, Name: user.Name, Role: user.Role}, nil
}
