package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuscrm/admitdesk/internal/app/models"
	"github.com/campuscrm/admitdesk/internal/pkg/apperrors"
	"github.com/campuscrm/admitdesk/internal/pkg/auth"
)

func newAuthFixture(t *testing.T) (*fakeUserRepo, AuthService) {
	t.Helper()
	repo := newFakeUserRepo()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "admitdesk-test",
	})
	return repo, NewAuthService(repo, jwtService, zerolog.Nop())
}

func seedLoginUser(t *testing.T, repo *fakeUserRepo, email, password string, role models.Role) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	u := repo.seed("Login User", email, role)
	require.NoError(t, repo.UpdatePassword(context.Background(), u.ID, hash))
	return u
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials issue a token", func(t *testing.T) {
		repo, svc := newAuthFixture(t)
		seeded := seedLoginUser(t, repo, "admin@college.edu", "admin123", models.RoleSuperAdmin)

		token, expiresIn, user, err := svc.Login(ctx, "admin@college.edu", "admin123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, int(time.Hour.Seconds()), expiresIn)
		assert.Equal(t, seeded.ID, user.ID)
		assert.Equal(t, models.RoleSuperAdmin, user.Role)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		repo, svc := newAuthFixture(t)
		seedLoginUser(t, repo, "admin@college.edu", "admin123", models.RoleSuperAdmin)

		_, _, _, err := svc.Login(ctx, "admin@college.edu", "wrong")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

		_, _, _, err = svc.Login(ctx, "nobody@college.edu", "admin123")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("issued token round-trips through validation", func(t *testing.T) {
		repo, svc := newAuthFixture(t)
		seeded := seedLoginUser(t, repo, "admin@college.edu", "admin123", models.RoleSuperAdmin)

		token, _, _, err := svc.Login(ctx, "admin@college.edu", "admin123")
		require.NoError(t, err)

		jwtService := auth.NewJWTService(auth.JWTConfig{
			SecretKey:      "test-secret",
			AccessTokenExp: time.Hour,
			TokenIssuer:    "admitdesk-test",
		})
		claims, err := jwtService.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, seeded.ID, claims.UserID)
		assert.Equal(t, "admin@college.edu", claims.Email)
	})
}

func TestGetProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the stored account", func(t *testing.T) {
		repo, svc := newAuthFixture(t)
		seeded := repo.seed("Teacher", "teacher@college.edu", models.RoleFaculty)

		user, err := svc.GetProfile(ctx, seeded.ID)
		require.NoError(t, err)
		assert.Equal(t, seeded.Email, user.Email)
	})

	t.Run("unknown or zero actor is unauthenticated", func(t *testing.T) {
		_, svc := newAuthFixture(t)

		_, err := svc.GetProfile(ctx, 0)
		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)

		_, err = svc.GetProfile(ctx, 42)
		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})
}
