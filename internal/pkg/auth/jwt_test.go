package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuscrm/admitdesk/internal/pkg/apperrors"
)

func newTestJWTService(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: exp,
		TokenIssuer:    "admitdesk-test",
	})
}

func TestValidateToken(t *testing.T) {
	t.Run("valid token round-trips", func(t *testing.T) {
		svc := newTestJWTService(time.Hour)

		token, expiresIn, err := svc.GenerateToken(7, "staff@college.edu", "FACULTY")
		require.NoError(t, err)
		assert.Equal(t, int(time.Hour.Seconds()), expiresIn)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, int64(7), claims.UserID)
		assert.Equal(t, "staff@college.edu", claims.Email)
		assert.Equal(t, "FACULTY", claims.Role)
	})

	t.Run("expired token", func(t *testing.T) {
		svc := newTestJWTService(-time.Hour)

		token, _, err := svc.GenerateToken(7, "staff@college.edu", "FACULTY")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
	})

	t.Run("tampered token", func(t *testing.T) {
		svc := newTestJWTService(time.Hour)

		token, _, err := svc.GenerateToken(7, "staff@college.edu", "FACULTY")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token + "x")
		assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := NewJWTService(JWTConfig{
			SecretKey:      "other-secret",
			AccessTokenExp: time.Hour,
			TokenIssuer:    "admitdesk-test",
		})
		token, _, err := other.GenerateToken(7, "staff@college.edu", "FACULTY")
		require.NoError(t, err)

		_, err = newTestJWTService(time.Hour).ValidateToken(token)
		assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
	})
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	// No Bearer prefix passes through unchanged
	token, err = ExtractBearerToken("abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)
}
