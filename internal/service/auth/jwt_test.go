package auth

import (
	"testing"
	"time"

	"MentorLink/internal/app_errors"
	"MentorLink/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(accessTTL time.Duration) *JWTManager {
	return NewJWTManager("test-secret", "mentorlink", accessTTL, time.Hour)
}

func TestGenerateTokenPairRoundTrip(t *testing.T) {
	manager := newTestManager(time.Minute)
	userID := uuid.New()

	pair, err := manager.GenerateTokenPair(userID, []string{models.StudentRole, models.MentorRole})
	require.NoError(t, err)

	claims, err := manager.AccessClaims(pair.AccessToken.Raw)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, []string{models.StudentRole, models.MentorRole}, claims.Roles)
	assert.Equal(t, AccessTokenType, claims.TokenType)

	refresh, err := manager.Parse(pair.RefreshToken.Raw)
	require.NoError(t, err)
	assert.True(t, manager.TokenType(refresh, RefreshTokenType))
	assert.False(t, manager.TokenType(refresh, AccessTokenType))
}

func TestAccessClaimsRejectsRefreshToken(t *testing.T) {
	manager := newTestManager(time.Minute)

	pair, err := manager.GenerateTokenPair(uuid.New(), []string{models.StudentRole})
	require.NoError(t, err)

	_, err = manager.AccessClaims(pair.RefreshToken.Raw)
	assert.Error(t, err)
}

func TestExpiredTokenMapsToSentinel(t *testing.T) {
	manager := newTestManager(-time.Minute)

	pair, err := manager.GenerateTokenPair(uuid.New(), []string{models.StudentRole})
	require.Error(t, err)
	require.Nil(t, pair)
	assert.ErrorIs(t, err, app_errors.ErrTokenExpired)
}

func TestParseRejectsForeignSignature(t *testing.T) {
	manager := newTestManager(time.Minute)
	other := NewJWTManager("another-secret", "mentorlink", time.Minute, time.Hour)

	pair, err := other.GenerateTokenPair(uuid.New(), []string{models.StudentRole})
	require.NoError(t, err)

	_, err = manager.Parse(pair.AccessToken.Raw)
	assert.Error(t, err)
}
