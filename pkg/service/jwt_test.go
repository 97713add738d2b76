package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "checksheet-system/pkg/errors"
)

func newTestJWTService(secret string, accessTTL, refreshTTL time.Duration) JWTService {
	return NewJWTService(secret, accessTTL, refreshTTL, zap.NewNop())
}

func TestGenerateAndValidateTokens(t *testing.T) {
	svc := newTestJWTService("test-secret", time.Minute, time.Hour)

	access, refresh, err := svc.GenerateTokens(42, 3)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	accessClaims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), accessClaims.UserID)
	assert.Equal(t, uint64(3), accessClaims.RoleID)
	assert.False(t, accessClaims.IsRefreshToken)

	refreshClaims, err := svc.ValidateToken(refresh)
	require.NoError(t, err)
	assert.True(t, refreshClaims.IsRefreshToken)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	issuer := newTestJWTService("secret-a", time.Minute, time.Hour)
	verifier := newTestJWTService("secret-b", time.Minute, time.Hour)

	access, _, err := issuer.GenerateTokens(1, 1)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(access)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestValidateTokenExpired(t *testing.T) {
	svc := newTestJWTService("test-secret", -time.Minute, -time.Minute)

	access, _, err := svc.GenerateTokens(1, 1)
	require.NoError(t, err)

	_, err = svc.ValidateToken(access)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := newTestJWTService("test-secret", time.Minute, time.Hour)

	_, err := svc.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
