package jwt

import (
	"testing"
	"time"

	"patient-appointment-service/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Role IDs mirrored from the entity package to keep pkg self-contained.
const (
	roleIDAdmin   = 1
	roleIDPatient = 2
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	})
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()

	token, tokenID, err := svc.GenerateAccessToken(userID, "patient@example.com", roleIDPatient)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, tokenID)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "patient@example.com", claims.Email)
	assert.Equal(t, roleIDPatient, claims.RoleID)
	assert.Equal(t, AccessToken, claims.TokenType)
	assert.Equal(t, tokenID, claims.TokenID)
}

func TestRefreshTokenType(t *testing.T) {
	svc := newTestService()

	token, _, err := svc.GenerateRefreshToken(uuid.New(), "admin@example.com", roleIDAdmin)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, RefreshToken, claims.TokenType)
}

func TestTokenIDsAreUnique(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()

	_, first, err := svc.GenerateAccessToken(userID, "a@example.com", roleIDPatient)
	require.NoError(t, err)
	_, second, err := svc.GenerateAccessToken(userID, "a@example.com", roleIDPatient)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := newTestService()
	other := NewJWTService(config.JWTConfig{
		Secret:        "different-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	})

	token, _, err := svc.GenerateAccessToken(uuid.New(), "a@example.com", roleIDPatient)
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateExpiredToken(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  -time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	})

	token, _, err := svc.GenerateAccessToken(uuid.New(), "a@example.com", roleIDPatient)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateGarbageToken(t *testing.T) {
	svc := newTestService()

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}
