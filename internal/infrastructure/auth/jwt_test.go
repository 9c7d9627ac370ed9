package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *JWTService {
	return NewJWTService("test-secret-at-least-32-characters!!", "", "crm-test", 15*time.Minute, 24*time.Hour, 3)
}

func testIdentity() Identity {
	companyID := uuid.New()
	return Identity{
		UserID:    uuid.New(),
		Email:     "anna@example.com",
		Role:      "member",
		CompanyID: &companyID,
	}
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := newTestService()
	id := testIdentity()

	pair, err := svc.GenerateTokenPair(id)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.True(t, pair.RefreshTokenExpiresAt.After(pair.AccessTokenExpiresAt))

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, id.UserID.String(), claims.UserID)
	assert.Equal(t, "anna@example.com", claims.Email)
	assert.Equal(t, "member", claims.Role)
	assert.Equal(t, id.CompanyID.String(), claims.CompanyID)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateAccessToken_RejectsRefreshToken(t *testing.T) {
	svc := newTestService()
	pair, err := svc.GenerateTokenPair(testIdentity())
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	svc := newTestService()
	other := NewJWTService("completely-different-secret-value!!!", "", "crm-test", 15*time.Minute, 24*time.Hour, 3)

	pair, err := svc.GenerateTokenPair(testIdentity())
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	svc := NewJWTService("test-secret-at-least-32-characters!!", "", "crm-test", -time.Minute, 24*time.Hour, 3)

	pair, err := svc.GenerateTokenPair(testIdentity())
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateAccessToken_Garbage(t *testing.T) {
	svc := newTestService()
	_, err := svc.ValidateAccessToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshTokenPair(t *testing.T) {
	svc := newTestService()
	id := testIdentity()

	pair, err := svc.GenerateTokenPair(id)
	require.NoError(t, err)

	newPair, err := svc.RefreshTokenPair(pair.RefreshToken)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(newPair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, id.UserID.String(), claims.UserID)
	assert.Equal(t, id.CompanyID.String(), claims.CompanyID)

	refreshClaims, err := svc.ValidateRefreshToken(newPair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, 1, refreshClaims.RefreshCount)
}

func TestRefreshTokenPair_MaxRefreshExceeded(t *testing.T) {
	svc := newTestService()

	pair, err := svc.GenerateTokenPair(testIdentity())
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		pair, err = svc.RefreshTokenPair(pair.RefreshToken)
		require.NoError(t, err)
	}

	_, err = svc.RefreshTokenPair(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrMaxRefreshExceeded)
}

func TestRefreshTokenPair_AccessTokenRejected(t *testing.T) {
	svc := newTestService()
	pair, err := svc.GenerateTokenPair(testIdentity())
	require.NoError(t, err)

	_, err = svc.RefreshTokenPair(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}

func TestGenerateTokenPair_NoCompany(t *testing.T) {
	svc := newTestService()
	id := Identity{UserID: uuid.New(), Email: "admin@example.com", Role: "admin"}

	pair, err := svc.GenerateTokenPair(id)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Empty(t, claims.CompanyID)
	assert.Equal(t, "admin", claims.Role)
}
