package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestService() *Service {
	return NewService("test-access-secret", "test-refresh-secret", time.Hour, 240*time.Hour)
}

func TestHashPassword(t *testing.T) {
	service := newTestService()

	hash, err := service.HashPassword("hunter2")
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "hunter2", hash)
}

func TestCheckPassword_RoundTrip(t *testing.T) {
	service := newTestService()

	hash, err := service.HashPassword("hunter2")
	assert.NoError(t, err)

	assert.True(t, service.CheckPassword("hunter2", hash))
	assert.False(t, service.CheckPassword("hunter3", hash))
}

func TestHashPassword_DistinctSalts(t *testing.T) {
	service := newTestService()

	h1, err := service.HashPassword("hunter2")
	assert.NoError(t, err)
	h2, err := service.HashPassword("hunter2")
	assert.NoError(t, err)

	// Salted hashes of the same input must differ
	assert.NotEqual(t, h1, h2)
	assert.True(t, service.CheckPassword("hunter2", h1))
	assert.True(t, service.CheckPassword("hunter2", h2))
}

func TestGenerateAccessToken(t *testing.T) {
	service := newTestService()

	tokenString, err := service.GenerateAccessToken(Identity{
		ID:       "user-123",
		Email:    "john@example.com",
		Username: "john",
		FullName: "John Doe",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenString)

	claims, err := service.ValidateAccessToken(tokenString)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "john@example.com", claims.Email)
	assert.Equal(t, "john", claims.Username)
	assert.Equal(t, "John Doe", claims.FullName)
	assert.True(t, time.Now().Before(claims.ExpiresAt.Time))
}

func TestGenerateRefreshToken(t *testing.T) {
	service := newTestService()

	tokenString, err := service.GenerateRefreshToken("user-123")
	assert.NoError(t, err)

	claims, err := service.ValidateRefreshToken(tokenString)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	service1 := NewService("secret-1", "refresh-1", time.Hour, time.Hour)
	service2 := NewService("secret-2", "refresh-2", time.Hour, time.Hour)

	tokenString, err := service1.GenerateAccessToken(Identity{ID: "user-123"})
	assert.NoError(t, err)

	_, err = service2.ValidateAccessToken(tokenString)
	assert.Error(t, err)
}

func TestTokens_SeparateSecrets(t *testing.T) {
	service := newTestService()

	// A refresh token must not validate as an access token
	refresh, err := service.GenerateRefreshToken("user-123")
	assert.NoError(t, err)
	_, err = service.ValidateAccessToken(refresh)
	assert.Error(t, err)

	// And an access token must not validate as a refresh token
	access, err := service.GenerateAccessToken(Identity{ID: "user-123"})
	assert.NoError(t, err)
	_, err = service.ValidateRefreshToken(access)
	assert.Error(t, err)
}

func TestValidateRefreshToken_Expired(t *testing.T) {
	service := NewService("access", "refresh", time.Hour, -time.Minute)

	tokenString, err := service.GenerateRefreshToken("user-123")
	assert.NoError(t, err)

	_, err = service.ValidateRefreshToken(tokenString)
	assert.Error(t, err)
}

func TestValidateAccessToken_Garbage(t *testing.T) {
	service := newTestService()

	_, err := service.ValidateAccessToken("")
	assert.Error(t, err)

	_, err = service.ValidateAccessToken("not-a-token")
	assert.Error(t, err)
}
