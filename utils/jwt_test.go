package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelfmind_backend/models"
)

func TestGenerateAndParseToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	user := &models.User{
		ID:      "associate-12345678",
		Email:   "alex@example.com",
		Role:    models.RoleAssociate,
		StoreID: "STORE001",
	}

	token, err := GenerateToken(user)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alex@example.com", claims["sub"])
	assert.Equal(t, "associate-12345678", claims["user_id"])
	assert.Equal(t, models.RoleAssociate, claims["role"])
	assert.Equal(t, "STORE001", claims["store_id"])
}

func TestParseTokenRejectsTampering(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateToken(&models.User{ID: "manager-1", Email: "m@example.com"})
	require.NoError(t, err)

	_, err = ParseToken(token + "x")
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "other-secret")
	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("demo123")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("demo123", hash))
	assert.False(t, CheckPasswordHash("demo124", hash))
}
