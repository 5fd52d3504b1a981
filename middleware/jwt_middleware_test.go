package middleware

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateTokenPairRoundTrip(t *testing.T) {
	access, refresh, err := GenerateTokenPair("secret", "user-1", "jane@example.com")
	require.NoError(t, err)
	require.NotEqual(t, access, refresh)

	claims, err := ParseRefreshToken("secret", refresh)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "jane@example.com", claims.Email)
	require.True(t, claims.Refresh)
}

func TestParseRefreshTokenRejectsAccessToken(t *testing.T) {
	access, _, err := GenerateTokenPair("secret", "user-1", "jane@example.com")
	require.NoError(t, err)

	_, err = ParseRefreshToken("secret", access)
	require.Error(t, err)
}

func TestParseRefreshTokenRejectsWrongSecret(t *testing.T) {
	_, refresh, err := GenerateTokenPair("secret", "user-1", "jane@example.com")
	require.NoError(t, err)

	_, err = ParseRefreshToken("other-secret", refresh)
	require.Error(t, err)
}

func TestGenerateTokenPairRequiresSecret(t *testing.T) {
	_, _, err := GenerateTokenPair("", "user-1", "jane@example.com")
	require.Error(t, err)
}
