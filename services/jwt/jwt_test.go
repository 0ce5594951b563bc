package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateAndValidateTokenPair(t *testing.T) {
	accessToken, refreshToken, err := GenerateTokenPair("jo@example.com", testSecret, false, 42, "User")
	require.NoError(t, err)
	require.NotEmpty(t, accessToken)
	require.NotEmpty(t, refreshToken)

	claims, err := ValidateAndGetClaims(accessToken, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "jo@example.com", claims["email"])
	assert.Equal(t, float64(42), claims["id"])
	assert.Equal(t, false, claims["is_admin"])
	assert.Equal(t, "access", claims["type"])
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	accessToken, _, err := GenerateTokenPair("jo@example.com", testSecret, false, 42, "User")
	require.NoError(t, err)

	_, err = ValidateAndGetClaims(accessToken, "other-secret")
	assert.Error(t, err)
}

func TestGenerateTokenPairEmptySecret(t *testing.T) {
	_, _, err := GenerateTokenPair("jo@example.com", "", false, 42, "User")
	assert.Error(t, err)
}

func TestPasswordResetTokenRoundTrip(t *testing.T) {
	token, err := GeneratePasswordResetToken("jo@example.com", testSecret)
	require.NoError(t, err)

	email, err := VerifyPasswordResetToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "jo@example.com", email)
}

func TestAccessTokenIsNotAResetToken(t *testing.T) {
	accessToken, _, err := GenerateTokenPair("jo@example.com", testSecret, false, 42, "User")
	require.NoError(t, err)

	_, err = VerifyPasswordResetToken(accessToken, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
