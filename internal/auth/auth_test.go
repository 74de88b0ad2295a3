package auth

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateJWT_RoundTrip(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret-key")
	defer os.Unsetenv("JWT_SECRET")

	token, err := GenerateJWT("account-123", "jordan", "session-abc")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "account-123", claims.AccountID)
	assert.Equal(t, "jordan", claims.Handle)
	assert.Equal(t, "session-abc", claims.SessionID)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestGenerateJWT_MissingSecret(t *testing.T) {
	os.Unsetenv("JWT_SECRET")

	_, err := GenerateJWT("account-123", "jordan", "session-abc")
	assert.Error(t, err)
}

func TestValidateJWT_WrongSecret(t *testing.T) {
	os.Setenv("JWT_SECRET", "first-secret")
	token, err := GenerateJWT("account-123", "jordan", "session-abc")
	require.NoError(t, err)

	os.Setenv("JWT_SECRET", "second-secret")
	defer os.Unsetenv("JWT_SECRET")

	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestValidateJWT_Tampered(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret-key")
	defer os.Unsetenv("JWT_SECRET")

	token, err := GenerateJWT("account-123", "jordan", "session-abc")
	require.NoError(t, err)

	_, err = ValidateJWT(token + "x")
	assert.Error(t, err)
}

func TestValidateJWT_Garbage(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret-key")
	defer os.Unsetenv("JWT_SECRET")

	_, err := ValidateJWT("not.a.token")
	assert.Error(t, err)
}
