package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	os.Setenv("JWT_SECRET", "test-secret")
	os.Setenv("GENERATOR_API_KEY", "test-key")

	t.Cleanup(func() {
		os.Unsetenv("JWT_SECRET")
		os.Unsetenv("GENERATOR_API_KEY")
		os.Unsetenv("DATABASE_URL")
		os.Unsetenv("SESSION_EXEMPT_PATHS")
	})
}

func TestLoadEnvironmentVariables_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadEnvironmentVariables()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.HasDatabase())
	assert.Equal(t, defaultSessionExemptPaths, cfg.SessionExemptPaths)
}

func TestLoadEnvironmentVariables_MissingJWTSecret(t *testing.T) {
	setRequiredEnv(t)
	os.Unsetenv("JWT_SECRET")

	_, err := LoadEnvironmentVariables()
	assert.Error(t, err)
}

func TestLoadEnvironmentVariables_MissingGeneratorKey(t *testing.T) {
	setRequiredEnv(t)
	os.Unsetenv("GENERATOR_API_KEY")

	_, err := LoadEnvironmentVariables()
	assert.Error(t, err)
}

func TestLoadEnvironmentVariables_Database(t *testing.T) {
	setRequiredEnv(t)
	os.Setenv("DATABASE_URL", "postgres://localhost/pitchprep")

	cfg, err := LoadEnvironmentVariables()
	require.NoError(t, err)
	assert.True(t, cfg.HasDatabase())
}

func TestLoadSessionExemptPaths_Custom(t *testing.T) {
	setRequiredEnv(t)
	os.Setenv("SESSION_EXEMPT_PATHS", "/api/v1/practice/exam, ,/api/v1/other")

	cfg, err := LoadEnvironmentVariables()
	require.NoError(t, err)
	assert.Equal(t, []string{"/api/v1/practice/exam", "/api/v1/other"}, cfg.SessionExemptPaths)
}
