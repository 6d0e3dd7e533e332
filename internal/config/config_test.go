package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "./docs", cfg.DocsDir)
	assert.Equal(t, 1500, cfg.AIDailyBudget)
	assert.Equal(t, 3, cfg.AIRetryAttempts)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("AI_DAILY_BUDGET", "200")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, 200, cfg.AIDailyBudget)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "70000")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
}

func TestLoad_MalformedIntFallsBackToDefault(t *testing.T) {
	t.Setenv("AI_DAILY_BUDGET", "lots")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1500, cfg.AIDailyBudget)
}

func TestRequireDatabase(t *testing.T) {
	cfg := &App{}
	require.Error(t, cfg.RequireDatabase())

	cfg.DatabaseURL = "postgres://localhost/visapath"
	require.NoError(t, cfg.RequireDatabase())
}

func TestRequireGemini(t *testing.T) {
	cfg := &App{}
	require.Error(t, cfg.RequireGemini())

	cfg.GeminiAPIKey = "key"
	require.NoError(t, cfg.RequireGemini())
}

func TestNewJWTConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRATION_HOURS", "48")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, "test-secret", cfg.Secret)
	assert.Equal(t, 48, cfg.ExpirationHours)
}

func TestNewJWTConfig_SecretRequired(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := NewJWTConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestPasswordConfig_HashAndVerify(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10}

	hash, err := cfg.HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.True(t, cfg.VerifyPassword("hunter22", hash))
	assert.False(t, cfg.VerifyPassword("hunter23", hash))
}

func TestNewPasswordConfig_CostRange(t *testing.T) {
	t.Setenv("BCRYPT_COST", "9")
	_, err := NewPasswordConfig()
	require.Error(t, err)

	t.Setenv("BCRYPT_COST", "12")
	cfg, err := NewPasswordConfig()
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.BcryptCost)
}

func TestNewPasswordConfig_Pepper(t *testing.T) {
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("PASSWORD_PEPPER", "extra")

	cfg, err := NewPasswordConfig()
	require.NoError(t, err)
	assert.Equal(t, "extra", cfg.Pepper)

	hash, err := cfg.HashPassword("hunter22")
	require.NoError(t, err)
	assert.True(t, cfg.VerifyPassword("hunter22", hash))

	// Without the pepper the same password no longer verifies.
	unpeppered := &PasswordConfig{BcryptCost: 10}
	assert.False(t, unpeppered.VerifyPassword("hunter22", hash))
}

func TestAuthConfig_MalformedIntsAreErrors(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRATION_HOURS", "soon")
	_, err := NewJWTConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_EXPIRATION_HOURS")

	t.Setenv("BCRYPT_COST", "high")
	_, err = NewPasswordConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BCRYPT_COST")
}
