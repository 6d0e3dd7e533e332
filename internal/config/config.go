// Package config provides configuration loading and validation for the
// server and CLI, sourced from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// App holds the server process configuration. JWT and password hashing
// settings live in their own structs; this covers everything else.
type App struct {
	Port            int
	DatabaseURL     string
	GeminiAPIKey    string
	CORSOrigins     []string
	DocsDir         string
	AIDailyBudget   int
	AIRetryAttempts int
}

// Load reads the application configuration from environment variables.
// PORT defaults to 8080 and DOCS_DIR to ./docs; DATABASE_URL and
// GEMINI_API_KEY have no defaults and are validated by the callers that
// need them, so offline CLI use works without either.
func Load() (*App, error) {
	app := &App{
		Port:            getEnvInt("PORT", 8080),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		CORSOrigins:     parseList(getEnvString("CORS_ORIGINS", "*")),
		DocsDir:         getEnvString("DOCS_DIR", "./docs"),
		AIDailyBudget:   getEnvInt("AI_DAILY_BUDGET", 1500),
		AIRetryAttempts: getEnvInt("AI_RETRY_ATTEMPTS", 3),
	}
	if err := app.validate(); err != nil {
		return nil, err
	}
	return app, nil
}

func (a *App) validate() error {
	if a.Port < 1 || a.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", a.Port)
	}
	if a.AIDailyBudget < 0 {
		return fmt.Errorf("AI_DAILY_BUDGET must be non-negative, got: %d", a.AIDailyBudget)
	}
	if a.AIRetryAttempts < 1 {
		return fmt.Errorf("AI_RETRY_ATTEMPTS must be at least 1, got: %d", a.AIRetryAttempts)
	}
	return nil
}

// RequireDatabase returns an error when DATABASE_URL is unset. Handlers
// that persist data call this at startup rather than failing mid-request.
func (a *App) RequireDatabase() error {
	if a.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required but not set")
	}
	return nil
}

// RequireGemini returns an error when GEMINI_API_KEY is unset.
func (a *App) RequireGemini() error {
	if a.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required but not set")
	}
	return nil
}

// JWTConfig holds token signing settings, read separately from App so the
// CLI's offline commands never need JWT_SECRET.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

// NewJWTConfig reads JWT_SECRET (required) and JWT_EXPIRATION_HOURS
// (default 24) from the environment.
func NewJWTConfig() (*JWTConfig, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	hours, err := strictEnvInt("JWT_EXPIRATION_HOURS", 24)
	if err != nil {
		return nil, err
	}
	if hours < 1 {
		return nil, fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", hours)
	}

	return &JWTConfig{Secret: secret, ExpirationHours: hours}, nil
}

// PasswordConfig holds bcrypt hashing settings. The optional pepper is a
// process-level secret appended to every password before hashing.
type PasswordConfig struct {
	BcryptCost int
	Pepper     string
}

// NewPasswordConfig reads BCRYPT_COST (default 12, accepted range 10-14)
// and PASSWORD_PEPPER from the environment.
func NewPasswordConfig() (*PasswordConfig, error) {
	cost, err := strictEnvInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, err
	}
	if cost < 10 || cost > 14 {
		return nil, fmt.Errorf("bcrypt cost out of range: %d (must be 10-14)", cost)
	}

	return &PasswordConfig{
		BcryptCost: cost,
		Pepper:     os.Getenv("PASSWORD_PEPPER"),
	}, nil
}

// HashPassword bcrypt-hashes a password with the pepper applied.
func (c *PasswordConfig) HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw+c.Pepper), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether the password matches a stored hash.
func (c *PasswordConfig) VerifyPassword(pw, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(pw+c.Pepper)) == nil
}

// strictEnvInt is like getEnvInt but returns an error on a malformed
// value instead of falling back to the default.
func strictEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	return n, nil
}

// getEnvString gets an environment variable as a string with a default value.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// parseList splits a comma-separated environment value into trimmed entries.
func parseList(list string) []string {
	var result []string
	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
