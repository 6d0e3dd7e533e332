package server

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dileep2896/visapath/internal/config"
)

func newTestJWTService(t *testing.T) *JWTService {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret-that-is-long-enough")
	cfg, err := config.NewJWTConfig()
	require.NoError(t, err)
	return NewJWTService(cfg)
}

func TestJWT_RoundTrip(t *testing.T) {
	svc := newTestJWTService(t)
	userID := uuid.New()

	token, err := svc.GenerateToken(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID, claims.GetUserID())
}

func TestJWT_EmptyToken(t *testing.T) {
	svc := newTestJWTService(t)

	_, err := svc.ValidateToken("")
	assert.ErrorContains(t, err, "empty")
}

func TestJWT_TamperedToken(t *testing.T) {
	svc := newTestJWTService(t)

	token, err := svc.GenerateToken(uuid.New())
	require.NoError(t, err)

	_, err = svc.ValidateToken(token + "x")
	assert.Error(t, err)
}

func TestJWT_WrongSecret(t *testing.T) {
	svc := newTestJWTService(t)
	token, err := svc.GenerateToken(uuid.New())
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "a-completely-different-secret-key")
	otherCfg, err := config.NewJWTConfig()
	require.NoError(t, err)

	_, err = NewJWTService(otherCfg).ValidateToken(token)
	assert.Error(t, err)
}

func TestJWT_ValidatorAdapter(t *testing.T) {
	svc := newTestJWTService(t)
	userID := uuid.New()

	token, err := svc.GenerateToken(userID)
	require.NoError(t, err)

	getter, err := svc.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, getter.GetUserID())
}
