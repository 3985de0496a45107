package utils

import (
	"testing"
	"time"

	"qaqfplatform/backend/config"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:     "testsecret",
		TokenTTLHours: 72,
	}
}

func TestJWTRoundTrip(t *testing.T) {
	cfg := testConfig()

	token, err := GenerateJWTToken(42, "alice", cfg)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := VerifyJWTToken(token, cfg)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestJWTWrongSecretRejected(t *testing.T) {
	cfg := testConfig()

	token, err := GenerateJWTToken(42, "alice", cfg)
	require.NoError(t, err)

	other := &config.Config{JWTSecret: "othersecret", TokenTTLHours: 72}
	_, err = VerifyJWTToken(token, other)
	assert.Error(t, err)
}

func TestJWTGarbageRejected(t *testing.T) {
	_, err := VerifyJWTToken("not.a.token", testConfig())
	assert.Error(t, err)
}

func TestJWTExpiredRejected(t *testing.T) {
	cfg := testConfig()

	claims := jwt.MapClaims{
		"user_id":  float64(42),
		"username": "alice",
		"exp":      time.Now().Add(-time.Hour).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWTSecret))
	require.NoError(t, err)

	_, err = VerifyJWTToken(expired, cfg)
	assert.Error(t, err)
}
