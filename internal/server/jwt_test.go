package server

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-matcher/internal/config"
)

const testSecret = "test-secret-key-for-jwt-signing-minimum-32-bytes"

func setupTestJWTService(_ *testing.T, expirationHours int) *JWTService {
	return NewJWTService(&config.JWTConfig{
		Secret:          testSecret,
		ExpirationHours: expirationHours,
	})
}

func TestJWTService_GenerateToken(t *testing.T) {
	service := setupTestJWTService(t, 24)

	token, err := service.GenerateToken("user-1")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	assert.Equal(t, 3, len(parts), "JWT should have 3 parts separated by dots")

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	subject, err := claims.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, "user-1", subject)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTService_ValidateToken_Errors(t *testing.T) {
	service := setupTestJWTService(t, 1)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}})
	expiredToken, err := expired.SignedString([]byte(testSecret))
	require.NoError(t, err)

	otherKey := setupTestJWTService(t, 1)
	otherKey.config = &config.JWTConfig{Secret: "a-completely-different-signing-key", ExpirationHours: 1}
	forged, err := otherKey.GenerateToken("user-1")
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"}}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr string
	}{
		{"empty", "", "token string is empty"},
		{"malformed", "not.a.jwt", "malformed token"},
		{"expired", expiredToken, "token expired"},
		{"wrong key", forged, "invalid token signature"},
		{"alg none", unsigned, "invalid token signature"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateToken(tt.token)
			require.Error(t, err)
			assert.Nil(t, claims)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestJWTService_AsTokenValidator(t *testing.T) {
	service := setupTestJWTService(t, 1)
	token, err := service.GenerateToken("svc-gateway")
	require.NoError(t, err)

	claims, err := service.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	subject, err := claims.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, "svc-gateway", subject)

	_, err = service.AsTokenValidator().ValidateToken("garbage")
	assert.Error(t, err)
}
