package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTConfig_Normalize(t *testing.T) {
	cfg := JWTConfig{Secret: "0123456789abcdef"}
	require.NoError(t, cfg.normalize())
	assert.Equal(t, DefaultJWTExpirationHours, cfg.ExpirationHours, "should use default expiration of 24 hours")
	assert.True(t, cfg.Enabled())
}

func TestJWTConfig_NormalizeErrors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     JWTConfig
		wantErr string
	}{
		{"short secret", JWTConfig{Secret: "short"}, "at least 16 characters"},
		{"negative expiration", JWTConfig{Secret: "0123456789abcdef", ExpirationHours: -1}, "at least 1 hour"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.normalize()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestJWTConfig_Disabled(t *testing.T) {
	assert.False(t, JWTConfig{}.Enabled())
}
