package config

import (
	"fmt"
)

// DefaultJWTExpirationHours is the lifetime of tokens minted by the service.
const DefaultJWTExpirationHours = 24

// JWTConfig holds configuration for bearer token validation. An empty Secret
// disables authentication on the recommendation routes.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

// Enabled reports whether bearer tokens are required.
func (c JWTConfig) Enabled() bool {
	return c.Secret != ""
}

// normalize validates the configuration.
func (c *JWTConfig) normalize() error {
	if c.ExpirationHours == 0 {
		c.ExpirationHours = DefaultJWTExpirationHours
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	if len(c.Secret) < 16 {
		return fmt.Errorf("JWT_SECRET must be at least 16 characters")
	}
	return nil
}
