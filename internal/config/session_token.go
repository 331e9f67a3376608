package config

import (
	"fmt"
	"os"
	"strconv"
)

// SessionTokenConfig holds configuration for signing form session tokens.
type SessionTokenConfig struct {
	Secret          string
	ExpirationHours int
}

// NewSessionTokenConfig creates a token configuration from environment variables.
// It reads SESSION_SECRET (required) and SESSION_EXPIRATION_HOURS (default: 24).
func NewSessionTokenConfig() (*SessionTokenConfig, error) {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required but not set")
	}

	expirationStr := os.Getenv("SESSION_EXPIRATION_HOURS")
	if expirationStr == "" {
		expirationStr = "24" // default
	}

	expirationHours, err := strconv.Atoi(expirationStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_EXPIRATION_HOURS: %v", err)
	}

	config := &SessionTokenConfig{
		Secret:          secret,
		ExpirationHours: expirationHours,
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *SessionTokenConfig) normalize() error {
	if len(c.Secret) < 16 {
		return fmt.Errorf("SESSION_SECRET must be at least 16 characters")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("SESSION_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}
