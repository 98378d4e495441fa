// Package jwtmw issues and verifies the bearer tokens that guard the board API.
package jwtmw

import (
	"log/slog"
	"os"
	"time"
)

const (
	// EnvKeyJWTSecret names the environment variable holding the HMAC secret.
	EnvKeyJWTSecret = "JWT_SECRET"
	// EnvKeyJWTExpiration names the environment variable holding the token lifetime (e.g. "1h").
	EnvKeyJWTExpiration = "JWT_EXPIRATION"

	defaultExpiration = time.Hour
)

// LoadExpirationFromEnv parses JWT_EXPIRATION, falling back to one hour.
func LoadExpirationFromEnv() time.Duration {
	raw := os.Getenv(EnvKeyJWTExpiration)
	if raw == "" {
		return defaultExpiration
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		slog.Warn("invalid JWT_EXPIRATION, using default", "value", raw, "default", defaultExpiration)
		return defaultExpiration
	}
	return d
}
