// Package google implements Google sign-in for the auth feature.
package google

import (
	"os"
	"time"
)

// Config holds the OAuth client registration.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Timeout      time.Duration
}

// Enabled reports whether both client credentials are present.
func (c Config) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// LoadConfig reads GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET and GOOGLE_REDIRECT_URL.
func LoadConfig() Config {
	redirect := os.Getenv("GOOGLE_REDIRECT_URL")
	if redirect == "" {
		redirect = "http://localhost:3001/api/auth/google/callback"
	}
	return Config{
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		RedirectURL:  redirect,
		Timeout:      10 * time.Second,
	}
}
