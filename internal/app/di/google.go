// Package di provides dependency injection factories for creating application components.
package di

import (
	"kanban_backend/internal/feature/auth/adapters/google"
	infrahttp "kanban_backend/internal/platform/http"
)

// NewGoogleProvider creates a Google OAuth provider with its HTTP client.
// It returns nil when GOOGLE_CLIENT_ID or GOOGLE_CLIENT_SECRET is unset.
func NewGoogleProvider() *google.Provider {
	cfg := google.LoadConfig()
	if !cfg.Enabled() {
		return nil
	}
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return google.NewProvider(cfg, httpClient)
}
