package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"

	"kanban_backend/internal/feature/auth/domain/entity"
	"kanban_backend/internal/feature/auth/usecase"
)

const defaultUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

// userInfo is the OpenID Connect userinfo payload.
type userInfo struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// Provider exchanges authorization codes and fetches the Google profile.
type Provider struct {
	oauth       *oauth2.Config
	httpClient  *http.Client
	userInfoURL string
}

// Compile-time check to ensure Provider implements GoogleProvider.
var _ usecase.GoogleProvider = (*Provider)(nil)

// NewProvider creates a Provider requesting the openid, email and profile scopes.
func NewProvider(cfg Config, httpClient *http.Client) *Provider {
	return &Provider{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     googleoauth.Endpoint,
			Scopes:       []string{"openid", "email", "profile"},
		},
		httpClient:  httpClient,
		userInfoURL: defaultUserInfoURL,
	}
}

// AuthCodeURL returns the consent page URL.
func (p *Provider) AuthCodeURL(state string) string {
	return p.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// FetchProfile exchanges code for a token and reads the userinfo endpoint.
func (p *Provider) FetchProfile(ctx context.Context, code string) (*entity.GoogleProfile, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)

	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build userinfo request: %w", err)
	}
	resp, err := p.oauth.Client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("userinfo request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo returned status %d", resp.StatusCode)
	}

	var info userInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo: %w", err)
	}
	if info.Email == "" {
		return nil, fmt.Errorf("userinfo has no email")
	}

	return &entity.GoogleProfile{
		Subject:       info.Sub,
		Email:         info.Email,
		EmailVerified: info.EmailVerified,
		Name:          info.Name,
		Picture:       info.Picture,
	}, nil
}
