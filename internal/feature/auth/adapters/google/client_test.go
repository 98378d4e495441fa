package google

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

// newFakeGoogle serves the token and userinfo endpoints.
func newFakeGoogle(t *testing.T, userinfoStatus int, userinfoBody string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		if r.Form.Get("code") != "good-code" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"at-123","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer at-123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(userinfoStatus)
		_, _ = w.Write([]byte(userinfoBody))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestProvider(srv *httptest.Server) *Provider {
	p := NewProvider(Config{ClientID: "id", ClientSecret: "secret", RedirectURL: "http://localhost/cb"}, srv.Client())
	p.oauth.Endpoint = oauth2.Endpoint{AuthURL: srv.URL + "/auth", TokenURL: srv.URL + "/token"}
	p.userInfoURL = srv.URL + "/userinfo"
	return p
}

func TestConfig_Enabled(t *testing.T) {
	assert.False(t, Config{}.Enabled())
	assert.False(t, Config{ClientID: "id"}.Enabled())
	assert.True(t, Config{ClientID: "id", ClientSecret: "s"}.Enabled())
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "cid")
	t.Setenv("GOOGLE_CLIENT_SECRET", "csecret")
	t.Setenv("GOOGLE_REDIRECT_URL", "")

	cfg := LoadConfig()

	assert.Equal(t, "cid", cfg.ClientID)
	assert.Equal(t, "csecret", cfg.ClientSecret)
	assert.Equal(t, "http://localhost:3001/api/auth/google/callback", cfg.RedirectURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
}

func TestProvider_AuthCodeURL(t *testing.T) {
	p := NewProvider(Config{ClientID: "id", ClientSecret: "secret", RedirectURL: "http://localhost/cb"}, http.DefaultClient)

	raw := p.AuthCodeURL("state-xyz")

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "accounts.google.com", u.Host)
	q := u.Query()
	assert.Equal(t, "state-xyz", q.Get("state"))
	assert.Equal(t, "id", q.Get("client_id"))
	assert.Equal(t, "http://localhost/cb", q.Get("redirect_uri"))
	assert.Equal(t, "openid email profile", q.Get("scope"))
}

func TestProvider_FetchProfile(t *testing.T) {
	srv := newFakeGoogle(t, http.StatusOK,
		`{"sub":"1077","email":"jane@example.com","email_verified":true,"name":"Jane","picture":"https://pics/jane.png"}`)
	p := newTestProvider(srv)

	profile, err := p.FetchProfile(context.Background(), "good-code")

	require.NoError(t, err)
	assert.Equal(t, "1077", profile.Subject)
	assert.Equal(t, "jane@example.com", profile.Email)
	assert.True(t, profile.EmailVerified)
	assert.Equal(t, "Jane", profile.Name)
	assert.Equal(t, "https://pics/jane.png", profile.Picture)
}

func TestProvider_FetchProfile_Errors(t *testing.T) {
	tests := []struct {
		name   string
		code   string
		status int
		body   string
	}{
		{"bad code", "bad-code", http.StatusOK, `{}`},
		{"userinfo failure", "good-code", http.StatusInternalServerError, `oops`},
		{"malformed userinfo", "good-code", http.StatusOK, `{not json`},
		{"missing email", "good-code", http.StatusOK, `{"sub":"1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestProvider(newFakeGoogle(t, tt.status, tt.body))

			profile, err := p.FetchProfile(context.Background(), tt.code)

			assert.Error(t, err)
			assert.Nil(t, profile)
		})
	}
}
