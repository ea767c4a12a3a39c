package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/oksasatya/cardvault/config"
)

func testClient(p config.ProviderConfig) *Client {
	return NewClient(map[string]config.ProviderConfig{"github": p})
}

func githubConfig(tokenURL, userInfoURL string) config.ProviderConfig {
	return config.ProviderConfig{
		Name:         "GitHub",
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		AuthURL:      "https://github.example.com/login/oauth/authorize",
		TokenURL:     tokenURL,
		UserInfoURL:  userInfoURL,
		Scopes:       []string{"read:user", "user:email"},
	}
}

func TestAuthorizeURL(t *testing.T) {
	c := testClient(githubConfig("https://x", "https://y"))

	raw, err := c.AuthorizeURL("github", "http://localhost:8080/api/auth/oauth/github/callback", "state-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	q := u.Query()
	if q.Get("response_type") != "code" {
		t.Fatalf("unexpected response_type %q", q.Get("response_type"))
	}
	if q.Get("client_id") != "client-id" {
		t.Fatalf("unexpected client_id %q", q.Get("client_id"))
	}
	if q.Get("state") != "state-123" {
		t.Fatalf("unexpected state %q", q.Get("state"))
	}
	if q.Get("scope") != "read:user user:email" {
		t.Fatalf("unexpected scope %q", q.Get("scope"))
	}
	if q.Get("redirect_uri") != "http://localhost:8080/api/auth/oauth/github/callback" {
		t.Fatalf("unexpected redirect_uri %q", q.Get("redirect_uri"))
	}
}

func TestAuthorizeURLUnknownProvider(t *testing.T) {
	c := testClient(githubConfig("https://x", "https://y"))
	if _, err := c.AuthorizeURL("gitlab", "http://localhost/cb", "s"); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestExchange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("unexpected content type %q", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("unexpected form parse error: %v", err)
		}
		if r.PostForm.Get("grant_type") != "authorization_code" {
			t.Errorf("unexpected grant_type %q", r.PostForm.Get("grant_type"))
		}
		if r.PostForm.Get("code") != "auth-code" {
			t.Errorf("unexpected code %q", r.PostForm.Get("code"))
		}
		if r.PostForm.Get("client_secret") != "client-secret" {
			t.Errorf("unexpected client_secret %q", r.PostForm.Get("client_secret"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"at-99","token_type":"bearer","scope":"read:user","expires_in":3600}`))
	}))
	defer srv.Close()

	c := testClient(githubConfig(srv.URL, "https://y"))
	token, err := c.Exchange(context.Background(), "github", "auth-code", "http://localhost/cb")
	if err != nil {
		t.Fatalf("unexpected exchange error: %v", err)
	}
	if token.AccessToken != "at-99" || token.TokenType != "bearer" || token.Scope != "read:user" {
		t.Fatalf("unexpected token %+v", token)
	}
	if token.ExpiresAt.Before(time.Now().UTC().Add(30 * time.Minute)) {
		t.Fatalf("expected expiry roughly an hour out, got %v", token.ExpiresAt)
	}
}

func TestExchangeFailures(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		payload string
	}{
		{"provider rejects the code", http.StatusBadRequest, `{"error":"bad_verification_code"}`},
		{"missing access token", http.StatusOK, `{"error":"bad_verification_code"}`},
		{"garbage payload", http.StatusOK, `not json`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.payload))
			}))
			defer srv.Close()

			c := testClient(githubConfig(srv.URL, "https://y"))
			if _, err := c.Exchange(context.Background(), "github", "auth-code", "http://localhost/cb"); err == nil {
				t.Fatal("expected exchange error")
			}
		})
	}
}

func TestFetchProfileGitHub(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer at-99" {
			t.Errorf("unexpected authorization header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":581039,"login":"annh","email":"ann@example.com","name":"","avatar_url":"https://avatars.example.com/ann"}`))
	}))
	defer srv.Close()

	c := testClient(githubConfig("https://x", srv.URL))
	profile, err := c.FetchProfile(context.Background(), "github", "at-99")
	if err != nil {
		t.Fatalf("unexpected profile error: %v", err)
	}
	if profile.AccountID != "581039" {
		t.Fatalf("unexpected account id %q", profile.AccountID)
	}
	// Login stands in when the display name is unset.
	if profile.Name != "annh" {
		t.Fatalf("unexpected name %q", profile.Name)
	}
	if profile.Email != "ann@example.com" || profile.Image != "https://avatars.example.com/ann" {
		t.Fatalf("unexpected profile %+v", profile)
	}
}

func TestFetchProfileGoogle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"sub":"10987654321","email":"carol@example.com","name":"Carol","picture":"https://lh3.example.com/carol"}`))
	}))
	defer srv.Close()

	c := NewClient(map[string]config.ProviderConfig{"google": {
		Name:         "Google",
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		AuthURL:      "https://accounts.example.com/o/oauth2/v2/auth",
		TokenURL:     "https://x",
		UserInfoURL:  srv.URL,
		Scopes:       []string{"openid", "email", "profile"},
	}})
	profile, err := c.FetchProfile(context.Background(), "google", "at-1")
	if err != nil {
		t.Fatalf("unexpected profile error: %v", err)
	}
	if profile.AccountID != "10987654321" || profile.Email != "carol@example.com" || profile.Name != "Carol" {
		t.Fatalf("unexpected profile %+v", profile)
	}
}

func TestFetchProfileIncomplete(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{"no account id", `{"email":"ann@example.com","login":"annh"}`},
		{"no email", `{"id":7,"login":"annh"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tc.payload))
			}))
			defer srv.Close()

			c := testClient(githubConfig("https://x", srv.URL))
			if _, err := c.FetchProfile(context.Background(), "github", "at-1"); err == nil {
				t.Fatal("expected profile error")
			}
		})
	}
}

func TestFetchProfileUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := testClient(githubConfig("https://x", srv.URL))
	if _, err := c.FetchProfile(context.Background(), "github", "revoked"); err == nil {
		t.Fatal("expected profile error for upstream 401")
	}
}
