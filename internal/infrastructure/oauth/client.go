package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/oksasatya/cardvault/config"
)

// Client runs the authorization-code exchange against configured
// providers and fetches the resulting profile. It performs the
// cryptographic half of provider login; the linking rules live in the
// application layer.
type Client struct {
	Providers  map[string]config.ProviderConfig
	HTTPClient *http.Client
}

func NewClient(providers map[string]config.ProviderConfig) *Client {
	return &Client{
		Providers:  providers,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Token is the provider's grant from the code exchange.
type Token struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	Scope        string
	ExpiresAt    time.Time
}

// Profile is the provider-verified identity tuple.
type Profile struct {
	AccountID string
	Email     string
	Name      string
	Image     string
}

func (c *Client) provider(id string) (config.ProviderConfig, error) {
	p, ok := c.Providers[id]
	if !ok || !p.Configured() {
		return config.ProviderConfig{}, fmt.Errorf("unknown or unconfigured provider %q", id)
	}
	return p, nil
}

// AuthorizeURL builds the provider's consent redirect for one attempt.
func (c *Client) AuthorizeURL(providerID, redirectURI, state string) (string, error) {
	p, err := c.provider(providerID)
	if err != nil {
		return "", err
	}
	authURL, err := url.Parse(p.AuthURL)
	if err != nil {
		return "", err
	}
	query := url.Values{}
	query.Set("response_type", "code")
	query.Set("client_id", p.ClientID)
	query.Set("redirect_uri", redirectURI)
	query.Set("scope", strings.Join(p.Scopes, " "))
	query.Set("state", state)
	authURL.RawQuery = query.Encode()
	return authURL.String(), nil
}

// Exchange trades the authorization code for provider tokens.
func (c *Client) Exchange(ctx context.Context, providerID, code, redirectURI string) (Token, error) {
	p, err := c.provider(providerID)
	if err != nil {
		return Token{}, err
	}

	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", redirectURI)
	form.Set("client_id", p.ClientID)
	form.Set("client_secret", p.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return Token{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return Token{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Token{}, errors.New("token exchange failed")
	}

	var payload struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		TokenType    string `json:"token_type"`
		Scope        string `json:"scope"`
		ExpiresIn    int64  `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Token{}, err
	}
	if payload.AccessToken == "" {
		return Token{}, errors.New("missing access token")
	}

	var expiresAt time.Time
	if payload.ExpiresIn > 0 {
		expiresAt = time.Now().UTC().Add(time.Duration(payload.ExpiresIn) * time.Second)
	}
	return Token{
		AccessToken:  payload.AccessToken,
		RefreshToken: payload.RefreshToken,
		TokenType:    payload.TokenType,
		Scope:        payload.Scope,
		ExpiresAt:    expiresAt,
	}, nil
}

// FetchProfile retrieves the identity tuple behind an access token.
// Provider payload shapes differ, so decoding is per provider.
func (c *Client) FetchProfile(ctx context.Context, providerID, accessToken string) (Profile, error) {
	p, err := c.provider(providerID)
	if err != nil {
		return Profile{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.UserInfoURL, nil)
	if err != nil {
		return Profile{}, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return Profile{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Profile{}, errors.New("profile request failed")
	}

	var profile Profile
	if strings.EqualFold(p.Name, "Google") {
		var payload struct {
			Sub     string `json:"sub"`
			Email   string `json:"email"`
			Name    string `json:"name"`
			Picture string `json:"picture"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return Profile{}, err
		}
		profile = Profile{AccountID: payload.Sub, Email: payload.Email, Name: payload.Name, Image: payload.Picture}
	} else {
		var payload struct {
			ID        int64  `json:"id"`
			Login     string `json:"login"`
			Email     string `json:"email"`
			Name      string `json:"name"`
			AvatarURL string `json:"avatar_url"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return Profile{}, err
		}
		name := payload.Name
		if name == "" {
			name = payload.Login
		}
		profile = Profile{AccountID: strconv.FormatInt(payload.ID, 10), Email: payload.Email, Name: name, Image: payload.AvatarURL}
	}

	if profile.AccountID == "" {
		return Profile{}, errors.New("missing provider account id")
	}
	if profile.Email == "" {
		return Profile{}, errors.New("provider did not supply an email")
	}
	return profile, nil
}
