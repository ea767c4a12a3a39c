package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/cardvault/config"
	"github.com/oksasatya/cardvault/internal/application"
	"github.com/oksasatya/cardvault/internal/infrastructure/oauth"
	"github.com/oksasatya/cardvault/pkg/helpers"
	"github.com/oksasatya/cardvault/pkg/response"
	"github.com/oksasatya/cardvault/pkg/validation"
)

type AuthHandler struct {
	Auth    *application.AuthService
	OAuth   *oauth.Client
	States  *oauth.StateStore
	Cookies *helpers.CookieManager
	Logger  *logrus.Logger
	Cfg     *config.Config
}

func NewAuthHandler(auth *application.AuthService, oa *oauth.Client, states *oauth.StateStore, logger *logrus.Logger, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		Auth:    auth,
		OAuth:   oa,
		States:  states,
		Cookies: helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure),
		Logger:  logger,
		Cfg:     cfg,
	}
}

type registerRequest struct {
	Name            string `json:"name" binding:"required,min=2"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,pwd"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=Password"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, validation.First(err), validation.ToDetails(err))
		return
	}
	u, err := h.Auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrEmailTaken) {
			response.Error[any](c, http.StatusConflict, "user with this email already exists", nil)
			return
		}
		h.Logger.WithError(err).Error("registration failed")
		response.Error[any](c, http.StatusInternalServerError, "something went wrong", nil)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
	}, "user created")
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, validation.First(err), validation.ToDetails(err))
		return
	}
	identity, token, exp, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrInvalidCredentials) {
			response.Error[any](c, http.StatusUnauthorized, "invalid credentials", nil)
			return
		}
		h.Logger.WithError(err).Error("login failed")
		response.Error[any](c, http.StatusInternalServerError, "something went wrong", nil)
		return
	}
	h.Cookies.SetSession(c, token, exp)
	response.Success(c, http.StatusOK, identity, "login successful")
}

// Logout POST /api/auth/logout
// Tokens are stateless, so sign-out is a client instruction to discard.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.Success(c, http.StatusOK, gin.H{"logged_out": true}, "logged out")
}

// Session GET /api/auth/session
// Reports the session's user id, or authenticated=false for any request
// without a decodable token.
func (h *AuthHandler) Session(c *gin.Context) {
	token, err := c.Cookie(helpers.SessionCookieName)
	if err == nil && token != "" {
		if userID, derr := h.Auth.Sessions.Decode(token); derr == nil {
			response.Success(c, http.StatusOK, gin.H{"authenticated": true, "user_id": userID}, "session")
			return
		}
	}
	response.Success(c, http.StatusOK, gin.H{"authenticated": false}, "session")
}

func (h *AuthHandler) callbackURL(provider string) string {
	return h.Cfg.BaseURL + "/api/auth/oauth/" + provider + "/callback"
}

// OAuthStart GET /api/auth/oauth/:provider/start
// Issues a single-use state nonce and redirects to the provider's
// consent screen.
func (h *AuthHandler) OAuthStart(c *gin.Context) {
	provider := c.Param("provider")
	state, err := h.States.Create(c.Request.Context(), provider)
	if err != nil {
		h.Logger.WithError(err).Error("oauth state create failed")
		response.Error[any](c, http.StatusInternalServerError, "something went wrong", nil)
		return
	}
	authorizeURL, err := h.OAuth.AuthorizeURL(provider, h.callbackURL(provider), state)
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "unknown provider", nil)
		return
	}
	c.Redirect(http.StatusFound, authorizeURL)
}

// OAuthCallback GET /api/auth/oauth/:provider/callback
// Validates state, exchanges the code, fetches the profile, and hands
// the verified assertion to the authenticator's provider path.
func (h *AuthHandler) OAuthCallback(c *gin.Context) {
	provider := c.Param("provider")

	if errParam := c.Query("error"); errParam != "" {
		response.Error[any](c, http.StatusBadRequest, "provider returned an error", nil)
		return
	}
	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		response.Error[any](c, http.StatusBadRequest, "missing code or state", nil)
		return
	}

	ctx := c.Request.Context()
	issuedFor, err := h.States.Consume(ctx, state)
	if err != nil || issuedFor != provider {
		response.Error[any](c, http.StatusBadRequest, "invalid or expired state", nil)
		return
	}

	token, err := h.OAuth.Exchange(ctx, provider, code, h.callbackURL(provider))
	if err != nil {
		h.Logger.WithError(err).WithField("provider", provider).Warn("code exchange failed")
		response.Error[any](c, http.StatusBadRequest, "sign-in with provider failed", nil)
		return
	}
	profile, err := h.OAuth.FetchProfile(ctx, provider, token.AccessToken)
	if err != nil {
		h.Logger.WithError(err).WithField("provider", provider).Warn("profile fetch failed")
		response.Error[any](c, http.StatusBadRequest, "sign-in with provider failed", nil)
		return
	}

	identity, err := h.Auth.AuthenticateProvider(ctx, application.ProviderAssertion{
		Provider:          provider,
		ProviderAccountID: profile.AccountID,
		Email:             profile.Email,
		Name:              profile.Name,
		Image:             profile.Image,
		AccessToken:       token.AccessToken,
		RefreshToken:      token.RefreshToken,
		TokenType:         token.TokenType,
		Scope:             token.Scope,
		ExpiresAt:         token.ExpiresAt,
	})
	if err != nil {
		// Linking failures abort the attempt; details stay in the log.
		response.Error[any](c, http.StatusInternalServerError, "something went wrong", nil)
		return
	}

	sessionToken, exp, err := h.Auth.IssueSession(identity)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "something went wrong", nil)
		return
	}
	h.Cookies.SetSession(c, sessionToken, exp)
	c.Redirect(http.StatusFound, h.Cfg.LandingPath)
}
