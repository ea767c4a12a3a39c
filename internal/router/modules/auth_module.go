package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/cardvault/internal/container"
	handlers "github.com/oksasatya/cardvault/internal/interface/http"
	"github.com/oksasatya/cardvault/internal/interface/middleware"
)

// AuthModule wires the credential endpoints.
// Public: POST /api/auth/register, POST /api/auth/login,
// GET /api/auth/session, GET /api/auth/oauth/:provider/{start,callback}
// Protected: POST /api/auth/logout
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Credential endpoints take the brunt of abuse; tight per-IP windows.
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath())
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath())

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.GET("/auth/session", m.Handler.Session)

	rg.GET("/auth/oauth/:provider/start", m.Handler.OAuthStart)
	rg.GET("/auth/oauth/:provider/callback", m.Handler.OAuthCallback)

	auth := rg.Group("/")
	auth.Use(middleware.SessionAuth(container.GetSessions()))
	{
		auth.POST("/auth/logout", m.Handler.Logout)
	}
}
