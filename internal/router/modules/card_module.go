package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/cardvault/internal/container"
	handlers "github.com/oksasatya/cardvault/internal/interface/http"
	"github.com/oksasatya/cardvault/internal/interface/middleware"
)

// CardModule wires the user-scoped card endpoints. Everything here
// requires a valid session.
type CardModule struct {
	Handler *handlers.CardHandler
}

func NewCardModule(h *handlers.CardHandler) *CardModule {
	return &CardModule{Handler: h}
}

func (m *CardModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.SessionAuth(container.GetSessions()))
	auth.Use(middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP()))
	{
		auth.GET("/cards", m.Handler.List)
		auth.POST("/cards", m.Handler.Create)
		auth.PUT("/cards/:id", m.Handler.Update)
		auth.DELETE("/cards/:id", m.Handler.Delete)
	}
}
