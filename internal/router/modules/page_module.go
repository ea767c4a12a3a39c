package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/cardvault/internal/interface/http"
)

// PageModule registers the page routes the gate polices. The gate
// middleware itself is installed on the page group by the registry.
type PageModule struct {
	Handler *handlers.PageHandler
}

func NewPageModule(h *handlers.PageHandler) *PageModule {
	return &PageModule{Handler: h}
}

func (m *PageModule) Register(rg *gin.RouterGroup) {
	rg.GET("/", m.Handler.Home)
	rg.GET("/dashboard", m.Handler.Dashboard)
	rg.GET("/auth/signin", m.Handler.SignIn)
	rg.GET("/auth/signup", m.Handler.SignUp)
}
