package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/cardvault/internal/interface/middleware"
)

// PageHandler serves the minimal page shells behind the route gate.
// Rendering is a frontend concern; these exist so the gate has page
// routes to protect and redirect between.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

func (h *PageHandler) Home(c *gin.Context) {
	c.String(http.StatusOK, "cardvault")
}

// Dashboard is protected; the gate attaches the verified user id before
// the request reaches here.
func (h *PageHandler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"page":    "dashboard",
		"user_id": c.GetString(middleware.CtxUserIDKey),
	})
}

func (h *PageHandler) SignIn(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "signin", "next": c.Query("next")})
}

func (h *PageHandler) SignUp(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "signup"})
}
