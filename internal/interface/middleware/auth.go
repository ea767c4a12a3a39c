package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/cardvault/pkg/helpers"
	"github.com/oksasatya/cardvault/pkg/response"
)

const CtxUserIDKey = "userID"

// SessionAuth gates API routes on a valid session token. Validation is a
// pure signature/expiry check on the cookie; no store round-trip. Missing,
// malformed, and expired tokens all get the same 401.
func SessionAuth(sessions *helpers.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(helpers.SessionCookieName)
		if err != nil || token == "" {
			response.AbortError(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		userID, err := sessions.Decode(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		c.Set(CtxUserIDKey, userID)
		c.Next()
	}
}
