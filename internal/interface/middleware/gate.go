package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/cardvault/pkg/helpers"
)

// PathClass is the gate's partition of the path space. Every path falls
// into exactly one class.
type PathClass int

const (
	PathPublic PathClass = iota
	PathProtected
	PathAuthFlow
)

type Action int

const (
	ActionForward Action = iota
	ActionRedirect
)

// Decision is the gate's normalized outcome for one request: forward it
// (optionally with the verified user attached) or redirect it.
type Decision struct {
	Action   Action
	Location string
	UserID   string
}

// GateConfig describes the gate policy independent of any server runtime.
type GateConfig struct {
	ProtectedPrefixes []string
	AuthFlowPrefixes  []string
	SignInPath        string
	LandingPath       string
}

func DefaultGateConfig(signInPath, landingPath string) GateConfig {
	return GateConfig{
		ProtectedPrefixes: []string{"/dashboard"},
		AuthFlowPrefixes:  []string{"/auth"},
		SignInPath:        signInPath,
		LandingPath:       landingPath,
	}
}

// Classify assigns the path its class. Auth-flow wins over protected so
// the sign-in page itself is never gated.
func (g GateConfig) Classify(path string) PathClass {
	for _, p := range g.AuthFlowPrefixes {
		if strings.HasPrefix(path, p) {
			return PathAuthFlow
		}
	}
	for _, p := range g.ProtectedPrefixes {
		if strings.HasPrefix(path, p) {
			return PathProtected
		}
	}
	return PathPublic
}

// Decide maps (path, authenticated user) to a forward/redirect outcome.
// It is a pure function so the policy is testable without a server.
//
//	authed  + auth-flow  → redirect to the landing page
//	anon    + protected  → redirect to sign-in, destination preserved
//	authed  + protected  → forward with identity attached
//	everything else      → forward
func (g GateConfig) Decide(path, userID string) Decision {
	authed := userID != ""
	switch g.Classify(path) {
	case PathAuthFlow:
		if authed {
			return Decision{Action: ActionRedirect, Location: g.LandingPath}
		}
	case PathProtected:
		if !authed {
			return Decision{Action: ActionRedirect, Location: g.SignInPath + "?next=" + url.QueryEscape(path)}
		}
		return Decision{Action: ActionForward, UserID: userID}
	}
	return Decision{Action: ActionForward, UserID: userID}
}

// RouteGate runs the gate policy on every page request. The session token
// is decoded once here; handlers downstream reuse the attached identity
// instead of re-validating.
func RouteGate(cfg GateConfig, sessions *helpers.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := ""
		if token, err := c.Cookie(helpers.SessionCookieName); err == nil && token != "" {
			// An unverifiable or expired token is the same as no session.
			userID, _ = sessions.Decode(token)
		}

		d := cfg.Decide(c.Request.URL.Path, userID)
		if d.Action == ActionRedirect {
			c.Redirect(http.StatusFound, d.Location)
			c.Abort()
			return
		}
		if d.UserID != "" {
			c.Set(CtxUserIDKey, d.UserID)
		}
		c.Next()
	}
}
