package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"careercraft-backend/internal/shared/server/respond"
)

const (
	identityKey  = "identity"
	sessionIDKey = "sessionId"
	// SessionCookie carries the session token for browser clients.
	SessionCookie = "careercraft_session"
	// LoginPath is where gated routes send anonymous visitors.
	LoginPath = "/login"
)

// Identity is the caller as seen by the session layer.
type Identity struct {
	SessionID string
	Name      string
	Email     string
	LoggedIn  bool
}

// SessionResolver maps a session token to the caller's identity.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (Identity, error)
}

// Session resolves the bearer token or session cookie and stores the identity
// in context. Unknown or invalid tokens leave the caller anonymous.
func Session(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || resolver == nil {
			c.Next()
			return
		}
		token := SessionToken(c)
		if token == "" {
			c.Next()
			return
		}
		id, err := resolver.Resolve(c.Request.Context(), token)
		if err == nil {
			c.Set(identityKey, id)
			c.Set(sessionIDKey, id.SessionID)
		}
		c.Next()
	}
}

// SessionToken reads the token from the Authorization header, falling back to
// the session cookie.
func SessionToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return strings.TrimSpace(cookie)
	}
	return ""
}

// SetSessionCookie stores token in the session cookie. maxAge 0 makes it a
// browser-session cookie and a negative maxAge deletes it.
func SetSessionCookie(c *gin.Context, token string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, maxAge, "/", "", secure, true)
}

// RequireLogin refuses callers that are not logged in. JSON clients get a 401
// with the login redirect; browsers asking for HTML are redirected.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IdentityFromContext(c).LoggedIn {
			c.Next()
			return
		}
		if wantsHTML(c) {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		respond.Error(c, http.StatusUnauthorized, "login_required", "Please log in to continue.", gin.H{"redirect": LoginPath})
	}
}

// IdentityFromContext returns the identity stored by Session, or an anonymous one.
func IdentityFromContext(c *gin.Context) Identity {
	if c == nil {
		return Identity{}
	}
	val, _ := c.Get(identityKey)
	id, _ := val.(Identity)
	return id
}

// SessionIDFromContext returns the caller's session id, if any.
func SessionIDFromContext(c *gin.Context) string {
	return IdentityFromContext(c).SessionID
}

func wantsHTML(c *gin.Context) bool {
	accept := c.GetHeader("Accept")
	return strings.Contains(accept, "text/html") && !strings.Contains(accept, "application/json")
}
