package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fintrack/internal/session"
)

// Context keys set by RequireSession for downstream handlers.
const (
	UserIDKey   = "userID"
	UsernameKey = "username"
)

// RequireSession resolves the session cookie against the store and sets the
// authenticated identity on the context. Requests without a valid session
// are redirected to the login page; protected content is never rendered and
// resource existence is never revealed to anonymous clients.
func RequireSession(store session.Store, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		identity, ok := store.Get(token)
		if !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set(UserIDKey, identity.UserID)
		c.Set(UsernameKey, identity.Username)
		c.Next()
	}
}

// RequireAdmin allows only the distinguished admin identity through. It must
// run after RequireSession. Authorization failure is a silent redirect to
// the dashboard, not an error page.
func RequireAdmin(adminUsername string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(UsernameKey) != adminUsername {
			c.Redirect(http.StatusFound, "/dashboard")
			c.Abort()
			return
		}
		c.Next()
	}
}
