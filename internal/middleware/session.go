package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bau-eg/university-portal/internal/session"
)

// ContextSessionKey is the gin context key storing the resolved session.
const ContextSessionKey = "currentSession"

// RequireSession protects page routes by requiring a live session cookie.
// Requests without one are bounced to the login page with a flash message.
func RequireSession(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := resolve(c, sessions)
		if sess == nil {
			session.SetFlash(c, "error", "Please log in first")
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		c.Set(ContextSessionKey, sess)
		c.Next()
	}
}

// OptionalSession attaches the session when present but does not block.
func OptionalSession(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sess := resolve(c, sessions); sess != nil {
			c.Set(ContextSessionKey, sess)
		}
		c.Next()
	}
}

// CurrentSession extracts the session stored by RequireSession or
// OptionalSession. It returns nil when the request is anonymous.
func CurrentSession(c *gin.Context) *session.Session {
	value, exists := c.Get(ContextSessionKey)
	if !exists {
		return nil
	}
	sess, ok := value.(*session.Session)
	if !ok {
		return nil
	}
	return sess
}

func resolve(c *gin.Context, sessions *session.Manager) *session.Session {
	token, err := c.Cookie(sessions.CookieName())
	if err != nil || token == "" {
		return nil
	}
	sess, err := sessions.Resolve(c.Request.Context(), token)
	if err != nil {
		return nil
	}
	return sess
}
