package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bau-eg/university-portal/internal/models"
	"github.com/bau-eg/university-portal/internal/session"
)

// RequireRoles enforces role-based access on routes already behind
// RequireSession. Callers with the wrong role are sent back to their own
// dashboard with a flash message.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		sess := CurrentSession(c)
		if sess == nil {
			session.SetFlash(c, "error", "Please log in first")
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		if _, ok := allowed[sess.Role]; !ok {
			session.SetFlash(c, "error", "You do not have permission to do that")
			c.Redirect(http.StatusSeeOther, "/dashboard")
			c.Abort()
			return
		}
		c.Next()
	}
}
