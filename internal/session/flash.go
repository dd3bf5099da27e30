package session

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const flashCookie = "portal_flash"

// Flash is a one-shot message rendered on the next page load, mirroring the
// flash-and-redirect error surface of the portal forms.
type Flash struct {
	Level   string
	Message string
}

// SetFlash stores a one-shot message in a short-lived cookie.
func SetFlash(c *gin.Context, level, message string) {
	value := base64.RawURLEncoding.EncodeToString([]byte(level + "|" + message))
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, value, 60, "/", "", false, true)
}

// PopFlash reads and clears the pending flash message, if any.
func PopFlash(c *gin.Context) *Flash {
	value, err := c.Cookie(flashCookie)
	if err != nil || value == "" {
		return nil
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil
	}
	parts := strings.SplitN(string(raw), "|", 2)
	if len(parts) != 2 {
		return nil
	}
	return &Flash{Level: parts[0], Message: parts[1]}
}
