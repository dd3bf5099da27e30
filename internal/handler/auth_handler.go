package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bau-eg/university-portal/internal/models"
	"github.com/bau-eg/university-portal/internal/service"
	"github.com/bau-eg/university-portal/internal/session"
	appErrors "github.com/bau-eg/university-portal/pkg/errors"
)

// AuthHandler wires the register, login and logout pages to the auth service.
type AuthHandler struct {
	service  *service.AuthService
	sessions *session.Manager
	metrics  *service.MetricsService
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc *service.AuthService, sessions *session.Manager, metrics *service.MetricsService) *AuthHandler {
	return &AuthHandler{service: svc, sessions: sessions, metrics: metrics}
}

// ShowLogin renders the login form.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Flash": session.PopFlash(c),
	})
}

// Login authenticates the form credentials and starts a session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		session.SetFlash(c, "error", "Invalid login form")
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	token, _, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if h.metrics != nil {
			h.metrics.RecordLogin(false)
		}
		session.SetFlash(c, "error", appErrors.FromError(err).Message)
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	if h.metrics != nil {
		h.metrics.RecordLogin(true)
	}
	h.sessions.SetCookie(c, token)
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

// ShowRegister renders the registration form.
func (h *AuthHandler) ShowRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{
		"Flash": session.PopFlash(c),
	})
}

// Register creates a new account and sends the user to the login page.
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		session.SetFlash(c, "error", "Invalid registration form")
		c.Redirect(http.StatusSeeOther, "/register")
		return
	}

	if err := h.service.Register(c.Request.Context(), req); err != nil {
		session.SetFlash(c, "error", appErrors.FromError(err).Message)
		c.Redirect(http.StatusSeeOther, "/register")
		return
	}

	session.SetFlash(c, "success", "Account created, please log in")
	c.Redirect(http.StatusSeeOther, "/login")
}

// Logout destroys the session behind the cookie and clears it. Logging out
// without a session is a no-op redirect.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(h.sessions.CookieName()); err == nil && token != "" {
		if err := h.service.Logout(c.Request.Context(), token); err != nil {
			session.SetFlash(c, "error", appErrors.FromError(err).Message)
		}
	}
	h.sessions.ClearCookie(c)
	c.Redirect(http.StatusSeeOther, "/login")
}
