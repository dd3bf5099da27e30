package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/bau-eg/university-portal/internal/middleware"
	"github.com/bau-eg/university-portal/internal/service"
	"github.com/bau-eg/university-portal/internal/session"
	appErrors "github.com/bau-eg/university-portal/pkg/errors"
)

// DashboardHandler renders the role-specific dashboard page.
type DashboardHandler struct {
	service  *service.DashboardService
	sessions *session.Manager
	logger   *zap.Logger
}

// NewDashboardHandler creates a new handler.
func NewDashboardHandler(svc *service.DashboardService, sessions *session.Manager, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{service: svc, sessions: sessions, logger: logger}
}

// Show loads the dashboard view for the current session. An account with an
// unrecognized role is logged out rather than shown a broken page.
func (h *DashboardHandler) Show(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	view, err := h.service.View(c.Request.Context(), sess)
	if err != nil {
		appErr := appErrors.FromError(err)
		if errors.Is(err, appErrors.ErrUnknownRole) || appErr.Code == appErrors.ErrUnauthenticated.Code {
			h.forceLogout(c)
			return
		}
		h.logger.Error("failed to build dashboard", zap.Error(err))
		session.SetFlash(c, "error", appErr.Message)
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	c.HTML(http.StatusOK, view.Template(), gin.H{
		"Flash":       session.PopFlash(c),
		"AcademicID":  view.AcademicID,
		"Role":        view.Role,
		"Courses":     view.Courses,
		"Lectures":    view.Lectures,
		"Assignments": view.Assignments,
		"Results":     view.Results,
		"Activity":    view.Activity,
		"UserCount":   view.UserCount,
	})
}

func (h *DashboardHandler) forceLogout(c *gin.Context) {
	if token, err := c.Cookie(h.sessions.CookieName()); err == nil && token != "" {
		_ = h.sessions.Destroy(c.Request.Context(), token)
	}
	h.sessions.ClearCookie(c)
	session.SetFlash(c, "error", "Please log in again")
	c.Redirect(http.StatusSeeOther, "/login")
}
