package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bau-eg/university-portal/internal/middleware"
	"github.com/bau-eg/university-portal/internal/models"
	"github.com/bau-eg/university-portal/internal/service"
	"github.com/bau-eg/university-portal/internal/session"
	appErrors "github.com/bau-eg/university-portal/pkg/errors"
)

// ResultHandler records grade rows entered by professors and admins.
type ResultHandler struct {
	service *service.ResultService
}

// NewResultHandler creates a new handler.
func NewResultHandler(svc *service.ResultService) *ResultHandler {
	return &ResultHandler{service: svc}
}

// Publish stores one submitted grade row and returns to the dashboard.
func (h *ResultHandler) Publish(c *gin.Context) {
	var req models.ResultRequest
	if err := c.ShouldBind(&req); err != nil {
		session.SetFlash(c, "error", "Invalid result form")
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}

	if err := h.service.Publish(c.Request.Context(), req, middleware.CurrentSession(c)); err != nil {
		session.SetFlash(c, "error", appErrors.FromError(err).Message)
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}

	session.SetFlash(c, "success", "Result published")
	c.Redirect(http.StatusSeeOther, "/dashboard")
}
