package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bau-eg/university-portal/internal/middleware"
	"github.com/bau-eg/university-portal/internal/service"
	"github.com/bau-eg/university-portal/internal/session"
	appErrors "github.com/bau-eg/university-portal/pkg/errors"
)

// ExportHandler serves admin downloads of the grade sheet and activity trail.
// Routes look like /export/results.csv or /export/activity.pdf.
type ExportHandler struct {
	service *service.ExportService
}

// NewExportHandler creates a new handler.
func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// Download renders the requested dataset in the requested format.
func (h *ExportHandler) Download(c *gin.Context) {
	name, format, ok := strings.Cut(c.Param("file"), ".")
	if !ok {
		c.String(http.StatusNotFound, "unknown export")
		return
	}

	sess := middleware.CurrentSession(c)
	ctx := c.Request.Context()

	var (
		file *service.ExportFile
		err  error
	)
	switch name {
	case "results":
		file, err = h.service.Results(ctx, format, sess)
	case "activity":
		file, err = h.service.Activity(ctx, format, sess)
	default:
		c.String(http.StatusNotFound, "unknown export")
		return
	}
	if err != nil {
		session.SetFlash(c, "error", appErrors.FromError(err).Message)
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+file.Filename)
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
