package handler

import (
	"fmt"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/bau-eg/university-portal/internal/middleware"
	"github.com/bau-eg/university-portal/internal/service"
	"github.com/bau-eg/university-portal/internal/session"
	appErrors "github.com/bau-eg/university-portal/pkg/errors"
)

// DocumentHandler serves file upload and download.
type DocumentHandler struct {
	service *service.DocumentService
	metrics *service.MetricsService
}

// NewDocumentHandler creates a new handler.
func NewDocumentHandler(svc *service.DocumentService, metrics *service.MetricsService) *DocumentHandler {
	return &DocumentHandler{service: svc, metrics: metrics}
}

// Upload accepts one multipart file from the "file" field, stores it and
// bounces back to the dashboard with a flash message either way.
func (h *DocumentHandler) Upload(c *gin.Context) {
	sess := middleware.CurrentSession(c)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		session.SetFlash(c, "error", appErrors.ErrNoFileSelected.Message)
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}
	defer file.Close()

	stored, err := h.service.Upload(c.Request.Context(), service.DocumentUpload{
		Filename: header.Filename,
		Size:     header.Size,
		Content:  file,
	}, sess)
	if err != nil {
		session.SetFlash(c, "error", appErrors.FromError(err).Message)
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}

	if h.metrics != nil {
		h.metrics.RecordUpload()
	}
	session.SetFlash(c, "success", fmt.Sprintf("Uploaded %s", stored))
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

// Download streams a stored document as an attachment. The route is public;
// unknown names get a plain 404.
func (h *DocumentHandler) Download(c *gin.Context) {
	filename := c.Param("filename")

	dl, err := h.service.Download(c.Request.Context(), filename)
	if err != nil {
		c.String(http.StatusNotFound, "file not found")
		return
	}
	defer dl.File.Close()

	if h.metrics != nil {
		h.metrics.RecordDownload()
	}

	contentType := mime.TypeByExtension(filepath.Ext(dl.Filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, dl.SizeBytes, contentType, dl.File, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", dl.Filename),
	})
}
