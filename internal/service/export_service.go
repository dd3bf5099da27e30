package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/bau-eg/university-portal/internal/models"
	"github.com/bau-eg/university-portal/internal/session"
	appErrors "github.com/bau-eg/university-portal/pkg/errors"
	"github.com/bau-eg/university-portal/pkg/export"
)

type exportCatalogReader interface {
	ListResults(ctx context.Context) ([]models.Result, error)
}

type exportActivityReader interface {
	ListAll(ctx context.Context) ([]models.ActivityLog, error)
}

type datasetRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportFile is a rendered export ready for streaming as an attachment.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ExportService renders admin exports of the grade sheet and activity trail.
type ExportService struct {
	catalog  exportCatalogReader
	activity exportActivityReader
	csv      datasetRenderer
	pdf      pdfRenderer
	logger   *zap.Logger
}

// NewExportService constructs the service with the pack's CSV/PDF renderers.
func NewExportService(catalog exportCatalogReader, activity exportActivityReader, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		catalog:  catalog,
		activity: activity,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		logger:   logger,
	}
}

// Results renders the grade sheet in the requested format ("csv" or "pdf").
func (s *ExportService) Results(ctx context.Context, format string, sess *session.Session) (*ExportFile, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	results, err := s.catalog.ListResults(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load results")
	}

	data := export.Dataset{
		Headers: []string{"Student", "Course", "Grade"},
		Rows:    make([]map[string]string, 0, len(results)),
	}
	for _, r := range results {
		data.Rows = append(data.Rows, map[string]string{
			"Student": r.StudentName,
			"Course":  r.CourseName,
			"Grade":   r.Grade,
		})
	}

	return s.render(data, "results", "Results", format)
}

// Activity renders the full activity trail in the requested format.
func (s *ExportService) Activity(ctx context.Context, format string, sess *session.Session) (*ExportFile, error) {
	if err := requireAdmin(sess); err != nil {
		return nil, err
	}
	logs, err := s.activity.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load activity log")
	}

	data := export.Dataset{
		Headers: []string{"User", "Action", "Timestamp"},
		Rows:    make([]map[string]string, 0, len(logs)),
	}
	for _, l := range logs {
		data.Rows = append(data.Rows, map[string]string{
			"User":      l.UserID,
			"Action":    l.Action,
			"Timestamp": l.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	return s.render(data, "activity", "Activity Log", format)
}

func (s *ExportService) render(data export.Dataset, name, title, format string) (*ExportFile, error) {
	switch format {
	case "csv":
		content, err := s.csv.Render(data)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("%s_%s.csv", name, time.Now().UTC().Format("20060102")),
			ContentType: "text/csv",
			Content:     content,
		}, nil
	case "pdf":
		content, err := s.pdf.Render(data, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("%s_%s.pdf", name, time.Now().UTC().Format("20060102")),
			ContentType: "application/pdf",
			Content:     content,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
}

func requireAdmin(sess *session.Session) error {
	if sess == nil {
		return appErrors.ErrUnauthenticated
	}
	if sess.Role != models.RoleAdmin {
		return appErrors.ErrForbidden
	}
	return nil
}
