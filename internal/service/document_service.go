package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/bau-eg/university-portal/internal/models"
	"github.com/bau-eg/university-portal/internal/session"
	appErrors "github.com/bau-eg/university-portal/pkg/errors"
	"github.com/bau-eg/university-portal/pkg/storage"
)

type documentStore interface {
	SaveStream(filename string, r io.Reader) (string, error)
	Open(filename string) (*os.File, error)
}

// DocumentUpload carries upload metadata and the stream reader.
type DocumentUpload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// DocumentDownload bundles an open file handle for streaming to the client.
type DocumentDownload struct {
	File      *os.File
	Filename  string
	SizeBytes int64
}

// DocumentService validates and stores uploaded course documents and streams
// them back on download.
type DocumentService struct {
	store    documentStore
	activity activityLogger
	logger   *zap.Logger
	allowed  map[string]struct{}
	maxSize  int64
}

// NewDocumentService constructs the service. An empty extension list falls
// back to the portal default of pdf and docx.
func NewDocumentService(store documentStore, activity activityLogger, logger *zap.Logger, allowedExtensions []string, maxSize int64) *DocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(allowedExtensions) == 0 {
		allowedExtensions = []string{"pdf", "docx"}
	}
	allowed := make(map[string]struct{}, len(allowedExtensions))
	for _, ext := range allowedExtensions {
		allowed[strings.ToLower(strings.TrimPrefix(ext, "."))] = struct{}{}
	}
	if maxSize <= 0 {
		maxSize = 20 * 1024 * 1024
	}
	return &DocumentService{store: store, activity: activity, logger: logger, allowed: allowed, maxSize: maxSize}
}

// Upload validates the file, writes it to the document store and records an
// activity row naming the stored file. A live session is required; an upload
// of an existing filename overwrites the previous file.
func (s *DocumentService) Upload(ctx context.Context, upload DocumentUpload, sess *session.Session) (string, error) {
	if sess == nil {
		return "", appErrors.ErrUnauthenticated
	}
	if upload.Content == nil || strings.TrimSpace(upload.Filename) == "" {
		return "", appErrors.ErrNoFileSelected
	}
	ext := storage.Extension(upload.Filename)
	if ext == "" {
		return "", appErrors.ErrInvalidExtension
	}
	if _, ok := s.allowed[ext]; !ok {
		return "", appErrors.Clone(appErrors.ErrInvalidExtension, fmt.Sprintf("only %s files are allowed", strings.Join(s.allowedList(), ", ")))
	}
	if upload.Size > s.maxSize {
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("file exceeds %d bytes limit", s.maxSize))
	}

	name, err := s.store.SaveStream(upload.Filename, upload.Content)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store file")
	}

	if err := s.activity.Create(ctx, &models.ActivityLog{
		UserID: sess.UserID,
		Action: fmt.Sprintf("%s file: %s", models.ActivityActionUpload, name),
	}); err != nil {
		s.logger.Warn("failed to record upload activity", zap.Error(err))
	}

	s.logger.Info("file uploaded", zap.String("filename", name), zap.String("user_id", sess.UserID))
	return name, nil
}

// Download opens the named file from the document store. Filenames resolve
// to sanitized basenames only, so the lookup cannot escape the upload dir.
func (s *DocumentService) Download(ctx context.Context, filename string) (*DocumentDownload, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, appErrors.ErrNotFound
	}
	file, err := s.store.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open file")
	}
	info, err := file.Stat()
	if err != nil {
		file.Close() //nolint:errcheck
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to stat file")
	}
	return &DocumentDownload{
		File:      file,
		Filename:  storage.SanitizeFilename(filename),
		SizeBytes: info.Size(),
	}, nil
}

func (s *DocumentService) allowedList() []string {
	list := make([]string, 0, len(s.allowed))
	for ext := range s.allowed {
		list = append(list, ext)
	}
	sort.Strings(list)
	return list
}
