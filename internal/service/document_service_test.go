package service

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bau-eg/university-portal/internal/models"
	"github.com/bau-eg/university-portal/internal/session"
	appErrors "github.com/bau-eg/university-portal/pkg/errors"
	"github.com/bau-eg/university-portal/pkg/storage"
)

func newDocumentService(t *testing.T, activity *mockActivityRepo) *DocumentService {
	t.Helper()
	store, err := storage.NewDocumentStore(t.TempDir())
	require.NoError(t, err)
	return NewDocumentService(store, activity, zap.NewNop(), nil, 0)
}

func studentSession() *session.Session {
	return &session.Session{ID: "s1", UserID: "u1", Role: models.RoleStudent}
}

func TestUploadPDFSucceedsAndLogsActivity(t *testing.T) {
	activity := &mockActivityRepo{}
	svc := newDocumentService(t, activity)

	name, err := svc.Upload(context.Background(), DocumentUpload{
		Filename: "notes.pdf",
		Size:     5,
		Content:  strings.NewReader("%PDF-"),
	}, studentSession())
	require.NoError(t, err)
	assert.Equal(t, "notes.pdf", name)

	require.Len(t, activity.logs, 1)
	assert.Equal(t, "u1", activity.logs[0].UserID)
	assert.Equal(t, "upload file: notes.pdf", activity.logs[0].Action)

	// uploaded file is retrievable by the same name
	download, err := svc.Download(context.Background(), "notes.pdf")
	require.NoError(t, err)
	defer download.File.Close() //nolint:errcheck
	assert.Equal(t, "notes.pdf", download.Filename)
	assert.Equal(t, int64(5), download.SizeBytes)
}

func TestUploadRejectsDisallowedExtension(t *testing.T) {
	activity := &mockActivityRepo{}
	svc := newDocumentService(t, activity)

	_, err := svc.Upload(context.Background(), DocumentUpload{
		Filename: "notes.exe",
		Size:     4,
		Content:  strings.NewReader("MZ.."),
	}, studentSession())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidExtension.Code, appErrors.FromError(err).Code)

	// nothing written, nothing logged
	assert.Empty(t, activity.logs)
	_, err = svc.Download(context.Background(), "notes.exe")
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestUploadRejectsNameWithoutExtension(t *testing.T) {
	svc := newDocumentService(t, &mockActivityRepo{})

	_, err := svc.Upload(context.Background(), DocumentUpload{
		Filename: "README",
		Size:     3,
		Content:  strings.NewReader("abc"),
	}, studentSession())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidExtension.Code, appErrors.FromError(err).Code)
}

func TestUploadExtensionCaseInsensitive(t *testing.T) {
	svc := newDocumentService(t, &mockActivityRepo{})

	name, err := svc.Upload(context.Background(), DocumentUpload{
		Filename: "Slides.DOCX",
		Size:     3,
		Content:  strings.NewReader("abc"),
	}, studentSession())
	require.NoError(t, err)
	assert.Equal(t, "Slides.DOCX", name)
}

func TestUploadEmptyFilename(t *testing.T) {
	svc := newDocumentService(t, &mockActivityRepo{})

	_, err := svc.Upload(context.Background(), DocumentUpload{
		Filename: "",
		Content:  strings.NewReader("abc"),
	}, studentSession())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNoFileSelected.Code, appErrors.FromError(err).Code)
}

func TestUploadWithoutSession(t *testing.T) {
	activity := &mockActivityRepo{}
	svc := newDocumentService(t, activity)

	_, err := svc.Upload(context.Background(), DocumentUpload{
		Filename: "notes.pdf",
		Size:     3,
		Content:  strings.NewReader("abc"),
	}, nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthenticated.Code, appErrors.FromError(err).Code)
	assert.Empty(t, activity.logs)
}

func TestDownloadMissingFile(t *testing.T) {
	svc := newDocumentService(t, &mockActivityRepo{})

	_, err := svc.Download(context.Background(), "never-uploaded.pdf")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	_, err = svc.Download(context.Background(), "")
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestUploadSanitizesTraversal(t *testing.T) {
	svc := newDocumentService(t, &mockActivityRepo{})

	name, err := svc.Upload(context.Background(), DocumentUpload{
		Filename: "../../evil.pdf",
		Size:     3,
		Content:  strings.NewReader("abc"),
	}, studentSession())
	require.NoError(t, err)
	assert.Equal(t, "evil.pdf", name)

	download, err := svc.Download(context.Background(), "evil.pdf")
	require.NoError(t, err)
	download.File.Close() //nolint:errcheck
	_, statErr := os.Stat(download.File.Name())
	assert.NoError(t, statErr)
}
