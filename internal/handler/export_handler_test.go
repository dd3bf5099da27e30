package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bau-eg/university-portal/internal/middleware"
	"github.com/bau-eg/university-portal/internal/models"
	"github.com/bau-eg/university-portal/internal/service"
	"github.com/bau-eg/university-portal/internal/session"
)

type resultListMock struct{}

func (resultListMock) ListResults(ctx context.Context) ([]models.Result, error) {
	return []models.Result{{ID: "r1", StudentName: "20231234", CourseName: "Algorithms", Grade: "A"}}, nil
}

type activityListMock struct{}

func (activityListMock) ListAll(ctx context.Context) ([]models.ActivityLog, error) {
	return []models.ActivityLog{{ID: "a1", UserID: "u1", Action: models.ActivityActionLogin}}, nil
}

func exportContext(t *testing.T, file string, sess *session.Session) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/export/"+file, nil)
	c.Params = gin.Params{{Key: "file", Value: file}}
	if sess != nil {
		c.Set(middleware.ContextSessionKey, sess)
	}
	return c, w
}

func TestExportResultsDownload(t *testing.T) {
	handler := NewExportHandler(service.NewExportService(resultListMock{}, activityListMock{}, nil))
	sess := &session.Session{ID: "s1", UserID: "u1", Role: models.RoleAdmin}

	c, w := exportContext(t, "results.csv", sess)
	handler.Download(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Body.String(), "20231234,Algorithms,A")
}

func TestExportUnknownDataset(t *testing.T) {
	handler := NewExportHandler(service.NewExportService(resultListMock{}, activityListMock{}, nil))
	sess := &session.Session{ID: "s1", UserID: "u1", Role: models.RoleAdmin}

	c, w := exportContext(t, "users.csv", sess)
	handler.Download(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportRedirectsNonAdmin(t *testing.T) {
	handler := NewExportHandler(service.NewExportService(resultListMock{}, activityListMock{}, nil))
	sess := &session.Session{ID: "s1", UserID: "u1", Role: models.RoleStudent}

	c, w := exportContext(t, "activity.pdf", sess)
	handler.Download(c)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}
