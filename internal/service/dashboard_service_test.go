package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bau-eg/university-portal/internal/models"
	"github.com/bau-eg/university-portal/internal/session"
	appErrors "github.com/bau-eg/university-portal/pkg/errors"
)

type mockDashboardUsers struct {
	byID  map[string]*models.User
	count int
}

func (m *mockDashboardUsers) FindByID(ctx context.Context, id string) (*models.User, error) {
	user, ok := m.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

func (m *mockDashboardUsers) Count(ctx context.Context) (int, error) {
	return m.count, nil
}

type mockCatalog struct {
	courses     []models.Course
	lectures    []models.Lecture
	assignments []models.Assignment
	results     []models.Result
	byStudent   map[string][]models.Result
}

func (m *mockCatalog) ListCourses(ctx context.Context) ([]models.Course, error) {
	return m.courses, nil
}

func (m *mockCatalog) ListLectures(ctx context.Context) ([]models.Lecture, error) {
	return m.lectures, nil
}

func (m *mockCatalog) ListAssignments(ctx context.Context) ([]models.Assignment, error) {
	return m.assignments, nil
}

func (m *mockCatalog) ListResults(ctx context.Context) ([]models.Result, error) {
	return m.results, nil
}

func (m *mockCatalog) ListResultsByStudent(ctx context.Context, studentName string) ([]models.Result, error) {
	return m.byStudent[studentName], nil
}

func (m *mockCatalog) CreateResult(ctx context.Context, result *models.Result) error {
	m.results = append(m.results, *result)
	return nil
}

type mockActivityReader struct {
	recent []models.ActivityLog
}

func (m *mockActivityReader) ListRecent(ctx context.Context, limit int) ([]models.ActivityLog, error) {
	return m.recent, nil
}

func newDashboardFixture(role models.UserRole) (*DashboardService, *session.Session) {
	users := &mockDashboardUsers{
		byID:  map[string]*models.User{"u1": {ID: "u1", AcademicID: "20231234", Role: role}},
		count: 3,
	}
	catalog := &mockCatalog{
		courses:  []models.Course{{ID: "c1", Name: "Algorithms"}},
		lectures: []models.Lecture{{ID: "l1", Title: "Intro"}},
		results:  []models.Result{{ID: "r1", StudentName: "20231234", CourseName: "Algorithms", Grade: "A"}},
		byStudent: map[string][]models.Result{
			"20231234": {{ID: "r1", StudentName: "20231234", CourseName: "Algorithms", Grade: "A"}},
		},
	}
	activity := &mockActivityReader{recent: []models.ActivityLog{{ID: "a1", UserID: "u1", Action: models.ActivityActionLogin}}}
	svc := NewDashboardService(users, catalog, activity, zap.NewNop())
	return svc, &session.Session{ID: "s1", UserID: "u1", Role: role}
}

func TestDashboardStudentView(t *testing.T) {
	svc, sess := newDashboardFixture(models.RoleStudent)

	view, err := svc.View(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, view.Role)
	assert.Equal(t, "student_dashboard.html", view.Template())
	assert.Len(t, view.Courses, 1)
	assert.Len(t, view.Results, 1)
	assert.Empty(t, view.Activity)
}

func TestDashboardProfessorView(t *testing.T) {
	svc, sess := newDashboardFixture(models.RoleProfessor)

	view, err := svc.View(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, "professor_dashboard.html", view.Template())
	assert.Len(t, view.Results, 1)
}

func TestDashboardAdminView(t *testing.T) {
	svc, sess := newDashboardFixture(models.RoleAdmin)

	view, err := svc.View(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, "admin_dashboard.html", view.Template())
	assert.Len(t, view.Activity, 1)
	assert.Equal(t, 3, view.UserCount)
}

func TestDashboardNoSession(t *testing.T) {
	svc, _ := newDashboardFixture(models.RoleStudent)

	_, err := svc.View(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthenticated.Code, appErrors.FromError(err).Code)
}

func TestDashboardUserGone(t *testing.T) {
	svc, _ := newDashboardFixture(models.RoleStudent)

	_, err := svc.View(context.Background(), &session.Session{ID: "s9", UserID: "missing", Role: models.RoleStudent})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthenticated.Code, appErrors.FromError(err).Code)
}

func TestDashboardUnknownRole(t *testing.T) {
	users := &mockDashboardUsers{byID: map[string]*models.User{
		"u1": {ID: "u1", AcademicID: "20231234", Role: "registrar"},
	}}
	svc := NewDashboardService(users, &mockCatalog{}, &mockActivityReader{}, zap.NewNop())

	_, err := svc.View(context.Background(), &session.Session{ID: "s1", UserID: "u1", Role: "registrar"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnknownRole.Code, appErrors.FromError(err).Code)
}
