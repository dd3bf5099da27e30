package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/bau-eg/university-portal/internal/models"
	"github.com/bau-eg/university-portal/internal/session"
	appErrors "github.com/bau-eg/university-portal/pkg/errors"
)

type dashboardUserRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	Count(ctx context.Context) (int, error)
}

type catalogReader interface {
	ListCourses(ctx context.Context) ([]models.Course, error)
	ListLectures(ctx context.Context) ([]models.Lecture, error)
	ListAssignments(ctx context.Context) ([]models.Assignment, error)
	ListResults(ctx context.Context) ([]models.Result, error)
	ListResultsByStudent(ctx context.Context, studentName string) ([]models.Result, error)
}

type activityReader interface {
	ListRecent(ctx context.Context, limit int) ([]models.ActivityLog, error)
}

// DashboardView is the data behind one role-specific dashboard page.
type DashboardView struct {
	Role        models.UserRole
	AcademicID  string
	Courses     []models.Course
	Lectures    []models.Lecture
	Assignments []models.Assignment
	Results     []models.Result
	Activity    []models.ActivityLog
	UserCount   int
}

// Template names the HTML template rendering this view.
func (v *DashboardView) Template() string {
	switch v.Role {
	case models.RoleStudent:
		return "student_dashboard.html"
	case models.RoleProfessor:
		return "professor_dashboard.html"
	default:
		return "admin_dashboard.html"
	}
}

// DashboardService loads the user behind a session and assembles the data
// for that user's role view.
type DashboardService struct {
	users    dashboardUserRepository
	catalog  catalogReader
	activity activityReader
	logger   *zap.Logger
}

// NewDashboardService constructs the service.
func NewDashboardService(users dashboardUserRepository, catalog catalogReader, activity activityReader, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{users: users, catalog: catalog, activity: activity, logger: logger}
}

// View dispatches by the account role stored with the user, not the session
// copy, so a stale session cannot pick a different view. An unrecognized role
// yields ErrUnknownRole; callers force a logout on it.
func (s *DashboardService) View(ctx context.Context, sess *session.Session) (*DashboardView, error) {
	if sess == nil {
		return nil, appErrors.ErrUnauthenticated
	}

	user, err := s.users.FindByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrUnauthenticated
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}

	view := &DashboardView{Role: user.Role, AcademicID: user.AcademicID}

	switch user.Role {
	case models.RoleStudent:
		if err := s.fillStudent(ctx, view); err != nil {
			return nil, err
		}
	case models.RoleProfessor:
		if err := s.fillProfessor(ctx, view); err != nil {
			return nil, err
		}
	case models.RoleAdmin:
		if err := s.fillAdmin(ctx, view); err != nil {
			return nil, err
		}
	default:
		s.logger.Error("account has unrecognized role", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
		return nil, appErrors.ErrUnknownRole
	}

	return view, nil
}

func (s *DashboardService) fillStudent(ctx context.Context, view *DashboardView) error {
	var err error
	if view.Courses, err = s.catalog.ListCourses(ctx); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load courses")
	}
	if view.Lectures, err = s.catalog.ListLectures(ctx); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load lectures")
	}
	if view.Assignments, err = s.catalog.ListAssignments(ctx); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignments")
	}
	if view.Results, err = s.catalog.ListResultsByStudent(ctx, view.AcademicID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load results")
	}
	return nil
}

func (s *DashboardService) fillProfessor(ctx context.Context, view *DashboardView) error {
	var err error
	if view.Courses, err = s.catalog.ListCourses(ctx); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load courses")
	}
	if view.Lectures, err = s.catalog.ListLectures(ctx); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load lectures")
	}
	if view.Assignments, err = s.catalog.ListAssignments(ctx); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignments")
	}
	if view.Results, err = s.catalog.ListResults(ctx); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load results")
	}
	return nil
}

func (s *DashboardService) fillAdmin(ctx context.Context, view *DashboardView) error {
	var err error
	if view.Activity, err = s.activity.ListRecent(ctx, 50); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load activity log")
	}
	if view.UserCount, err = s.users.Count(ctx); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count users")
	}
	if view.Results, err = s.catalog.ListResults(ctx); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load results")
	}
	return nil
}
