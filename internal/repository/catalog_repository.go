package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bau-eg/university-portal/internal/models"
)

// CatalogRepository reads the course catalog tables backing the dashboards
// and records published grade rows.
type CatalogRepository struct {
	db *sqlx.DB
}

// NewCatalogRepository creates a new instance of CatalogRepository.
func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ListCourses returns all courses.
func (r *CatalogRepository) ListCourses(ctx context.Context) ([]models.Course, error) {
	const query = `SELECT id, name, COALESCE(professor, '') AS professor FROM courses ORDER BY name ASC`
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// ListLectures returns all lecture entries.
func (r *CatalogRepository) ListLectures(ctx context.Context) ([]models.Lecture, error) {
	const query = `SELECT id, title, COALESCE(description, '') AS description, COALESCE(file_path, '') AS file_path FROM lectures ORDER BY title ASC`
	var lectures []models.Lecture
	if err := r.db.SelectContext(ctx, &lectures, query); err != nil {
		return nil, fmt.Errorf("list lectures: %w", err)
	}
	return lectures, nil
}

// ListAssignments returns all assignment entries.
func (r *CatalogRepository) ListAssignments(ctx context.Context) ([]models.Assignment, error) {
	const query = `SELECT id, title, due_date, COALESCE(file_path, '') AS file_path FROM assignments ORDER BY due_date ASC`
	var assignments []models.Assignment
	if err := r.db.SelectContext(ctx, &assignments, query); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return assignments, nil
}

// ListResults returns all published grade rows.
func (r *CatalogRepository) ListResults(ctx context.Context) ([]models.Result, error) {
	const query = `SELECT id, student_name, course_name, grade FROM results ORDER BY course_name ASC, student_name ASC`
	var results []models.Result
	if err := r.db.SelectContext(ctx, &results, query); err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	return results, nil
}

// ListResultsByStudent returns grade rows published under the given student
// name. The results table is denormalized; the registrar records students by
// academic id.
func (r *CatalogRepository) ListResultsByStudent(ctx context.Context, studentName string) ([]models.Result, error) {
	const query = `SELECT id, student_name, course_name, grade FROM results WHERE student_name = $1 ORDER BY course_name ASC`
	var results []models.Result
	if err := r.db.SelectContext(ctx, &results, query, studentName); err != nil {
		return nil, fmt.Errorf("list results by student: %w", err)
	}
	return results, nil
}

// CreateResult inserts one grade row.
func (r *CatalogRepository) CreateResult(ctx context.Context, result *models.Result) error {
	if result.ID == "" {
		result.ID = uuid.NewString()
	}
	const query = `INSERT INTO results (id, student_name, course_name, grade) VALUES (:id, :student_name, :course_name, :grade)`
	if _, err := r.db.NamedExecContext(ctx, query, result); err != nil {
		return fmt.Errorf("create result: %w", err)
	}
	return nil
}
