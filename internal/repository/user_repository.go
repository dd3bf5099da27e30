package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bau-eg/university-portal/internal/models"
)

// UserRepository provides database access for portal accounts.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByAcademicID returns a user by academic id.
func (r *UserRepository) FindByAcademicID(ctx context.Context, academicID string) (*models.User, error) {
	const query = `SELECT id, academic_id, password_hash, role, created_at FROM users WHERE academic_id = $1 LIMIT 1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, academicID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by academic id: %w", err)
	}
	return &user, nil
}

// FindByID returns a user by identifier.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	const query = `SELECT id, academic_id, password_hash, role, created_at FROM users WHERE id = $1 LIMIT 1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

// ExistsByAcademicID reports whether an account with this academic id exists.
func (r *UserRepository) ExistsByAcademicID(ctx context.Context, academicID string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM users WHERE academic_id = $1)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, academicID); err != nil {
		return false, fmt.Errorf("check academic id: %w", err)
	}
	return exists, nil
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO users (id, academic_id, password_hash, role, created_at) VALUES (:id, :academic_id, :password_hash, :role, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Count returns the number of registered accounts.
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM users`
	var total int
	if err := r.db.GetContext(ctx, &total, query); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return total, nil
}
