package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bau-eg/university-portal/internal/models"
)

// ActivityRepository stores the append-only audit trail. There are no update
// or delete queries on purpose.
type ActivityRepository struct {
	db *sqlx.DB
}

// NewActivityRepository creates a new instance of ActivityRepository.
func NewActivityRepository(db *sqlx.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Create appends one activity row with the current server timestamp.
func (r *ActivityRepository) Create(ctx context.Context, log *models.ActivityLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO activity_logs (id, user_id, action, created_at) VALUES (:id, :user_id, :action, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, log); err != nil {
		return fmt.Errorf("create activity log: %w", err)
	}
	return nil
}

// ListRecent returns the newest activity rows, most recent first.
func (r *ActivityRepository) ListRecent(ctx context.Context, limit int) ([]models.ActivityLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	query := fmt.Sprintf(`SELECT id, user_id, action, created_at FROM activity_logs ORDER BY created_at DESC LIMIT %d`, limit)
	var logs []models.ActivityLog
	if err := r.db.SelectContext(ctx, &logs, query); err != nil {
		return nil, fmt.Errorf("list recent activity: %w", err)
	}
	return logs, nil
}

// ListAll returns the full trail in chronological order, for exports.
func (r *ActivityRepository) ListAll(ctx context.Context) ([]models.ActivityLog, error) {
	const query = `SELECT id, user_id, action, created_at FROM activity_logs ORDER BY created_at ASC`
	var logs []models.ActivityLog
	if err := r.db.SelectContext(ctx, &logs, query); err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	return logs, nil
}
