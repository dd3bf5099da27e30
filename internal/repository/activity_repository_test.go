package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bau-eg/university-portal/internal/models"
)

func TestCreateActivityLog(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewActivityRepository(db)

	mock.ExpectExec("INSERT INTO activity_logs").WillReturnResult(sqlmock.NewResult(1, 1))

	log := &models.ActivityLog{UserID: "u1", Action: models.ActivityActionLogin}
	err := repo.Create(context.Background(), log)
	require.NoError(t, err)
	assert.NotEmpty(t, log.ID)
	assert.False(t, log.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRecentActivity(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewActivityRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "action", "created_at"}).
		AddRow("2", "u1", models.ActivityActionLogout, now).
		AddRow("1", "u1", models.ActivityActionLogin, now.Add(-time.Minute))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, action, created_at FROM activity_logs ORDER BY created_at DESC LIMIT 50")).
		WillReturnRows(rows)

	logs, err := repo.ListRecent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, models.ActivityActionLogout, logs[0].Action)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListAllActivityChronological(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewActivityRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "action", "created_at"}).
		AddRow("1", "u1", models.ActivityActionLogin, now.Add(-time.Minute)).
		AddRow("2", "u1", "upload file: notes.pdf", now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, action, created_at FROM activity_logs ORDER BY created_at ASC")).
		WillReturnRows(rows)

	logs, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.True(t, logs[0].CreatedAt.Before(logs[1].CreatedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}
