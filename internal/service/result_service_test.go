package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bau-eg/university-portal/internal/models"
	"github.com/bau-eg/university-portal/internal/session"
	appErrors "github.com/bau-eg/university-portal/pkg/errors"
)

type mockResultWriter struct {
	created []models.Result
	err     error
}

func (m *mockResultWriter) CreateResult(ctx context.Context, result *models.Result) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, *result)
	return nil
}

func TestPublishResultAsProfessor(t *testing.T) {
	writer := &mockResultWriter{}
	svc := NewResultService(writer, validator.New(), zap.NewNop())

	req := models.ResultRequest{StudentName: "20231234", CourseName: "Algorithms", Grade: "A"}
	err := svc.Publish(context.Background(), req, &session.Session{ID: "s1", UserID: "u1", Role: models.RoleProfessor})
	require.NoError(t, err)
	require.Len(t, writer.created, 1)
	assert.Equal(t, "Algorithms", writer.created[0].CourseName)
}

func TestPublishResultAsAdmin(t *testing.T) {
	writer := &mockResultWriter{}
	svc := NewResultService(writer, validator.New(), zap.NewNop())

	req := models.ResultRequest{StudentName: "20231234", CourseName: "Algorithms", Grade: "B+"}
	err := svc.Publish(context.Background(), req, &session.Session{ID: "s1", UserID: "u2", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Len(t, writer.created, 1)
}

func TestPublishResultForbiddenForStudent(t *testing.T) {
	writer := &mockResultWriter{}
	svc := NewResultService(writer, validator.New(), zap.NewNop())

	req := models.ResultRequest{StudentName: "20231234", CourseName: "Algorithms", Grade: "A"}
	err := svc.Publish(context.Background(), req, &session.Session{ID: "s1", UserID: "u3", Role: models.RoleStudent})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
	assert.Empty(t, writer.created)
}

func TestPublishResultUnauthenticated(t *testing.T) {
	writer := &mockResultWriter{}
	svc := NewResultService(writer, validator.New(), zap.NewNop())

	err := svc.Publish(context.Background(), models.ResultRequest{}, nil)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthenticated.Code, appErrors.FromError(err).Code)
}

func TestPublishResultValidation(t *testing.T) {
	writer := &mockResultWriter{}
	svc := NewResultService(writer, validator.New(), zap.NewNop())

	req := models.ResultRequest{StudentName: "", CourseName: "Algorithms", Grade: "A"}
	err := svc.Publish(context.Background(), req, &session.Session{ID: "s1", UserID: "u1", Role: models.RoleProfessor})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, writer.created)
}
