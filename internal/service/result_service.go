package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/bau-eg/university-portal/internal/models"
	"github.com/bau-eg/university-portal/internal/session"
	appErrors "github.com/bau-eg/university-portal/pkg/errors"
)

type resultWriter interface {
	CreateResult(ctx context.Context, result *models.Result) error
}

// ResultService records published grade rows. Only professors and admins may
// publish.
type ResultService struct {
	results   resultWriter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewResultService constructs the service.
func NewResultService(results resultWriter, validate *validator.Validate, logger *zap.Logger) *ResultService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ResultService{results: results, validator: validate, logger: logger}
}

// Publish validates and stores one grade row.
func (s *ResultService) Publish(ctx context.Context, req models.ResultRequest, sess *session.Session) error {
	if sess == nil {
		return appErrors.ErrUnauthenticated
	}
	if sess.Role != models.RoleProfessor && sess.Role != models.RoleAdmin {
		return appErrors.ErrForbidden
	}
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid result form")
	}

	result := &models.Result{
		StudentName: req.StudentName,
		CourseName:  req.CourseName,
		Grade:       req.Grade,
	}
	if err := s.results.CreateResult(ctx, result); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record result")
	}

	s.logger.Info("result published",
		zap.String("student", result.StudentName),
		zap.String("course", result.CourseName),
		zap.String("by", sess.UserID))
	return nil
}
