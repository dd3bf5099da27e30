package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/bau-eg/university-portal/internal/models"
	"github.com/bau-eg/university-portal/internal/session"
	appErrors "github.com/bau-eg/university-portal/pkg/errors"
)

type authUserRepository interface {
	FindByAcademicID(ctx context.Context, academicID string) (*models.User, error)
	ExistsByAcademicID(ctx context.Context, academicID string) (bool, error)
	Create(ctx context.Context, user *models.User) error
}

type activityLogger interface {
	Create(ctx context.Context, log *models.ActivityLog) error
}

type sessionManager interface {
	Create(ctx context.Context, userID string, role models.UserRole) (string, error)
	Resolve(ctx context.Context, token string) (*session.Session, error)
	Destroy(ctx context.Context, token string) error
}

// AuthService provides registration and login/logout flows.
type AuthService struct {
	users     authUserRepository
	activity  activityLogger
	sessions  sessionManager
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(users authUserRepository, activity activityLogger, sessions sessionManager, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AuthService{users: users, activity: activity, sessions: sessions, validator: validate, logger: logger}
}

// Register creates a new account. The role must be one of the three known
// roles; anything else is rejected as a validation error.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid registration form")
	}
	if !models.ValidRole(models.UserRole(req.Role)) {
		return appErrors.Clone(appErrors.ErrValidation, "role must be student, professor or admin")
	}

	exists, err := s.users.ExistsByAcademicID(ctx, req.AcademicID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check academic id")
	}
	if exists {
		return appErrors.ErrDuplicateUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	user := &models.User{
		AcademicID:   req.AcademicID,
		PasswordHash: string(hash),
		Role:         models.UserRole(req.Role),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create user")
	}

	s.logger.Info("user registered", zap.String("academic_id", user.AcademicID), zap.String("role", string(user.Role)))
	return nil
}

// Login authenticates a user and establishes a session, returning the signed
// session token for the cookie.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (string, *models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login form")
	}

	user, err := s.users.FindByAcademicID(ctx, req.AcademicID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil, appErrors.ErrInvalidCredentials
		}
		return "", nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", nil, appErrors.ErrInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, user.ID, user.Role)
	if err != nil {
		return "", nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create session")
	}

	if err := s.activity.Create(ctx, &models.ActivityLog{
		UserID: user.ID,
		Action: models.ActivityActionLogin,
	}); err != nil {
		s.logger.Warn("failed to record login activity", zap.Error(err))
	}

	return token, user, nil
}

// Logout destroys the session behind the token and records a logout activity
// row. Calling it without a live session is a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	sess, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return nil
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve session")
	}

	if err := s.activity.Create(ctx, &models.ActivityLog{
		UserID: sess.UserID,
		Action: models.ActivityActionLogout,
	}); err != nil {
		s.logger.Warn("failed to record logout activity", zap.Error(err))
	}

	if err := s.sessions.Destroy(ctx, token); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to destroy session")
	}

	return nil
}
