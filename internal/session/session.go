package session

import (
	"context"
	"errors"
	"time"

	"github.com/bau-eg/university-portal/internal/models"
)

// ErrNoSession is returned when a session id does not resolve to a live
// session (never created, expired, or destroyed).
var ErrNoSession = errors.New("session not found")

// Session associates a browser client with an authenticated user id and role
// for the lifetime of the session cookie.
type Session struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Role      models.UserRole `json:"role"`
	CreatedAt time.Time       `json:"created_at"`
}

// Store abstracts session persistence. The production store is Redis; tests
// use the in-memory implementation.
type Store interface {
	Save(ctx context.Context, s *Session, ttl time.Duration) error
	Find(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}
