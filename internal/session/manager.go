package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bau-eg/university-portal/internal/models"
	"github.com/bau-eg/university-portal/pkg/config"
)

// Manager creates, resolves and destroys server-side sessions and manages
// the browser cookie carrying the signed session token.
type Manager struct {
	store      Store
	signer     *Signer
	ttl        time.Duration
	cookieName string
	secure     bool
}

// NewManager wires the session store with the cookie configuration.
func NewManager(store Store, cfg config.SessionConfig) *Manager {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	cookieName := cfg.CookieName
	if cookieName == "" {
		cookieName = "portal_session"
	}
	return &Manager{
		store:      store,
		signer:     NewSigner(cfg.Secret),
		ttl:        ttl,
		cookieName: cookieName,
		secure:     cfg.Secure,
	}
}

// Create establishes a session for the user and returns the signed cookie
// token.
func (m *Manager) Create(ctx context.Context, userID string, role models.UserRole) (string, error) {
	sess := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	if err := m.store.Save(ctx, sess, m.ttl); err != nil {
		return "", err
	}
	token, err := m.signer.Sign(sess.ID)
	if err != nil {
		_ = m.store.Delete(ctx, sess.ID)
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return token, nil
}

// Resolve verifies the cookie token and loads the live session. ErrNoSession
// is returned for forged tokens as well as expired or destroyed sessions.
func (m *Manager) Resolve(ctx context.Context, token string) (*Session, error) {
	id, err := m.signer.Verify(token)
	if err != nil {
		return nil, ErrNoSession
	}
	return m.store.Find(ctx, id)
}

// Destroy removes the session behind the token. Destroying an unknown or
// already-destroyed session is a no-op.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	id, err := m.signer.Verify(token)
	if err != nil {
		return nil
	}
	return m.store.Delete(ctx, id)
}

// CookieName exposes the configured session cookie name.
func (m *Manager) CookieName() string {
	return m.cookieName
}

// SetCookie attaches the session cookie to the response.
func (m *Manager) SetCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, token, int(m.ttl.Seconds()), "/", "", m.secure, true)
}

// ClearCookie expires the session cookie on the client.
func (m *Manager) ClearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, "", -1, "/", "", m.secure, true)
}
