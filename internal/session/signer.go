package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// Signer signs session ids so the cookie value cannot be forged or swapped
// for another id without the secret.
type Signer struct {
	secret []byte
}

// NewSigner constructs a signer from the configured session secret.
func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

// Sign returns the cookie token "<id>.<signature>" for a session id.
func (s *Signer) Sign(id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("session id required")
	}
	if len(s.secret) == 0 {
		return "", fmt.Errorf("signing secret missing")
	}
	return id + "." + s.signature(id), nil
}

// Verify checks a cookie token and returns the embedded session id.
func (s *Signer) Verify(token string) (string, error) {
	parts := strings.SplitN(token, ".", 2)
	if len(parts) != 2 || parts[0] == "" {
		return "", fmt.Errorf("invalid token format")
	}
	id, signature := parts[0], parts[1]
	if !hmac.Equal([]byte(s.signature(id)), []byte(signature)) {
		return "", fmt.Errorf("invalid token signature")
	}
	return id, nil
}

func (s *Signer) signature(id string) string {
	mac := hmac.New(sha256.New, s.secret)
	_, _ = mac.Write([]byte(id))
	return hex.EncodeToString(mac.Sum(nil))
}
