package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DocumentStore persists uploaded course documents on disk under a base
// directory. Files are addressed by their sanitized base name; uploading an
// existing name overwrites the previous content (last write wins).
type DocumentStore struct {
	baseDir string
}

// NewDocumentStore ensures the upload directory exists and returns a handle.
func NewDocumentStore(baseDir string) (*DocumentStore, error) {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &DocumentStore{baseDir: baseDir}, nil
}

// SaveStream copies from reader into the named file. The write goes through a
// temp file and rename so a concurrent upload of the same name never exposes
// partial content.
func (s *DocumentStore) SaveStream(filename string, r io.Reader) (string, error) {
	name := SanitizeFilename(filename)
	if name == "" {
		return "", fmt.Errorf("empty filename after sanitization")
	}
	path := filepath.Join(s.baseDir, name)

	tmp, err := os.CreateTemp(s.baseDir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create upload temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()           //nolint:errcheck
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("write upload stream: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("close upload temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("store upload file: %w", err)
	}
	return name, nil
}

// Open returns a read-only handle for the stored file.
func (s *DocumentStore) Open(filename string) (*os.File, error) {
	name := SanitizeFilename(filename)
	if name == "" {
		return nil, os.ErrNotExist
	}
	file, err := os.Open(filepath.Join(s.baseDir, name))
	if err != nil {
		return nil, err
	}
	return file, nil
}

// Exists reports whether a stored file with the given name is present.
func (s *DocumentStore) Exists(filename string) bool {
	name := SanitizeFilename(filename)
	if name == "" {
		return false
	}
	info, err := os.Stat(filepath.Join(s.baseDir, name))
	return err == nil && !info.IsDir()
}

// Delete removes a stored file if present.
func (s *DocumentStore) Delete(filename string) error {
	name := SanitizeFilename(filename)
	if name == "" {
		return nil
	}
	if err := os.Remove(filepath.Join(s.baseDir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete upload file: %w", err)
	}
	return nil
}

// Path exposes the underlying absolute path (useful for debugging).
func (s *DocumentStore) Path(filename string) string {
	return filepath.Join(s.baseDir, SanitizeFilename(filename))
}

// SanitizeFilename strips path components and any character outside
// [A-Za-z0-9._-], keeping only a safe base name.
func SanitizeFilename(raw string) string {
	raw = strings.ReplaceAll(raw, "\\", "/")
	raw = filepath.Base(raw)
	if raw == "." || raw == "/" {
		return ""
	}

	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "._")
}

// Extension returns the lowercase extension after the last dot, without the
// dot itself. A name with no dot yields an empty string.
func Extension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return ""
	}
	return strings.ToLower(filename[idx+1:])
}
