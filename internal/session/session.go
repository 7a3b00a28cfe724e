// Package session holds the credentials the sync client sends with every
// request. A Session is created by the caller and passed in explicitly; there
// is no ambient token.
package session

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultScheme is the authorization scheme used when none is given.
const DefaultScheme = "Bearer"

// Session is safe for concurrent use.
type Session struct {
	mu     sync.RWMutex
	token  string
	scheme string
}

// New returns a session for token using the default scheme.
func New(token string) *Session {
	return NewWithScheme(token, DefaultScheme)
}

// NewWithScheme returns a session for token using scheme ("Bearer", "Token").
func NewWithScheme(token, scheme string) *Session {
	if scheme == "" {
		scheme = DefaultScheme
	}
	return &Session{token: strings.TrimSpace(token), scheme: scheme}
}

// Token returns the current token.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Scheme returns the authorization scheme.
func (s *Session) Scheme() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scheme
}

// SetToken replaces the token, e.g. after logging in.
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = strings.TrimSpace(token)
}

// Clear drops the token.
func (s *Session) Clear() {
	s.SetToken("")
}

// Authenticated reports whether a token is present.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// Authorize sets the Authorization header on req when a token is present.
func (s *Session) Authorize(req *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return
	}
	req.Header.Set("Authorization", s.scheme+" "+s.token)
}

// LoadToken reads a token saved by SaveToken. A missing file yields "".
func LoadToken(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading token file: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

// SaveToken writes token to path readable by the owner only.
func SaveToken(path, token string) error {
	if path == "" {
		return errors.New("no token file configured")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating token directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	return nil
}

// RemoveToken deletes the token file. A missing file is not an error.
func RemoveToken(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing token file: %w", err)
	}
	return nil
}
