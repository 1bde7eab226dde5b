package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/pshvarts/stockfolio/internal/models"
)

// SessionState is the authentication state of a client session.
type SessionState string

const (
	SessionAnonymous     SessionState = "anonymous"
	SessionAuthenticated SessionState = "authenticated"
)

// Session persists the logged-in user to disk so identity survives process
// restarts. Absence of the stored identity forces re-authentication.
type Session struct {
	path string

	mu   sync.Mutex
	user *models.User
}

// DefaultSessionPath returns the session file location under the user
// config directory.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config dir: %w", err)
	}
	return filepath.Join(dir, "stockfolio", "session.json"), nil
}

// NewSession creates a session backed by the given file and loads any
// persisted identity. A missing or unreadable file means anonymous.
func NewSession(path string) *Session {
	s := &Session{path: path}
	s.load()
	return s
}

func (s *Session) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			// Corrupt or unreadable session files fall back to anonymous.
			os.Remove(s.path)
		}
		return
	}

	var u models.User
	if err := json.Unmarshal(data, &u); err != nil || u.Name == "" {
		os.Remove(s.path)
		return
	}
	s.user = &u
}

// State reports the current session state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user != nil {
		return SessionAuthenticated
	}
	return SessionAnonymous
}

// User returns the logged-in user, or nil when anonymous.
func (s *Session) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// SetUser records a successful login and persists the identity.
func (s *Session) SetUser(u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}
	data, err := json.MarshalIndent(u, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}

	s.user = u
	return nil
}

// Clear logs out: removes the persisted identity and returns to anonymous.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}
