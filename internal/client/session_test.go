package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pshvarts/stockfolio/internal/models"
)

func sessionPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session.json")
}

func TestSessionStartsAnonymous(t *testing.T) {
	s := NewSession(sessionPath(t))
	assert.Equal(t, SessionAnonymous, s.State())
	assert.Nil(t, s.User())
}

func TestSessionPersistsAcrossRestarts(t *testing.T) {
	path := sessionPath(t)

	s := NewSession(path)
	require.NoError(t, s.SetUser(&models.User{Name: "alice", Email: "alice@example.com"}))
	assert.Equal(t, SessionAuthenticated, s.State())

	// Simulate a process restart.
	reloaded := NewSession(path)
	assert.Equal(t, SessionAuthenticated, reloaded.State())
	require.NotNil(t, reloaded.User())
	assert.Equal(t, "alice", reloaded.User().Name)
}

func TestSessionClear(t *testing.T) {
	path := sessionPath(t)

	s := NewSession(path)
	require.NoError(t, s.SetUser(&models.User{Name: "bob"}))
	require.NoError(t, s.Clear())
	assert.Equal(t, SessionAnonymous, s.State())

	// Cleared identity forces re-authentication after restart.
	reloaded := NewSession(path)
	assert.Equal(t, SessionAnonymous, reloaded.State())

	// Clearing an already-clear session is fine.
	require.NoError(t, s.Clear())
}

func TestSessionCorruptFileFallsBackToAnonymous(t *testing.T) {
	path := sessionPath(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	s := NewSession(path)
	assert.Equal(t, SessionAnonymous, s.State())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "corrupt session file should be removed")
}

func TestSessionEmptyNameRejected(t *testing.T) {
	path := sessionPath(t)
	require.NoError(t, os.WriteFile(path, []byte(`{"email":"x@example.com"}`), 0600))

	s := NewSession(path)
	assert.Equal(t, SessionAnonymous, s.State())
}
