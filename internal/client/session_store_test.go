package client

import (
	"os"
	"path/filepath"
	"testing"

	"propertyhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.yaml")
	sessions := NewSessionStore(path)

	empty, err := sessions.Load()
	require.NoError(t, err)
	assert.Empty(t, empty.Token)
	assert.Nil(t, empty.User)

	want := &PersistedSession{
		Token: "header.payload.signature",
		User:  &models.PublicUser{ID: "u1", Username: "alice", Email: "alice@example.com"},
	}
	require.NoError(t, sessions.Save(want))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	got, err := sessions.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, sessions.Clear())
	require.NoError(t, sessions.Clear())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestSessionStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte("token: [unterminated"), 0600))

	_, err := NewSessionStore(path).Load()
	assert.Error(t, err)
}
