package client

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	storage := NewFileStorage(path)

	s, err := storage.Load()
	require.NoError(t, err)
	assert.Nil(t, s)

	in := &Session{User: User{ID: 1, Name: "Ada"}, Token: "tok", ExpiresAt: time.Now().Add(time.Hour).UTC().Truncate(time.Second)}
	require.NoError(t, storage.Save(in))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	out, err := storage.Load()
	require.NoError(t, err)
	assert.Equal(t, in.Token, out.Token)
	assert.Equal(t, in.User.Name, out.User.Name)
	assert.True(t, in.ExpiresAt.Equal(out.ExpiresAt))

	require.NoError(t, storage.Clear())
	require.NoError(t, storage.Clear())
	s, err = storage.Load()
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestFileStorage_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileStorage(path).Load()
	assert.Error(t, err)
}

func TestSessionExpired(t *testing.T) {
	now := time.Now()
	assert.False(t, (&Session{}).Expired(now))
	assert.True(t, (&Session{ExpiresAt: now}).Expired(now))
	assert.False(t, (&Session{ExpiresAt: now.Add(time.Second)}).Expired(now))
}
