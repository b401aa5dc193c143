package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/panaderia-erp/internal/infrastructure/session"
)

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "erp", "session.json")
	s := session.NewFileStore(path)

	_, ok, err := s.Load()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Save("tok-1"))
	tok, ok, err := s.Load()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok-1", tok)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"erp_token":"tok-1"`)

	require.NoError(t, s.Clear())
	_, ok, err = s.Load()
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, s.Clear(), "limpiar dos veces no falla")
}

func TestFileStore_Corrupto(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{no-json"), 0o600))

	_, _, err := session.NewFileStore(path).Load()
	assert.Error(t, err)
}
