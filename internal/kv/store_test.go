package kv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/handiism/flstudio-hub/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	fileStore, err := NewFileStore(filepath.Join(dir, "store.json"))
	require.NoError(t, err)

	sqliteStore, err := OpenSQLite(filepath.Join(dir, "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqliteStore.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   fileStore,
		"sqlite": sqliteStore,
	}
}

func TestStore_Contract(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := s.Get("missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.Set(KeyDarkMode, "true"))
			v, ok, err := s.Get(KeyDarkMode)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "true", v)

			require.NoError(t, s.Set(KeyDarkMode, "false"))
			v, _, _ = s.Get(KeyDarkMode)
			assert.Equal(t, "false", v)

			require.NoError(t, s.Delete(KeyDarkMode))
			_, ok, _ = s.Get(KeyDarkMode)
			assert.False(t, ok)

			assert.NoError(t, s.Delete("never-set"))
		})
	}
}

func TestFileStore_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "store.json")

	s, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(KeyAPIKey, "abc"))

	reopened, err := NewFileStore(path)
	require.NoError(t, err)
	v, ok, err := reopened.Get(KeyAPIKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", v)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := NewFileStore(path)
	assert.Error(t, err)
}

func TestSQLiteStore_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(KeyTemplates, "[]"))
	require.NoError(t, s.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	v, ok, err := reopened.Get(KeyTemplates)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)
}

func TestOpen(t *testing.T) {
	tests := []struct {
		backend string
		want    any
	}{
		{config.BackendMemory, &MemoryStore{}},
		{config.BackendFile, &FileStore{}},
		{config.BackendSQLite, &SQLiteStore{}},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			s := config.DefaultSettings()
			s.DataDir = t.TempDir()
			s.StoreBackend = tt.backend

			store, err := Open(s)
			require.NoError(t, err)
			defer store.Close()
			assert.IsType(t, tt.want, store)
		})
	}

	s := config.DefaultSettings()
	s.StoreBackend = "etcd"
	_, err := Open(s)
	assert.Error(t, err)
}
