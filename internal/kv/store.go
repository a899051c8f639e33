// Package kv provides the small key-value store that backs persisted
// preferences and user templates.
//
// Three backends share the Store interface:
//   - MemoryStore: process-local map, used by tests and throwaway sessions
//   - FileStore: a single JSON object on disk
//   - SQLiteStore: an embedded SQLite database
//
// Values are opaque strings; callers own their encoding.
package kv

import (
	"fmt"

	"github.com/handiism/flstudio-hub/internal/config"
)

// Keys used by flstudio-hub components.
const (
	KeyDarkMode  = "darkMode"
	KeyAPIKey    = "gemini_api_key"
	KeyTemplates = "fl-studio-templates"
)

// Store is a string key-value store.
type Store interface {
	// Get returns the value and whether the key exists.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	// Delete removes the key. Deleting a missing key is not an error.
	Delete(key string) error
	Close() error
}

// Open returns the backend selected by settings.
func Open(s *config.Settings) (Store, error) {
	switch s.StoreBackend {
	case config.BackendMemory:
		return NewMemoryStore(), nil
	case config.BackendFile, "":
		return NewFileStore(s.StorePath())
	case config.BackendSQLite:
		return OpenSQLite(s.StorePath())
	}
	return nil, fmt.Errorf("unknown store backend %q", s.StoreBackend)
}
