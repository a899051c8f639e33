package kv

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	ioutils "github.com/handiism/flstudio-hub/internal/io"
)

// FileStore persists every key in one JSON object file.
//
// The whole file is rewritten on each Set or Delete, through a temp file
// and rename so a crash never leaves a half-written store.
type FileStore struct {
	path string

	mu   sync.Mutex
	data map[string]string
}

// NewFileStore opens (or lazily creates) the store at path.
func NewFileStore(path string) (*FileStore, error) {
	fs := &FileStore{path: path, data: make(map[string]string)}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fs, nil
		}
		return nil, err
	}
	if len(raw) == 0 {
		return fs, nil
	}
	if err := json.Unmarshal(raw, &fs.data); err != nil {
		return nil, fmt.Errorf("read store %s: %w", path, err)
	}
	return fs, nil
}

// Path returns the backing file path.
func (f *FileStore) Path() string { return f.path }

func (f *FileStore) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *FileStore) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	prev, had := f.data[key]
	f.data[key] = value
	if err := f.flush(); err != nil {
		if had {
			f.data[key] = prev
		} else {
			delete(f.data, key)
		}
		return err
	}
	return nil
}

func (f *FileStore) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	prev, had := f.data[key]
	if !had {
		return nil
	}
	delete(f.data, key)
	if err := f.flush(); err != nil {
		f.data[key] = prev
		return err
	}
	return nil
}

func (f *FileStore) Close() error { return nil }

// flush must be called with mu held.
func (f *FileStore) flush() error {
	if err := ioutils.EnsureDir(filepath.Dir(f.path)); err != nil {
		return err
	}

	raw, err := json.MarshalIndent(f.data, "", "  ")
	if err != nil {
		return err
	}

	return ioutils.WriteFileAtomic(f.path, raw)
}
