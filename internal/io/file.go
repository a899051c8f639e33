package ioutils

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	invalidChars   = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots   = regexp.MustCompile(`\.+$`)
	repeatedSpaces = regexp.MustCompile(`\s+`)
)

// WriteFileAtomic writes data to a temp file in the same directory and
// renames it over path. The file ends up with mode 0644.
//
// Readers observe either the previous content or the new content, never a
// partial write.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

// SanitizeFileName removes or replaces characters that are invalid in file/folder names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars 0x00-0x1f) → underscore
//   - Trailing dots → removed (Windows limitation)
//   - Multiple whitespace → single space
//   - Trailing whitespace → removed
//
// Example:
//
//	SanitizeFileName("Song: Part 1/2")     // Returns "Song_ Part 1_2"
//	SanitizeFileName("Track...")           // Returns "Track"
func SanitizeFileName(name string) string {
	name = invalidChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = repeatedSpaces.ReplaceAllString(name, " ")
	return strings.TrimRight(name, " ")
}

// EnsureDir creates a directory and all parent directories if they don't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
