// Package lintfs abstracts the file operations the validation pipeline
// performs, so the pipeline is testable without touching disk and so safety
// checks (symlink rejection, size ceilings) live in one place.
package lintfs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultMaxFileSize is the size ceiling for readable files. Files up to and
// including the ceiling are accepted; larger files are rejected.
const DefaultMaxFileSize = 1 << 20 // 1 MiB

// Common errors.
var (
	ErrSymlink    = errors.New("refusing to read symlink")
	ErrNotRegular = errors.New("not a regular file")
	ErrTooLarge   = errors.New("file exceeds size limit")
)

// FileSystem is the capability consumed by the validator and the fix engine.
type FileSystem interface {
	// ReadFile returns the file's content, enforcing the implementation's
	// safety checks.
	ReadFile(path string) ([]byte, error)
	// WriteFile replaces the file's content.
	WriteFile(path string, data []byte) error
	// Exists reports whether a file or directory exists at path.
	Exists(path string) bool
	// ReadDir lists the entries of a directory.
	ReadDir(path string) ([]fs.DirEntry, error)
}

// OSFS reads the real disk. It rejects symlinks, non-regular files, and
// files above MaxFileSize.
type OSFS struct {
	// MaxFileSize overrides DefaultMaxFileSize when > 0.
	MaxFileSize int64
}

// NewOSFS returns an OSFS with the default size ceiling.
func NewOSFS() *OSFS {
	return &OSFS{}
}

func (o *OSFS) limit() int64 {
	if o.MaxFileSize > 0 {
		return o.MaxFileSize
	}
	return DefaultMaxFileSize
}

func (o *OSFS) ReadFile(path string) ([]byte, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return nil, err
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrSymlink)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: %w", path, ErrNotRegular)
	}
	if info.Size() > o.limit() {
		return nil, fmt.Errorf("%s: %w (%d bytes, limit %d)", path, ErrTooLarge, info.Size(), o.limit())
	}
	return os.ReadFile(path)
}

func (o *OSFS) WriteFile(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	return os.WriteFile(path, data, mode)
}

func (o *OSFS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (o *OSFS) ReadDir(path string) ([]fs.DirEntry, error) {
	return os.ReadDir(path)
}

// MemFS is an in-memory FileSystem for tests. Paths are compared after
// filepath.Clean, so "./a" and "a" address the same entry.
type MemFS struct {
	files map[string][]byte
}

// NewMemFS creates a MemFS pre-populated with the given path → content map.
func NewMemFS(files map[string]string) *MemFS {
	m := &MemFS{files: make(map[string][]byte, len(files))}
	for p, c := range files {
		m.files[filepath.Clean(p)] = []byte(c)
	}
	return m
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	data, ok := m.files[filepath.Clean(path)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *MemFS) WriteFile(path string, data []byte) error {
	buf := make([]byte, len(data))
	copy(buf, data)
	m.files[filepath.Clean(path)] = buf
	return nil
}

func (m *MemFS) Exists(path string) bool {
	path = filepath.Clean(path)
	if _, ok := m.files[path]; ok {
		return true
	}
	// Directories exist implicitly when any file lives under them.
	prefix := path + string(filepath.Separator)
	for p := range m.files {
		if len(p) > len(prefix) && p[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}

func (m *MemFS) ReadDir(path string) ([]fs.DirEntry, error) {
	return nil, &fs.PathError{Op: "readdir", Path: path, Err: errors.New("not supported by MemFS")}
}
