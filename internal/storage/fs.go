package storage

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// FileSystem is the file access the store needs. WriteFile must replace the
// whole file.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte) error
}

// OSFS reads and writes the local disk. Writes go to a temp file in the
// target directory which is then renamed over the target.
type OSFS struct{}

// ReadFile reads the named file.
func (OSFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// WriteFile atomically replaces name with data, creating parent directories.
func (OSFS) WriteFile(name string, data []byte) (err error) {
	dir := filepath.Dir(name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(name), uuid.NewString()))

	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = f.Write(data); err != nil {
		_ = f.Close()

		return fmt.Errorf("write temp file: %w", err)
	}

	if err = f.Sync(); err != nil {
		_ = f.Close()

		return fmt.Errorf("sync temp file: %w", err)
	}

	if err = f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err = os.Rename(tmpPath, name); err != nil {
		return fmt.Errorf("replace %s: %w", name, err)
	}

	return nil
}

// MemFS keeps files in memory. ReadErr, when set, is returned by every read.
type MemFS struct {
	files   map[string][]byte
	ReadErr error
	mu      sync.Mutex
	Writes  int
}

// NewMemFS returns an empty in-memory file system.
func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

// ReadFile returns a copy of the stored bytes or an fs.ErrNotExist path error.
func (m *MemFS) ReadFile(name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ReadErr != nil {
		return nil, &fs.PathError{Op: "read", Path: name, Err: m.ReadErr}
	}

	data, ok := m.files[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}

	return append([]byte(nil), data...), nil
}

// WriteFile stores a copy of data under name.
func (m *MemFS) WriteFile(name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.files[name] = append([]byte(nil), data...)
	m.Writes++

	return nil
}
