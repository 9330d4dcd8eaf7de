// Package slot implements durable string-keyed storage slots. Each slot
// holds one whole value that is read once and overwritten wholesale.
package slot

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/twiced-technology-gmbh/tasklist/internal/filelock"
)

const (
	dirMode  = 0o750
	fileMode = 0o600

	// Ext is the file extension of slot files inside a data directory.
	Ext = ".slot"

	lockFileName = ".lock"
)

// Slot is a named, persistent string store.
type Slot interface {
	// Get returns the value stored under key. ok is false when the key has
	// never been set or was deleted.
	Get(key string) (value string, ok bool, err error)
	// Set overwrites the value stored under key.
	Set(key, value string) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
}

// Dir stores each slot as a file in a directory. Writes go through a temp
// file and a rename so readers never observe a partial value, and are
// serialized across processes with an advisory lock.
type Dir struct {
	path string
}

// OpenDir creates the directory if needed and returns a Dir rooted there.
func OpenDir(path string) (*Dir, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	if err := os.MkdirAll(abs, dirMode); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &Dir{path: abs}, nil
}

// Root returns the absolute directory path.
func (d *Dir) Root() string {
	return d.path
}

// Path returns the file backing key.
func (d *Dir) Path(key string) string {
	return filepath.Join(d.path, FileName(key))
}

// FileName returns the base file name backing key.
func FileName(key string) string {
	return url.QueryEscape(key) + Ext
}

// KeyOf maps a slot file name back to its key.
func KeyOf(name string) (string, bool) {
	base := filepath.Base(name)
	if !strings.HasSuffix(base, Ext) || strings.HasPrefix(base, ".") {
		return "", false
	}
	key, err := url.QueryUnescape(strings.TrimSuffix(base, Ext))
	if err != nil {
		return "", false
	}
	return key, true
}

// Get implements Slot.
func (d *Dir) Get(key string) (string, bool, error) {
	data, err := os.ReadFile(d.Path(key)) //nolint:gosec // slot path derived from the data dir
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading slot %q: %w", key, err)
	}
	return string(data), true, nil
}

// Set implements Slot.
func (d *Dir) Set(key, value string) error {
	return filelock.With(d.lockPath(), func() error {
		return d.replace(key, value)
	})
}

// replace writes value to a temp file and renames it over the slot file.
func (d *Dir) replace(key, value string) error {
	tmp, err := os.CreateTemp(d.path, ".tmp-*")
	if err != nil {
		return fmt.Errorf("writing slot %q: %w", key, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // gone after a successful rename

	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing slot %q: %w", key, err)
	}
	if err := tmp.Chmod(fileMode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing slot %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing slot %q: %w", key, err)
	}
	if err := os.Rename(tmpName, d.Path(key)); err != nil {
		return fmt.Errorf("replacing slot %q: %w", key, err)
	}
	return nil
}

// Delete implements Slot.
func (d *Dir) Delete(key string) error {
	return filelock.With(d.lockPath(), func() error {
		if err := os.Remove(d.Path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("deleting slot %q: %w", key, err)
		}
		return nil
	})
}

func (d *Dir) lockPath() string {
	return filepath.Join(d.path, lockFileName)
}

// Memory is an in-process Slot for tests. It counts writes so tests can
// assert that a no-op did not persist.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
	writes int
}

// NewMemory returns an empty Memory slot store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Get implements Slot.
func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements Slot.
func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	m.writes++
	return nil
}

// Delete implements Slot.
func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// Writes returns how many times Set has been called.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
