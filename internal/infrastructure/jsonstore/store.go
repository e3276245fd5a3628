// Package jsonstore persists each collection as a human-readable JSON record
// array under a single data directory. Writes are atomic: the new content is
// serialised to a temporary sibling and renamed over the destination, so a
// failed save leaves the previous file byte-identical.
package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

var (
	// ErrCorrupted marks a collection file that exists but cannot be parsed.
	// A corrupt file never loads as an empty collection.
	ErrCorrupted = errors.New("collection data corrupted")

	// ErrSaveFailed marks a write that did not reach the destination file
	ErrSaveFailed = errors.New("collection save failed")

	// ErrLocked means another process already holds the data directory
	ErrLocked = errors.New("data directory is locked by another process")
)

// DB is a handle over one data directory. It owns an advisory lockfile for
// the lifetime of the process; concurrent access is not supported.
type DB struct {
	dir  string
	lock *flock.Flock
}

// Open creates the data directory if needed and takes the advisory lock
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	lock := flock.New(filepath.Join(dir, ".lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire data lock: %w", err)
	}
	if !locked {
		return nil, ErrLocked
	}

	return &DB{dir: dir, lock: lock}, nil
}

// Close releases the advisory lock
func (db *DB) Close() error {
	if db.lock == nil {
		return nil
	}
	return db.lock.Unlock()
}

// Dir returns the data directory path
func (db *DB) Dir() string {
	return db.dir
}

// Path returns the file backing the named collection
func (db *DB) Path(name string) string {
	return filepath.Join(db.dir, name+".json")
}

// Exists reports whether the named collection has been written before
func (db *DB) Exists(name string) bool {
	_, err := os.Stat(db.Path(name))
	return err == nil
}

// Load decodes the named collection into out, which must be a pointer to a
// slice. A missing file leaves out untouched (an empty collection); an
// unreadable or unparsable file fails with ErrCorrupted.
func (db *DB) Load(name string, out any) error {
	data, err := os.ReadFile(db.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", ErrCorrupted, name, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: parse %s: %v", ErrCorrupted, name, err)
	}
	return nil
}

// Save atomically replaces the named collection with v
func (db *DB) Save(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrSaveFailed, name, err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(db.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: temp file for %s: %v", ErrSaveFailed, name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: write %s: %v", ErrSaveFailed, name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: sync %s: %v", ErrSaveFailed, name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: close %s: %v", ErrSaveFailed, name, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: chmod %s: %v", ErrSaveFailed, name, err)
	}

	if err := os.Rename(tmpName, db.Path(name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: rename %s: %v", ErrSaveFailed, name, err)
	}
	return nil
}
