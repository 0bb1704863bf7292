// Package kv provides a durable per-app key-value store backed by the local
// filesystem: one file per key inside a single namespace directory.
package kv

import (
	"os"
	"path/filepath"
	"strings"

	"aura/internal/domain/repository"

	"github.com/pkg/errors"
)

const fileMode = 0o600

// FileStore implements repository.KVStore with one file per key. Writes go
// through a temp file followed by a rename so a value is either fully present
// or fully absent; partial-write visibility is never observed.
type FileStore struct {
	dir string
}

// NewFileStore creates the namespace directory when missing and returns a
// store rooted at dir.
func NewFileStore(dir string) (*FileStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("kv: store directory must be provided")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrap(err, "kv: create store directory")
	}

	return &FileStore{dir: dir}, nil
}

var _ repository.KVStore = (*FileStore)(nil)

// Get returns the bytes stored under key, or (nil, nil) when the key does
// not exist.
func (s *FileStore) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "kv: read key %s", key)
	}

	return data, nil
}

// Put stores value under key, atomically replacing any prior value.
func (s *FileStore) Put(key string, value []byte) error {
	target := s.path(key)

	tmp, err := os.CreateTemp(s.dir, ".put-*")
	if err != nil {
		return errors.Wrapf(err, "kv: create temp file for key %s", key)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)

		return errors.Wrapf(err, "kv: write key %s", key)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)

		return errors.Wrapf(err, "kv: close temp file for key %s", key)
	}

	if err := os.Chmod(tmpName, fileMode); err != nil {
		os.Remove(tmpName)

		return errors.Wrapf(err, "kv: chmod key %s", key)
	}

	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)

		return errors.Wrapf(err, "kv: commit key %s", key)
	}

	return nil
}

// Remove deletes the value stored under key. Removing an absent key is not
// an error.
func (s *FileStore) Remove(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Wrapf(err, "kv: remove key %s", key)
	}

	return nil
}

// path maps a key to a file name inside the namespace directory. Path
// separators are flattened so a key can never escape the namespace.
func (s *FileStore) path(key string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(key)

	return filepath.Join(s.dir, safe)
}
