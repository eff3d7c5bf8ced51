// Package storage keeps attachment binaries on local disk under a
// configured root, one directory per device. Metadata lives in the
// attachments table; deleting an attachment removes both.
package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Store writes and removes attachment files under Root.
type Store struct {
	root string
}

// New creates the store, making sure the root directory exists.
func New(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Wrap(err, "attachment root")
	}
	return &Store{root: root}, nil
}

// Save streams an uploaded file into the store and returns its relative
// storage path. The stored name is a fresh UUID plus the original
// extension, so user-supplied names never touch the filesystem.
func (s *Store) Save(deviceID, fileName string, r io.Reader) (string, int64, error) {
	ext := sanitizeExt(filepath.Ext(fileName))
	rel := filepath.Join(deviceID, uuid.NewString()+ext)

	abs := filepath.Join(s.root, rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", 0, errors.Wrap(err, "attachment dir")
	}

	f, err := os.Create(abs)
	if err != nil {
		return "", 0, errors.Wrap(err, "attachment create")
	}
	defer f.Close()

	n, err := io.Copy(f, r)
	if err != nil {
		os.Remove(abs)
		return "", 0, errors.Wrap(err, "attachment write")
	}
	return rel, n, nil
}

// Open returns a reader over a stored attachment.
func (s *Store) Open(rel string) (io.ReadCloser, error) {
	abs, err := s.resolve(rel)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(abs)
	if err != nil {
		return nil, errors.Wrap(err, "attachment open")
	}
	return f, nil
}

// Remove deletes a stored attachment binary. A missing file is not an
// error; the metadata row is the source of truth.
func (s *Store) Remove(rel string) error {
	abs, err := s.resolve(rel)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "attachment remove")
	}
	return nil
}

// resolve joins rel under the root and rejects traversal outside it.
func (s *Store) resolve(rel string) (string, error) {
	if filepath.IsAbs(rel) {
		return "", errors.New("attachment path must be relative")
	}
	clean := filepath.Clean(rel)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(os.PathSeparator)) {
		return "", errors.New("attachment path escapes storage root")
	}
	return filepath.Join(s.root, clean), nil
}

func sanitizeExt(ext string) string {
	if len(ext) > 10 || strings.ContainsAny(ext, "/\\") {
		return ""
	}
	return strings.ToLower(ext)
}
