// Package storage persists uploaded attachments (policyholder photos
// and claim documents) on the local filesystem. The database only
// keeps the stored filename; serving the files back is outside the
// core and left to whatever fronts the media directory.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileStore writes uploads into a media directory.
type FileStore struct {
	dir string
}

// NewFileStore creates the media directory if needed and returns a
// store rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Save streams one multipart upload to disk and returns the stored
// filename. The original base name is kept for display but prefixed
// with a UUID so concurrent uploads of equally named files never
// collide.
func (s *FileStore) Save(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + "_" + filepath.Base(fh.Filename)
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return name, nil
}

// Remove deletes a stored file. A missing file is not an error; the
// reference may already have been cleaned up.
func (s *FileStore) Remove(name string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(name)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// DisplayName strips the UUID prefix from a stored filename, giving
// back the name the user uploaded.
func DisplayName(stored string) string {
	base := filepath.Base(stored)
	if len(base) > 37 && base[36] == '_' {
		return base[37:]
	}
	return base
}
