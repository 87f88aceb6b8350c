package rentals

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// PictureStore persists uploaded rental pictures.
type PictureStore interface {
	Save(filename string, r io.Reader) (string, error)
	Path(filename string) string
}

// DiskStore stores pictures as flat files under a single directory.
type DiskStore struct {
	dir string
}

// NewDiskStore constructs the store, creating the directory when missing.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("rentals: create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

// Save writes the uploaded file under a uuid-prefixed name and returns the
// stored filename.
func (s *DiskStore) Save(filename string, r io.Reader) (string, error) {
	name := uuid.NewString() + "_" + filepath.Base(filename)
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("rentals: store picture: %w", err)
	}
	defer dst.Close()
	if _, err := io.Copy(dst, r); err != nil {
		return "", fmt.Errorf("rentals: store picture: %w", err)
	}
	return name, nil
}

// Path maps a stored filename to its on-disk location. Only the base name is
// used so a crafted filename cannot escape the upload directory.
func (s *DiskStore) Path(filename string) string {
	return filepath.Join(s.dir, filepath.Base(filename))
}

var _ PictureStore = (*DiskStore)(nil)
