// Package fileutils manages uploaded files under the configured media root.
// Layout: <root>/<owner_id>/<book_id>/<filename>, with covers in a cover/
// subdirectory.
package fileutils

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

type Store struct {
	root string
}

func NewStore(root string) *Store {
	return &Store{root: root}
}

// Root returns the media root directory.
func (s *Store) Root() string {
	return s.root
}

// SaveUpload writes r to the book's directory and returns the path relative
// to the media root.
func (s *Store) SaveUpload(ownerID, bookID, filename string, r io.Reader) (string, error) {
	return s.save(filepath.Join(ownerID, bookID, filepath.Base(filename)), r)
}

// SaveCover writes a cover image to the book's cover directory and returns
// the path relative to the media root.
func (s *Store) SaveCover(ownerID, bookID, filename string, r io.Reader) (string, error) {
	return s.save(filepath.Join(ownerID, bookID, "cover", filepath.Base(filename)), r)
}

func (s *Store) save(relPath string, r io.Reader) (string, error) {
	fullPath := filepath.Join(s.root, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", errors.WithStack(err)
	}

	f, err := os.Create(fullPath)
	if err != nil {
		return "", errors.WithStack(err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", errors.WithStack(err)
	}
	return relPath, nil
}

// Open opens a previously saved file by its root-relative path.
func (s *Store) Open(relPath string) (*os.File, error) {
	f, err := os.Open(filepath.Join(s.root, relPath))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return f, nil
}

// Read returns the contents of a previously saved file.
func (s *Store) Read(relPath string) ([]byte, error) {
	b, err := os.ReadFile(filepath.Join(s.root, relPath))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return b, nil
}

// Delete removes a single saved file.
func (s *Store) Delete(relPath string) error {
	return errors.WithStack(os.Remove(filepath.Join(s.root, relPath)))
}

// DeleteBookDir removes a book's entire media directory, covers included.
func (s *Store) DeleteBookDir(ownerID, bookID string) error {
	return errors.WithStack(os.RemoveAll(filepath.Join(s.root, ownerID, bookID)))
}
