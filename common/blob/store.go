package blob

import (
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
)

// Store keeps uploaded media staged on local disk until relocation,
// one file per blob id. It carries no business knowledge.
type Store struct {
	dir string
}

// NewStore creates a staging store rooted at dir
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Save writes blob content to the staging dir as <id>.<ext>
func (s *Store) Save(id, ext string, r io.Reader) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create staging dir: %w", err)
	}

	path := s.Path(id, ext)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create staged file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, r); err != nil {
		return "", fmt.Errorf("write staged file: %w", err)
	}

	return path, nil
}

// SaveAsJPEG decodes an uploaded image and stages it re-encoded as <id>.jpg.
// Covers and passport scans are normalized to JPEG regardless of upload format.
func (s *Store) SaveAsJPEG(id string, r io.Reader) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create staging dir: %w", err)
	}

	img, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	path := s.Path(id, "jpg")
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create staged file: %w", err)
	}
	defer file.Close()

	if err := jpeg.Encode(file, img, nil); err != nil {
		return "", fmt.Errorf("encode jpeg: %w", err)
	}

	return path, nil
}

// Path returns the staging path for a blob id and extension
func (s *Store) Path(id, ext string) string {
	return filepath.Join(s.dir, id+"."+ext)
}

// Open opens a staged blob for reading
func (s *Store) Open(id, ext string) (*os.File, error) {
	file, err := os.Open(s.Path(id, ext))
	if err != nil {
		return nil, fmt.Errorf("open staged file %s.%s: %w", id, ext, err)
	}
	return file, nil
}

// Exists reports whether a staged blob is present
func (s *Store) Exists(id, ext string) bool {
	_, err := os.Stat(s.Path(id, ext))
	return err == nil
}
