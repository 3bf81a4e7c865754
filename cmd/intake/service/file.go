package service

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dnk-music/intake/cmd/intake/models"
	"github.com/dnk-music/intake/common/blob"
	"github.com/dnk-music/intake/common/logger"
)

// FileMetaStore is the persisted upload metadata collection
type FileMetaStore interface {
	Create(ctx context.Context, meta *models.FileMeta) error
	GetByID(ctx context.Context, id string) (*models.FileMeta, error)
	Delete(ctx context.Context, id string) error
}

// FileService stages uploads into the blob store. Images are re-encoded to
// JPEG regardless of upload format; everything else is stored verbatim.
type FileService struct {
	meta  FileMetaStore
	blobs *blob.Store
	log   *logger.Logger
}

// NewFileService creates the upload staging service
func NewFileService(meta FileMetaStore, blobs *blob.Store, log *logger.Logger) *FileService {
	return &FileService{meta: meta, blobs: blobs, log: log}
}

// Upload stages the content and records its metadata
func (s *FileService) Upload(ctx context.Context, name string, r io.Reader) (*models.FileMeta, error) {
	id := uuid.NewString()
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")

	var err error
	if isImage(ext) {
		_, err = s.blobs.SaveAsJPEG(id, r)
		ext = "jpg"
	} else {
		if ext == "" {
			return nil, models.Validationf("file %q has no extension", name)
		}
		_, err = s.blobs.Save(id, ext, r)
	}
	if err != nil {
		return nil, err
	}

	meta := &models.FileMeta{
		ID:         id,
		Name:       name,
		Extension:  ext,
		UploadedAt: time.Now().UTC(),
	}
	if err := s.meta.Create(ctx, meta); err != nil {
		return nil, err
	}

	s.log.Info("file staged", "file_id", id, "name", name, "extension", ext)
	return meta, nil
}

// Download opens a staged upload for reading
func (s *FileService) Download(ctx context.Context, id string) (*models.FileMeta, *os.File, error) {
	meta, err := s.meta.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	file, err := s.blobs.Open(meta.ID, meta.Extension)
	if err != nil {
		return nil, nil, err
	}

	return meta, file, nil
}

// PathFor resolves a staged file id to its local path
func (s *FileService) PathFor(ctx context.Context, id string) (string, error) {
	meta, err := s.meta.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return s.blobs.Path(meta.ID, meta.Extension), nil
}

// Delete removes a staged upload and its metadata
func (s *FileService) Delete(ctx context.Context, id string) error {
	meta, err := s.meta.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.meta.Delete(ctx, id); err != nil {
		return err
	}

	if err := os.Remove(s.blobs.Path(meta.ID, meta.Extension)); err != nil && !os.IsNotExist(err) {
		s.log.Warn("staged blob removal failed", "file_id", id, "error", err)
	}

	return nil
}

func isImage(ext string) bool {
	switch ext {
	case "jpg", "jpeg", "png", "gif":
		return true
	}
	return false
}
