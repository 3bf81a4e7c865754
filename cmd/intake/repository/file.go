package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dnk-music/intake/cmd/intake/models"
	"github.com/dnk-music/intake/common/db"
	"github.com/dnk-music/intake/common/logger"
)

const fileCollection = "files"

// FileRepository manages metadata for staged uploads. The bytes live in the
// blob store under the metadata id.
type FileRepository struct {
	coll *mongo.Collection
	log  *logger.Logger
}

// NewFileRepository creates a file metadata repository
func NewFileRepository(database *db.DB, log *logger.Logger) *FileRepository {
	return &FileRepository{
		coll: database.Collection(fileCollection),
		log:  log,
	}
}

// Create stores metadata for a staged upload
func (r *FileRepository) Create(ctx context.Context, meta *models.FileMeta) error {
	_, err := r.coll.InsertOne(ctx, meta)
	if err != nil {
		return fmt.Errorf("insert file meta: %w", err)
	}

	return nil
}

// GetByID fetches upload metadata
func (r *FileRepository) GetByID(ctx context.Context, id string) (*models.FileMeta, error) {
	var meta models.FileMeta
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&meta)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find file meta: %w", err)
	}

	return &meta, nil
}

// Delete removes upload metadata
func (r *FileRepository) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete file meta: %w", err)
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}

	return nil
}
