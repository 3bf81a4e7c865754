package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dnk-music/intake/cmd/intake/models"
	"github.com/dnk-music/intake/common/db"
	"github.com/dnk-music/intake/common/logger"
)

const processedCollection = "processed_requests"

// ProcessedRepository manages archival snapshots of processed requests
type ProcessedRepository struct {
	coll *mongo.Collection
	log  *logger.Logger
}

// NewProcessedRepository creates a processed request repository
func NewProcessedRepository(database *db.DB, log *logger.Logger) *ProcessedRepository {
	return &ProcessedRepository{
		coll: database.Collection(processedCollection),
		log:  log,
	}
}

// Upsert stores the snapshot keyed by the originating request id. Rerunning
// an action overwrites the previous snapshot.
func (r *ProcessedRepository) Upsert(ctx context.Context, p *models.ProcessedRequest) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": p.ID}, p, opts)
	if err != nil {
		return fmt.Errorf("upsert processed request: %w", err)
	}

	r.log.Info("processed request stored", "request_id", p.ID, "username", p.Username)
	return nil
}

// GetByID fetches the snapshot for a request id
func (r *ProcessedRepository) GetByID(ctx context.Context, id string) (*models.ProcessedRequest, error) {
	var p models.ProcessedRequest
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find processed request: %w", err)
	}

	return &p, nil
}

// LatestByUsername returns the user's most recently dated snapshot, skipping
// the excluded request id
func (r *ProcessedRepository) LatestByUsername(ctx context.Context, username, excludeID string) (*models.ProcessedRequest, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "date", Value: -1}})

	filter := bson.M{"username": username}
	if excludeID != "" {
		filter["_id"] = bson.M{"$ne": excludeID}
	}

	var p models.ProcessedRequest
	err := r.coll.FindOne(ctx, filter, opts).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find latest processed request: %w", err)
	}

	return &p, nil
}
