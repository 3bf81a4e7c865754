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

const profileCollection = "profiles"

// ProfileRepository manages user legal profiles, keyed by username
type ProfileRepository struct {
	coll *mongo.Collection
	log  *logger.Logger
}

// NewProfileRepository creates a profile repository
func NewProfileRepository(database *db.DB, log *logger.Logger) *ProfileRepository {
	return &ProfileRepository{
		coll: database.Collection(profileCollection),
		log:  log,
	}
}

type profileDoc struct {
	Username string         `bson:"_id"`
	Profile  models.Profile `bson:"profile"`
}

// Get fetches the user's profile
func (r *ProfileRepository) Get(ctx context.Context, username string) (*models.Profile, error) {
	var doc profileDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": username}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find profile: %w", err)
	}

	return &doc.Profile, nil
}

// Put stores the user's profile, creating it on first write
func (r *ProfileRepository) Put(ctx context.Context, username string, p *models.Profile) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": username}, profileDoc{Username: username, Profile: *p}, opts)
	if err != nil {
		return fmt.Errorf("put profile: %w", err)
	}

	r.log.Info("profile stored", "username", username)
	return nil
}
