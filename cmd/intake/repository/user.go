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

const userCollection = "users"

// UserRepository manages service accounts
type UserRepository struct {
	coll *mongo.Collection
	log  *logger.Logger
}

// NewUserRepository creates a user repository
func NewUserRepository(database *db.DB, log *logger.Logger) *UserRepository {
	return &UserRepository{
		coll: database.Collection(userCollection),
		log:  log,
	}
}

// ErrUserExists signals a duplicate username on registration
var ErrUserExists = errors.New("user already exists")

// Create inserts a new account
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	_, err := r.coll.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return ErrUserExists
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}

	r.log.Info("user created", "username", u.Username)
	return nil
}

// GetByUsername fetches an account
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := r.coll.FindOne(ctx, bson.M{"_id": username}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	return &u, nil
}

// List returns all accounts
func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var out []*models.User
	for cur.Next(ctx) {
		var u models.User
		if err := cur.Decode(&u); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		out = append(out, &u)
	}

	return out, cur.Err()
}

// SetPasswordHash updates the stored credential
func (r *UserRepository) SetPasswordHash(ctx context.Context, username, hash string) error {
	return r.setField(ctx, username, "password_hash", hash)
}

// SetVerified updates the verification flag
func (r *UserRepository) SetVerified(ctx context.Context, username string, verified bool) error {
	return r.setField(ctx, username, "is_verified", verified)
}

// SetLinkUpload toggles link-based sourcing for the account
func (r *UserRepository) SetLinkUpload(ctx context.Context, username string, enabled bool) error {
	return r.setField(ctx, username, "link_upload", enabled)
}

func (r *UserRepository) setField(ctx context.Context, username, field string, value any) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": username}, bson.M{"$set": bson.M{field: value}})
	if err != nil {
		return fmt.Errorf("update user %s: %w", field, err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}

	return nil
}

// Delete removes an account
func (r *UserRepository) Delete(ctx context.Context, username string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": username})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}

	r.log.Info("user deleted", "username", username)
	return nil
}
