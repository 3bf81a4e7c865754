package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/dnk-music/intake/common/config"
	"github.com/dnk-music/intake/common/logger"
)

// DB wraps the mongo client with common operations
type DB struct {
	client   *mongo.Client
	database *mongo.Database
	log      *logger.Logger
}

// New creates a new document store connection
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*DB, error) {
	opts := options.Client().
		ApplyURI(cfg.Mongo.URI).
		SetConnectTimeout(cfg.Mongo.ConnectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	// Test connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	log.Info("document store connected", "database", cfg.Mongo.Database)

	return &DB{
		client:   client,
		database: client.Database(cfg.Mongo.Database),
		log:      log,
	}, nil
}

// Collection returns a handle to the named collection
func (db *DB) Collection(name string) *mongo.Collection {
	return db.database.Collection(name)
}

// Close disconnects from the document store
func (db *DB) Close(ctx context.Context) error {
	db.log.Info("closing document store connection")
	return db.client.Disconnect(ctx)
}

// Health checks document store health
func (db *DB) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return db.client.Ping(ctx, readpref.Primary())
}
