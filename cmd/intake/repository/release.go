package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dnk-music/intake/cmd/intake/models"
	"github.com/dnk-music/intake/common/db"
	"github.com/dnk-music/intake/common/logger"
)

const releaseCollection = "release_requests"

// ReleaseRepository manages release request documents
type ReleaseRepository struct {
	coll *mongo.Collection
	log  *logger.Logger
}

// NewReleaseRepository creates a release request repository
func NewReleaseRepository(database *db.DB, log *logger.Logger) *ReleaseRepository {
	return &ReleaseRepository{
		coll: database.Collection(releaseCollection),
		log:  log,
	}
}

// releaseRequestDoc is the stored shape. Data stays raw on read so it can be
// decoded against the type discriminant.
type releaseRequestDoc struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty"`
	Username        string               `bson:"username"`
	Date            string               `bson:"date"`
	Imprint         string               `bson:"imprint"`
	Source          string               `bson:"source,omitempty"`
	Type            models.ReleaseType   `bson:"type"`
	Status          models.RequestStatus `bson:"status"`
	InDeliverySheet bool                 `bson:"in_delivery_sheet"`
	InDocsSheet     bool                 `bson:"in_docs_sheet"`
	Data            bson.Raw             `bson:"data"`
	Authors         []models.Author      `bson:"authors"`
	UserData        models.Profile       `bson:"user_data"`
}

func (d *releaseRequestDoc) toModel() (*models.ReleaseRequest, error) {
	data, err := models.DecodeReleaseBSON(d.Type, d.Data)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", d.ID.Hex(), err)
	}

	return &models.ReleaseRequest{
		ID:              d.ID.Hex(),
		Username:        d.Username,
		Date:            d.Date,
		Imprint:         d.Imprint,
		Source:          d.Source,
		Type:            d.Type,
		Status:          d.Status,
		InDeliverySheet: d.InDeliverySheet,
		InDocsSheet:     d.InDocsSheet,
		Data:            data,
		Authors:         d.Authors,
		UserData:        d.UserData,
	}, nil
}

// Create inserts a new release request and returns its assigned id
func (r *ReleaseRepository) Create(ctx context.Context, req *models.ReleaseRequest) (string, error) {
	doc := bson.M{
		"username":          req.Username,
		"date":              req.Date,
		"imprint":           req.Imprint,
		"source":            req.Source,
		"type":              req.Type,
		"status":            req.Status,
		"in_delivery_sheet": req.InDeliverySheet,
		"in_docs_sheet":     req.InDocsSheet,
		"data":              req.Data,
		"authors":           req.Authors,
		"user_data":         req.UserData,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert release request: %w", err)
	}

	id := res.InsertedID.(primitive.ObjectID).Hex()
	r.log.Info("release request created", "request_id", id, "username", req.Username, "type", req.Type)
	return id, nil
}

// GetByID fetches a release request
func (r *ReleaseRepository) GetByID(ctx context.Context, id string) (*models.ReleaseRequest, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrNotFound
	}

	var doc releaseRequestDoc
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find release request: %w", err)
	}

	return doc.toModel()
}

// List returns requests, optionally filtered by username and/or status,
// newest first
func (r *ReleaseRepository) List(ctx context.Context, username string, status models.RequestStatus) ([]*models.ReleaseRequest, error) {
	filter := bson.M{}
	if username != "" {
		filter["username"] = username
	}
	if status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list release requests: %w", err)
	}
	defer cur.Close(ctx)

	var out []*models.ReleaseRequest
	for cur.Next(ctx) {
		var doc releaseRequestDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode release request: %w", err)
		}
		req, err := doc.toModel()
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}

	return out, cur.Err()
}

// Update replaces the mutable fields of a pending request. Type, username,
// status and the sheet flags are not touched.
func (r *ReleaseRepository) Update(ctx context.Context, id string, date, imprint, source string, data models.Release, authors []models.Author) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrNotFound
	}

	update := bson.M{"$set": bson.M{
		"date":    date,
		"imprint": imprint,
		"source":  source,
		"data":    data,
		"authors": authors,
	}}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update release request: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}

	return nil
}

// SetStatus updates the lifecycle status
func (r *ReleaseRepository) SetStatus(ctx context.Context, id string, status models.RequestStatus) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("set release request status: %w", err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}

	return nil
}

// MarkInDeliverySheet flips the delivery-sheet flag. The flag only ever goes
// from false to true.
func (r *ReleaseRepository) MarkInDeliverySheet(ctx context.Context, id string) error {
	return r.markFlag(ctx, id, "in_delivery_sheet")
}

// MarkInDocsSheet flips the docs-sheet flag. The flag only ever goes from
// false to true.
func (r *ReleaseRepository) MarkInDocsSheet(ctx context.Context, id string) error {
	return r.markFlag(ctx, id, "in_docs_sheet")
}

func (r *ReleaseRepository) markFlag(ctx context.Context, id, field string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{field: true}})
	if err != nil {
		return fmt.Errorf("mark %s: %w", field, err)
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}

	r.log.Info("release request flag set", "request_id", id, "flag", field)
	return nil
}

// Delete removes a release request
func (r *ReleaseRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete release request: %w", err)
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}

	return nil
}
