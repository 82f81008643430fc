// Package livestreamstore manages the livestreams collection.
package livestreamstore

import (
	"context"
	"errors"
	"time"

	"github.com/gracechapel/churchhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound     = errors.New("livestream not found")
	ErrDuplicateURL = errors.New("livestream url already registered")
)

// Store manages livestream links.
type Store struct {
	c *mongo.Collection
}

// New creates a livestream Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("livestreams")}
}

// EnsureIndexes creates the unique url index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "url", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Create inserts a new livestream entry.
func (s *Store) Create(ctx context.Context, stream *models.Livestream) error {
	if stream.ID.IsZero() {
		stream.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	stream.CreatedAt = now
	stream.UpdatedAt = now

	_, err := s.c.InsertOne(ctx, stream)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateURL
	}
	return err
}

// List returns livestreams in display order. When activeOnly is set, only
// entries with the active flag are returned.
func (s *Store) List(ctx context.Context, activeOnly bool) ([]models.Livestream, error) {
	query := bson.M{}
	if activeOnly {
		query["active"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cursor, err := s.c.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var streams []models.Livestream
	if err := cursor.All(ctx, &streams); err != nil {
		return nil, err
	}
	return streams, nil
}

// Update replaces the editable fields of a livestream entry.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, stream *models.Livestream) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"title":      stream.Title,
		"url":        stream.URL,
		"active":     stream.Active,
		"position":   stream.Position,
		"updated_at": time.Now().UTC(),
	}})
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateURL
	}
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a livestream entry.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
