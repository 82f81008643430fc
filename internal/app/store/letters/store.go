// Package letterstore manages the letters collection.
package letterstore

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

var ErrNotFound = errors.New("letter not found")

// Store manages admin-curated letters.
type Store struct {
	c *mongo.Collection
}

// New creates a letter Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("letters")}
}

// Create inserts a new letter.
func (s *Store) Create(ctx context.Context, letter *models.Letter) error {
	if letter.ID.IsZero() {
		letter.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	letter.CreatedAt = now
	letter.UpdatedAt = now

	_, err := s.c.InsertOne(ctx, letter)
	return err
}

// List returns letters in display order, optionally only active ones.
func (s *Store) List(ctx context.Context, activeOnly bool) ([]models.Letter, error) {
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

	var letters []models.Letter
	if err := cursor.All(ctx, &letters); err != nil {
		return nil, err
	}
	return letters, nil
}

// Update replaces the editable fields of a letter.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, letter *models.Letter) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"title":      letter.Title,
		"body":       letter.Body,
		"author":     letter.Author,
		"active":     letter.Active,
		"position":   letter.Position,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a letter.
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
