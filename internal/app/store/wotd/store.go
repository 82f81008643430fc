// Package wotdstore manages word-of-the-day posts.
package wotdstore

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

var ErrNotFound = errors.New("wotd not found")

// Store manages word-of-the-day posts.
type Store struct {
	c *mongo.Collection
}

// New creates a wotd Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("wotd")}
}

// EnsureIndexes creates the date index used by Latest and FindByDate.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "date", Value: -1}},
	})
	return err
}

// Create inserts a new post. Date defaults to today when blank.
func (s *Store) Create(ctx context.Context, post *models.Wotd) error {
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	if post.Date == "" {
		post.Date = now.Format("2006-01-02")
	}
	post.CreatedAt = now
	post.UpdatedAt = now

	_, err := s.c.InsertOne(ctx, post)
	return err
}

// Latest returns the most recent post.
func (s *Store) Latest(ctx context.Context) (*models.Wotd, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "date", Value: -1}})

	var post models.Wotd
	err := s.c.FindOne(ctx, bson.M{}, opts).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// FindByDate returns the post for a "2006-01-02" date string.
func (s *Store) FindByDate(ctx context.Context, date string) (*models.Wotd, error) {
	var post models.Wotd
	err := s.c.FindOne(ctx, bson.M{"date": date}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}
