// Package newsletterstore manages the newsletters collection.
package newsletterstore

import (
	"context"
	"errors"
	"time"

	"github.com/gracechapel/churchhub/internal/app/system/normalize"
	"github.com/gracechapel/churchhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("subscription not found")

// Store manages newsletter subscriptions.
type Store struct {
	c *mongo.Collection
}

// New creates a newsletter Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("newsletters")}
}

// EnsureIndexes creates the unique case-folded email index that backs the
// upsert key.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email_ci", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Subscribe upserts a subscription keyed on the case-folded email. A repeat
// submission with any casing updates the existing document's frequency
// instead of creating a duplicate. Returns true when a new document was
// created.
func (s *Store) Subscribe(ctx context.Context, email, frequency string) (bool, error) {
	emailCI := normalize.Email(email)
	now := time.Now().UTC()

	res, err := s.c.UpdateOne(ctx,
		bson.M{"email_ci": emailCI},
		bson.M{
			"$set": bson.M{
				"email":      email,
				"frequency":  frequency,
				"updated_at": now,
			},
			"$setOnInsert": bson.M{
				"_id":        primitive.NewObjectID(),
				"email_ci":   emailCI,
				"created_at": now,
			},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, err
	}
	return res.UpsertedCount > 0, nil
}

// List returns subscriptions ordered by creation time, newest first.
func (s *Store) List(ctx context.Context, skip, limit int64) ([]models.Newsletter, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var subs []models.Newsletter
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// Count returns the total number of subscriptions.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// Unsubscribe removes the subscription for the given email (any casing).
func (s *Store) Unsubscribe(ctx context.Context, email string) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"email_ci": normalize.Email(email)})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
