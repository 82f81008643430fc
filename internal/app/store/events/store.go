// Package eventstore manages the events collection.
package eventstore

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

var ErrNotFound = errors.New("event not found")

// Store manages calendar events.
type Store struct {
	c *mongo.Collection
}

// New creates an event Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("events")}
}

// EnsureIndexes creates the starts_at index used by upcoming-event queries.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "starts_at", Value: 1}},
	})
	return err
}

// Filter narrows List queries.
type Filter struct {
	Area  string
	After string // lexicographic bound on starts_at ("2006-01-02T15:04")
	Skip  int64
	Limit int64
}

// Create inserts a new event.
func (s *Store) Create(ctx context.Context, event *models.Event) error {
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now

	_, err := s.c.InsertOne(ctx, event)
	return err
}

// FindByID returns the event with the given id.
func (s *Store) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	var event models.Event
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// List returns events matching the filter, soonest first.
func (s *Store) List(ctx context.Context, filter Filter) ([]models.Event, error) {
	query := bson.M{}
	if filter.Area != "" {
		query["area"] = filter.Area
	}
	if filter.After != "" {
		query["starts_at"] = bson.M{"$gte": filter.After}
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "starts_at", Value: 1}}).
		SetSkip(filter.Skip).
		SetLimit(limit)

	cursor, err := s.c.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []models.Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Update replaces the editable fields of an event. Returns ErrNotFound when
// no document matches.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, event *models.Event) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"title":        event.Title,
		"starts_at":    event.StartsAt,
		"ends_at":      event.EndsAt,
		"location":     event.Location,
		"area":         event.Area,
		"region":       event.Region,
		"church":       event.Church,
		"image_url":    event.ImageURL,
		"button_label": event.ButtonLabel,
		"button_link":  event.ButtonLink,
		"updated_at":   time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an event. Deleting a missing event is not an error; the
// returned bool reports whether a document was actually removed.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
