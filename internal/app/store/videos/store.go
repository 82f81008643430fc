// Package videostore manages the youtube_videos collection.
package videostore

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
	ErrNotFound  = errors.New("video not found")
	ErrDuplicate = errors.New("video id already registered")
)

// Store manages embedded YouTube video entries.
type Store struct {
	c *mongo.Collection
}

// New creates a video Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("youtube_videos")}
}

// EnsureIndexes creates the unique video_id index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "video_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Create inserts a new video entry.
func (s *Store) Create(ctx context.Context, video *models.YouTubeVideo) error {
	if video.ID.IsZero() {
		video.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	video.CreatedAt = now
	video.UpdatedAt = now

	_, err := s.c.InsertOne(ctx, video)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

// List returns videos in display order, optionally only active ones.
func (s *Store) List(ctx context.Context, activeOnly bool) ([]models.YouTubeVideo, error) {
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

	var videos []models.YouTubeVideo
	if err := cursor.All(ctx, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// Update replaces the editable fields of a video entry.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, video *models.YouTubeVideo) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"video_id":   video.VideoID,
		"title":      video.Title,
		"active":     video.Active,
		"position":   video.Position,
		"updated_at": time.Now().UTC(),
	}})
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a video entry.
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
