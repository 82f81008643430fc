// Package newsstore manages the news collection.
package newsstore

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
	ErrNotFound      = errors.New("article not found")
	ErrDuplicateSlug = errors.New("slug already in use")
	ErrNotPublished  = errors.New("article is not published")
)

// publishedValues matches canonical and legacy "published" statuses so
// counters keep working against unmigrated documents.
var publishedValues = []string{models.NewsPublished, "public"}

// Store manages news articles.
type Store struct {
	c *mongo.Collection
}

// New creates a news Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("news")}
}

// EnsureIndexes creates the unique slug index and the listing sort index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Filter narrows List queries.
type Filter struct {
	PublishedOnly bool
	Tag           string
	Skip          int64
	Limit         int64
}

// Create inserts a new article.
func (s *Store) Create(ctx context.Context, article *models.News) error {
	if article.ID.IsZero() {
		article.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	article.CreatedAt = now
	article.UpdatedAt = now

	_, err := s.c.InsertOne(ctx, article)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateSlug
	}
	return err
}

// FindByRef resolves an article by ObjectID hex or, failing that, by slug.
func (s *Store) FindByRef(ctx context.Context, ref string) (*models.News, error) {
	if oid, err := primitive.ObjectIDFromHex(ref); err == nil {
		article, err := s.findOne(ctx, bson.M{"_id": oid})
		if err == nil || !errors.Is(err, ErrNotFound) {
			return article, err
		}
	}
	return s.findOne(ctx, bson.M{"slug": ref})
}

func (s *Store) findOne(ctx context.Context, query bson.M) (*models.News, error) {
	var article models.News
	err := s.c.FindOne(ctx, query).Decode(&article)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	article.Normalize()
	return &article, nil
}

// List returns articles matching the filter, newest first.
func (s *Store) List(ctx context.Context, filter Filter) ([]models.News, error) {
	query := bson.M{}
	if filter.PublishedOnly {
		query["status"] = bson.M{"$in": publishedValues}
	}
	if filter.Tag != "" {
		query["tags"] = filter.Tag
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(filter.Skip).
		SetLimit(limit)

	cursor, err := s.c.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var articles []models.News
	if err := cursor.All(ctx, &articles); err != nil {
		return nil, err
	}
	for i := range articles {
		articles[i].Normalize()
	}
	return articles, nil
}

// Update replaces the editable fields of an article.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, article *models.News) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"slug":       article.Slug,
		"title":      article.Title,
		"body":       article.Body,
		"status":     article.Status,
		"tags":       article.Tags,
		"updated_at": time.Now().UTC(),
	}})
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateSlug
	}
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an article.
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

// IncrementViews adds exactly 1 to the view counter of a published article.
// The status check and the increment are a single atomic update, so
// concurrent calls never lose counts. Returns ErrNotPublished when the
// article exists but is not published.
func (s *Store) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": bson.M{"$in": publishedValues}},
		bson.M{"$inc": bson.M{"views": 1}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		count, err := s.c.CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrNotPublished
	}
	return nil
}

// IncrementLikes adds 1 to the like counter of a published article.
func (s *Store) IncrementLikes(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": bson.M{"$in": publishedValues}},
		bson.M{"$inc": bson.M{"likes": 1}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		count, err := s.c.CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrNotPublished
	}
	return nil
}

// AddComment appends an embedded comment to a published article.
func (s *Store) AddComment(ctx context.Context, id primitive.ObjectID, comment models.Comment) error {
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": bson.M{"$in": publishedValues}},
		bson.M{"$push": bson.M{"comments": comment}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		count, err := s.c.CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrNotPublished
	}
	return nil
}
