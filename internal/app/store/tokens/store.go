// Package tokenstore manages single-use admin verification tokens.
package tokenstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/gracechapel/churchhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound = errors.New("token not found")
	ErrConsumed = errors.New("token already used")
	ErrExpired  = errors.New("token expired")
)

// Store manages the verification_tokens collection.
type Store struct {
	c *mongo.Collection
}

// New creates a verification token Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("verification_tokens")}
}

// EnsureIndexes creates the unique token index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "token", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Issue creates a token for the given admin and purpose, valid for ttl.
func (s *Store) Issue(ctx context.Context, adminID primitive.ObjectID, purpose string, ttl time.Duration) (*models.VerificationToken, error) {
	now := time.Now().UTC()
	token := &models.VerificationToken{
		ID:        primitive.NewObjectID(),
		AdminID:   adminID,
		Token:     uuid.NewString(),
		Purpose:   purpose,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

// Consume atomically claims an unused, unexpired token with the given value
// and purpose, stamping used_at. Expiry and one-time-use are both enforced
// here: a second Consume of the same token fails, as does any Consume after
// expires_at.
func (s *Store) Consume(ctx context.Context, token, purpose string) (*models.VerificationToken, error) {
	now := time.Now().UTC()

	var claimed models.VerificationToken
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{
			"token":      token,
			"purpose":    purpose,
			"used_at":    nil,
			"expires_at": bson.M{"$gt": now},
		},
		bson.M{"$set": bson.M{"used_at": now}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&claimed)

	if errors.Is(err, mongo.ErrNoDocuments) {
		// Distinguish the failure for the caller's error message.
		var existing models.VerificationToken
		lookupErr := s.c.FindOne(ctx, bson.M{"token": token, "purpose": purpose}).Decode(&existing)
		if errors.Is(lookupErr, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		if lookupErr != nil {
			return nil, lookupErr
		}
		if existing.UsedAt != nil {
			return nil, ErrConsumed
		}
		return nil, ErrExpired
	}
	if err != nil {
		return nil, err
	}
	return &claimed, nil
}
