// Package memberstore manages the members collection.
package memberstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/gracechapel/churchhub/internal/app/system/normalize"
	"github.com/gracechapel/churchhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound  = errors.New("member not found")
	ErrDuplicate = errors.New("member id or email already registered")
)

// Store manages church member records.
type Store struct {
	c *mongo.Collection
}

// New creates a member Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("members")}
}

// EnsureIndexes creates unique indexes on the natural keys and a search
// index on the case-folded name.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "member_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "full_name_ci", Value: 1}}},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Filter narrows List queries. Search matches a case-folded prefix of the
// member's name or locality.
type Filter struct {
	Search   string
	Locality string
	Skip     int64
	Limit    int64
}

// Create inserts a new member. Natural keys are normalized before storage.
func (s *Store) Create(ctx context.Context, member *models.Member) error {
	if member.ID.IsZero() {
		member.ID = primitive.NewObjectID()
	}
	member.MemberID = normalize.MemberID(member.MemberID)
	member.Email = normalize.Email(member.Email)
	member.FullName = normalize.Name(member.FullName)
	member.FullNameCI = text.Fold(member.FullName)
	member.LocalityCI = text.Fold(member.Locality)

	now := time.Now().UTC()
	member.CreatedAt = now
	member.UpdatedAt = now

	_, err := s.c.InsertOne(ctx, member)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

// FindByID returns the member with the given ObjectID.
func (s *Store) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Member, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

// FindByMemberID returns the member with the given external identifier.
func (s *Store) FindByMemberID(ctx context.Context, memberID string) (*models.Member, error) {
	return s.findOne(ctx, bson.M{"member_id": normalize.MemberID(memberID)})
}

// FindByEmail returns the member with the given email.
func (s *Store) FindByEmail(ctx context.Context, email string) (*models.Member, error) {
	return s.findOne(ctx, bson.M{"email": normalize.Email(email)})
}

func (s *Store) findOne(ctx context.Context, query bson.M) (*models.Member, error) {
	var member models.Member
	err := s.c.FindOne(ctx, query).Decode(&member)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// List returns members matching the filter, ordered by name.
func (s *Store) List(ctx context.Context, filter Filter) ([]models.Member, error) {
	query := bson.M{}
	if filter.Search != "" {
		folded := text.Fold(filter.Search)
		query["$or"] = bson.A{
			bson.M{"full_name_ci": bson.M{"$regex": "^" + folded}},
			bson.M{"locality_ci": bson.M{"$regex": "^" + folded}},
		}
	}
	if filter.Locality != "" {
		query["locality_ci"] = text.Fold(filter.Locality)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "full_name_ci", Value: 1}}).
		SetSkip(filter.Skip).
		SetLimit(limit)

	cursor, err := s.c.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var members []models.Member
	if err := cursor.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// Update replaces the editable fields of a member record.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, member *models.Member) error {
	member.FullName = normalize.Name(member.FullName)

	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"full_name":           member.FullName,
		"full_name_ci":        text.Fold(member.FullName),
		"email":               normalize.Email(member.Email),
		"phone":               member.Phone,
		"locality":            member.Locality,
		"locality_ci":         text.Fold(member.Locality),
		"blessing_status":     member.BlessingStatus,
		"membership_kind":     member.MembershipKind,
		"spiritual_parent_id": member.SpiritualParentID,
		"joined_at":           member.JoinedAt,
		"updated_at":          time.Now().UTC(),
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

// Delete removes a member record.
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
