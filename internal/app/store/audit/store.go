// Package audit persists the append-only audit log of admin actions.
package audit

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Action verbs recorded against resources.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionLogin  = "login"
	ActionLogout = "logout"
	ActionInvite = "invite"
	ActionReset  = "reset_password"
)

// Resource types referenced by audit entries.
const (
	ResourceEvent      = "event"
	ResourceNews       = "news"
	ResourceWotd       = "wotd"
	ResourceMember     = "member"
	ResourceAdminUser  = "admin_user"
	ResourceNewsletter = "newsletter"
	ResourceLivestream = "livestream"
	ResourceVideo      = "youtube_video"
	ResourceLetter     = "letter"
)

// Entry is one audit record. Entries are never mutated after insertion.
type Entry struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	AdminID      *primitive.ObjectID `bson:"admin_id,omitempty" json:"admin_id,omitempty"`
	AdminEmail   string              `bson:"admin_email,omitempty" json:"admin_email,omitempty"`
	Action       string              `bson:"action" json:"action"`
	ResourceType string              `bson:"resource_type" json:"resource_type"`
	ResourceID   string              `bson:"resource_id,omitempty" json:"resource_id,omitempty"`
	Details      string              `bson:"details,omitempty" json:"details,omitempty"`
	IP           string              `bson:"ip,omitempty" json:"ip,omitempty"`
	CreatedAt    time.Time           `bson:"created_at" json:"created_at"`
}

// Filter narrows List/Count queries.
type Filter struct {
	AdminID      *primitive.ObjectID
	Action       string
	ResourceType string
	Since        *time.Time
	Until        *time.Time
	Skip         int64
	Limit        int64
}

// Store manages the audit_logs collection.
type Store struct {
	c *mongo.Collection
}

// New creates an audit Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("audit_logs")}
}

// EnsureIndexes creates the indexes List relies on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{
			{Key: "resource_type", Value: 1},
			{Key: "created_at", Value: -1},
		}},
		{Keys: bson.D{
			{Key: "admin_id", Value: 1},
			{Key: "created_at", Value: -1},
		}},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Append inserts one audit entry. There is no update or delete counterpart.
func (s *Store) Append(ctx context.Context, entry Entry) error {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, entry)
	return err
}

func (f Filter) query() bson.M {
	query := bson.M{}
	if f.AdminID != nil {
		query["admin_id"] = f.AdminID
	}
	if f.Action != "" {
		query["action"] = f.Action
	}
	if f.ResourceType != "" {
		query["resource_type"] = f.ResourceType
	}
	if f.Since != nil || f.Until != nil {
		rangeQuery := bson.M{}
		if f.Since != nil {
			rangeQuery["$gte"] = *f.Since
		}
		if f.Until != nil {
			rangeQuery["$lte"] = *f.Until
		}
		query["created_at"] = rangeQuery
	}
	return query
}

// List returns entries matching the filter, newest first.
func (s *Store) List(ctx context.Context, filter Filter) ([]Entry, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(filter.Skip).
		SetLimit(limit)

	cursor, err := s.c.Find(ctx, filter.query(), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []Entry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Count returns the number of entries matching the filter.
func (s *Store) Count(ctx context.Context, filter Filter) (int64, error) {
	return s.c.CountDocuments(ctx, filter.query())
}
