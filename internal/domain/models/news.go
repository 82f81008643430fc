package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Canonical article statuses. "public" and "private" are legacy values from
// an earlier schema; historical documents may still carry them, so every
// read path maps them through NormalizeNewsStatus.
const (
	NewsPublished = "published"
	NewsDraft     = "draft"

	legacyPublic  = "public"
	legacyPrivate = "private"
)

// NormalizeNewsStatus maps legacy status values onto the canonical pair.
// Unknown values are returned unchanged.
func NormalizeNewsStatus(status string) string {
	switch status {
	case legacyPublic:
		return NewsPublished
	case legacyPrivate:
		return NewsDraft
	}
	return status
}

// ValidNewsStatus reports whether status is storable (canonical values only;
// legacy values are rejected on write).
func ValidNewsStatus(status string) bool {
	return status == NewsPublished || status == NewsDraft
}

// Comment is an embedded reader comment on an article. It is deliberately
// loose: only Author and Text are required by handlers.
type Comment struct {
	Author    string    `bson:"author" json:"author"`
	Text      string    `bson:"text" json:"text"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// News is an article. Slug is unique and URL-addressable alongside the id.
type News struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Slug    string             `bson:"slug" json:"slug"`
	Title   string             `bson:"title" json:"title"`
	Body    string             `bson:"body" json:"body"` // sanitized HTML
	Status  string             `bson:"status" json:"status"`
	Tags    []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	Views   int64              `bson:"views" json:"views"`
	Likes   int64              `bson:"likes" json:"likes"`
	Comments []Comment         `bson:"comments,omitempty" json:"comments,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Normalize maps legacy status values in place. Call after every decode.
func (n *News) Normalize() {
	n.Status = NormalizeNewsStatus(n.Status)
}
