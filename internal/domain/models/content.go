package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Livestream is a streaming link shown on the public site. URL is unique.
type Livestream struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title    string             `bson:"title" json:"title"`
	URL      string             `bson:"url" json:"url"`
	Active   bool               `bson:"active" json:"active"`
	Position int                `bson:"position" json:"position"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// YouTubeVideo is an embedded video entry. VideoID is unique.
type YouTubeVideo struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VideoID  string             `bson:"video_id" json:"video_id"`
	Title    string             `bson:"title" json:"title"`
	Active   bool               `bson:"active" json:"active"`
	Position int                `bson:"position" json:"position"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Letter is an admin-curated letter shown in the back office.
type Letter struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title    string             `bson:"title" json:"title"`
	Body     string             `bson:"body" json:"body"`
	Author   string             `bson:"author,omitempty" json:"author,omitempty"`
	Active   bool               `bson:"active" json:"active"`
	Position int                `bson:"position" json:"position"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
