package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Wotd is a word-of-the-day post. Date is a "2006-01-02" string so at most
// one post per calendar day is addressable.
type Wotd struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Text      string             `bson:"text" json:"text"`
	Reference string             `bson:"reference,omitempty" json:"reference,omitempty"`
	Date      string             `bson:"date" json:"date"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
