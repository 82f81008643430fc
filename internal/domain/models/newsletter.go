package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Newsletter delivery frequencies.
const (
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

// ValidFrequency reports whether f is a known delivery frequency.
func ValidFrequency(f string) bool {
	return f == FrequencyWeekly || f == FrequencyMonthly
}

// Newsletter is one document per unique subscriber email. EmailCI is the
// case-folded upsert key; Email preserves what the subscriber typed.
type Newsletter struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	EmailCI   string             `bson:"email_ci" json:"-"`
	Frequency string             `bson:"frequency" json:"frequency"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
