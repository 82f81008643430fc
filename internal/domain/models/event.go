package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventTimeLayout is the datetime format editors enter for event times.
const EventTimeLayout = "2006-01-02T15:04"

// Event areas. Events are grouped by the broad ministry area they belong to.
const (
	AreaWorship  = "worship"
	AreaYouth    = "youth"
	AreaFamily   = "family"
	AreaOutreach = "outreach"
	AreaNational = "national"
)

// ValidArea reports whether area is one of the event area constants.
func ValidArea(area string) bool {
	switch area {
	case AreaWorship, AreaYouth, AreaFamily, AreaOutreach, AreaNational:
		return true
	}
	return false
}

// Event is a calendar entry. StartsAt/EndsAt are local datetime strings of
// the form "2006-01-02T15:04" as entered by editors; they are compared
// lexicographically, which is safe for this format.
type Event struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title    string             `bson:"title" json:"title"`
	StartsAt string             `bson:"starts_at" json:"starts_at"`
	EndsAt   string             `bson:"ends_at,omitempty" json:"ends_at,omitempty"`
	Location string             `bson:"location,omitempty" json:"location,omitempty"`
	Area     string             `bson:"area" json:"area"`
	Region   string             `bson:"region,omitempty" json:"region,omitempty"`
	Church   string             `bson:"church,omitempty" json:"church,omitempty"`

	// Display metadata
	ImageURL    string `bson:"image_url,omitempty" json:"image_url,omitempty"`
	ButtonLabel string `bson:"button_label,omitempty" json:"button_label,omitempty"`
	ButtonLink  string `bson:"button_link,omitempty" json:"button_link,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
