package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blessing statuses for members.
const (
	BlessingNone      = "none"
	BlessingCandidate = "candidate"
	BlessingBlessed   = "blessed"
)

// Member is a church member record. MemberID is the human-assigned external
// identifier; SpiritualParentID is a loose self-reference by MemberID and is
// not enforced as a database relation.
type Member struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MemberID   string             `bson:"member_id" json:"member_id"`
	FullName   string             `bson:"full_name" json:"full_name"`
	FullNameCI string             `bson:"full_name_ci" json:"-"` // lowercase, diacritics-stripped
	Email      string             `bson:"email" json:"email"`
	Phone      string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Locality   string             `bson:"locality,omitempty" json:"locality,omitempty"`
	LocalityCI string             `bson:"locality_ci,omitempty" json:"-"`

	BlessingStatus    string `bson:"blessing_status,omitempty" json:"blessing_status,omitempty"`
	MembershipKind    string `bson:"membership_kind,omitempty" json:"membership_kind,omitempty"`
	SpiritualParentID string `bson:"spiritual_parent_id,omitempty" json:"spiritual_parent_id,omitempty"`

	JoinedAt  *time.Time `bson:"joined_at,omitempty" json:"joined_at,omitempty"`
	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
}
