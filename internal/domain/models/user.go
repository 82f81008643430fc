package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Member-account roles, distinct from the admin role enum.
const (
	UserRoleMember = "member"
	UserRoleAdmin  = "admin"
)

// User is an authentication account for the member-facing site, bound
// one-to-one to a Member record.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MemberRef    primitive.ObjectID `bson:"member_ref" json:"member_ref"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Role         string             `bson:"role" json:"role"` // member | admin
	LastLoginAt  *time.Time         `bson:"last_login_at,omitempty" json:"last_login_at,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
