package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Verification token purposes.
const (
	PurposeInvite = "invite"
	PurposeReset  = "reset"
)

// VerificationToken is a single-use credential tied to an AdminUser.
// Consumption stamps UsedAt; a token with UsedAt set or ExpiresAt in the
// past must be rejected.
type VerificationToken struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AdminID   primitive.ObjectID `bson:"admin_id" json:"admin_id"`
	Token     string             `bson:"token" json:"-"`
	Purpose   string             `bson:"purpose" json:"purpose"`
	ExpiresAt time.Time          `bson:"expires_at" json:"expires_at"`
	UsedAt    *time.Time         `bson:"used_at,omitempty" json:"used_at,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
