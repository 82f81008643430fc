package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin roles. SuperAdmin can manage other admins and read the audit log;
// ContentManager can edit every content collection; NewsEditor is limited
// to news articles and word-of-the-day posts.
const (
	RoleSuperAdmin     = "super_admin"
	RoleContentManager = "content_manager"
	RoleNewsEditor     = "news_editor"
)

// ValidAdminRole reports whether role is one of the admin role constants.
func ValidAdminRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleContentManager, RoleNewsEditor:
		return true
	}
	return false
}

// AdminUser is a back-office staff identity. Email is unique. Admin users
// are never hard-deleted; access is removed by changing the password or role.
type AdminUser struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email         string             `bson:"email" json:"email"`
	Name          string             `bson:"name" json:"name"`
	Role          string             `bson:"role" json:"role"`
	PasswordHash  string             `bson:"password_hash" json:"-"`
	EmailVerified bool               `bson:"email_verified" json:"email_verified"`
	LastLoginAt   *time.Time         `bson:"last_login_at,omitempty" json:"last_login_at,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
