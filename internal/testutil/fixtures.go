package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/gracechapel/churchhub/internal/app/system/auth"
	"github.com/gracechapel/churchhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateAdmin creates an admin user with the given role and a known password.
func (f *Fixtures) CreateAdmin(ctx context.Context, email, role, password string) models.AdminUser {
	f.t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		f.t.Fatalf("failed to hash fixture password: %v", err)
	}

	now := time.Now().UTC()
	admin := models.AdminUser{
		ID:            primitive.NewObjectID(),
		Email:         email,
		Name:          "Test Admin",
		Role:          role,
		PasswordHash:  hash,
		EmailVerified: true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := f.db.Collection("admin_users").InsertOne(ctx, admin); err != nil {
		f.t.Fatalf("failed to create test admin: %v", err)
	}
	return admin
}

// CreateMember creates a member record.
func (f *Fixtures) CreateMember(ctx context.Context, memberID, fullName, email string) models.Member {
	f.t.Helper()

	now := time.Now().UTC()
	member := models.Member{
		ID:             primitive.NewObjectID(),
		MemberID:       memberID,
		FullName:       fullName,
		FullNameCI:     text.Fold(fullName),
		Email:          email,
		Locality:       "Test City",
		LocalityCI:     text.Fold("Test City"),
		BlessingStatus: models.BlessingNone,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := f.db.Collection("members").InsertOne(ctx, member); err != nil {
		f.t.Fatalf("failed to create test member: %v", err)
	}
	return member
}

// CreateEvent creates a calendar event.
func (f *Fixtures) CreateEvent(ctx context.Context, title, startsAt, area string) models.Event {
	f.t.Helper()

	now := time.Now().UTC()
	event := models.Event{
		ID:        primitive.NewObjectID(),
		Title:     title,
		StartsAt:  startsAt,
		Area:      area,
		Location:  "Main Sanctuary",
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("events").InsertOne(ctx, event); err != nil {
		f.t.Fatalf("failed to create test event: %v", err)
	}
	return event
}

// CreateNews creates an article with the given slug and status.
func (f *Fixtures) CreateNews(ctx context.Context, title, slug, status string) models.News {
	f.t.Helper()

	now := time.Now().UTC()
	article := models.News{
		ID:        primitive.NewObjectID(),
		Slug:      slug,
		Title:     title,
		Body:      "<p>Test body</p>",
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("news").InsertOne(ctx, article); err != nil {
		f.t.Fatalf("failed to create test article: %v", err)
	}
	return article
}
