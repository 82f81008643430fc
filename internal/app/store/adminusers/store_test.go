package adminstore

import (
	"errors"
	"testing"

	"github.com/gracechapel/churchhub/internal/app/system/auth"
	"github.com/gracechapel/churchhub/internal/domain/models"
	"github.com/gracechapel/churchhub/internal/testutil"
)

func TestCreateNormalizesEmailAndRejectsDuplicates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes: %v", err)
	}

	admin := &models.AdminUser{
		Email: "  Pastor@Church.ORG ",
		Name:  "Pastor Kim",
		Role:  models.RoleContentManager,
	}
	if err := store.Create(ctx, admin); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if admin.Email != "pastor@church.org" {
		t.Errorf("email not normalized: %q", admin.Email)
	}

	dup := &models.AdminUser{Email: "PASTOR@church.org", Name: "Imposter", Role: models.RoleNewsEditor}
	if err := store.Create(ctx, dup); !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}

	found, err := store.FindByEmail(ctx, "pastor@CHURCH.org")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if found.ID != admin.ID {
		t.Error("FindByEmail returned a different admin")
	}
}

func TestSetPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fix := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	admin := fix.CreateAdmin(ctx, "editor@church.org", models.RoleNewsEditor, "old-password")

	hash, err := auth.HashPassword("new-password-123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if err := store.SetPassword(ctx, admin.ID, hash); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}

	updated, err := store.FindByID(ctx, admin.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if !auth.VerifyPassword("new-password-123", updated.PasswordHash) {
		t.Error("new password does not verify")
	}
	if auth.VerifyPassword("old-password", updated.PasswordHash) {
		t.Error("old password still verifies")
	}
	if !updated.EmailVerified {
		t.Error("SetPassword should mark the email verified")
	}
}
