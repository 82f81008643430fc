package audit

import (
	"testing"

	"github.com/gracechapel/churchhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAppendAndList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	adminID := primitive.NewObjectID()

	entries := []Entry{
		{AdminID: &adminID, AdminEmail: "a@church.org", Action: ActionCreate, ResourceType: ResourceEvent, ResourceID: "e1"},
		{AdminID: &adminID, AdminEmail: "a@church.org", Action: ActionDelete, ResourceType: ResourceEvent, ResourceID: "e1"},
		{Action: ActionCreate, ResourceType: ResourceNews, ResourceID: "n1"},
	}
	for _, e := range entries {
		if err := store.Append(ctx, e); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	all, err := store.List(ctx, Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}

	byAdmin, err := store.List(ctx, Filter{AdminID: &adminID})
	if err != nil {
		t.Fatalf("List by admin: %v", err)
	}
	if len(byAdmin) != 2 {
		t.Errorf("expected 2 entries for admin, got %d", len(byAdmin))
	}

	count, err := store.Count(ctx, Filter{Action: ActionCreate})
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 create entries, got %d", count)
	}

	byResource, err := store.List(ctx, Filter{ResourceType: ResourceNews})
	if err != nil {
		t.Fatalf("List by resource: %v", err)
	}
	if len(byResource) != 1 || byResource[0].ResourceID != "n1" {
		t.Errorf("resource filter returned %+v", byResource)
	}
}
