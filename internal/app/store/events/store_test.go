package eventstore

import (
	"errors"
	"testing"

	"github.com/gracechapel/churchhub/internal/domain/models"
	"github.com/gracechapel/churchhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDeleteIsIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fix := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	event := fix.CreateEvent(ctx, "Sunday Service", "2026-09-06T10:00", models.AreaWorship)

	deleted, err := store.Delete(ctx, event.ID)
	if err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if !deleted {
		t.Error("first delete should report deleted=true")
	}

	// Deleting again must succeed and report that nothing was removed.
	deleted, err = store.Delete(ctx, event.ID)
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if deleted {
		t.Error("second delete should report deleted=false")
	}
}

func TestListFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fix := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	fix.CreateEvent(ctx, "Youth Camp", "2026-07-10T09:00", models.AreaYouth)
	fix.CreateEvent(ctx, "Worship Night", "2026-07-20T19:00", models.AreaWorship)
	fix.CreateEvent(ctx, "Outreach Day", "2026-08-01T08:00", models.AreaOutreach)

	byArea, err := store.List(ctx, Filter{Area: models.AreaYouth})
	if err != nil {
		t.Fatalf("List by area: %v", err)
	}
	if len(byArea) != 1 || byArea[0].Title != "Youth Camp" {
		t.Errorf("area filter returned %+v", byArea)
	}

	upcoming, err := store.List(ctx, Filter{After: "2026-07-15T00:00"})
	if err != nil {
		t.Fatalf("List after: %v", err)
	}
	if len(upcoming) != 2 {
		t.Fatalf("expected 2 events after bound, got %d", len(upcoming))
	}
	// Soonest first.
	if upcoming[0].Title != "Worship Night" {
		t.Errorf("expected Worship Night first, got %q", upcoming[0].Title)
	}
}

func TestUpdateMissingEvent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	err := store.Update(ctx, primitive.NewObjectID(), &models.Event{Title: "Ghost"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateSetsTimestamps(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := New(db)
	event := &models.Event{
		Title:    "Family Picnic",
		StartsAt: "2026-09-12T12:00",
		Area:     models.AreaFamily,
	}
	if err := store.Create(ctx, event); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if event.ID.IsZero() {
		t.Error("Create did not assign an id")
	}
	if event.CreatedAt.IsZero() || event.UpdatedAt.IsZero() {
		t.Error("Create did not stamp timestamps")
	}
}
