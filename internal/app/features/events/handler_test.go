package events

import (
	"net/http"
	"net/http/httptest"
	"testing"

	eventstore "github.com/gracechapel/churchhub/internal/app/store/events"
	"github.com/gracechapel/churchhub/internal/domain/models"
	"github.com/gracechapel/churchhub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewHandler(eventstore.New(db), nil, zap.NewNop()), testutil.NewFixtures(t, db)
}

func TestCreateValidatesInput(t *testing.T) {
	h, _ := newTestHandler(t)

	cases := []struct {
		name string
		body map[string]any
	}{
		{"missing title", map[string]any{"starts_at": "2026-09-06T10:00", "area": "worship"}},
		{"unknown area", map[string]any{"title": "X", "starts_at": "2026-09-06T10:00", "area": "bowling"}},
		{"bad datetime", map[string]any{"title": "X", "starts_at": "next sunday", "area": "worship"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.NewAdminRequest(t, http.MethodPost, "/api/events", tc.body, testutil.SuperAdminClaims())
			rec := httptest.NewRecorder()
			h.Create(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestCreateAndGet(t *testing.T) {
	h, _ := newTestHandler(t)

	body := map[string]any{
		"title":     "Sunday Service",
		"starts_at": "2026-09-06T10:00",
		"area":      models.AreaWorship,
		"location":  "Main Sanctuary",
	}
	req := testutil.NewAdminRequest(t, http.MethodPost, "/api/events", body, testutil.SuperAdminClaims())
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created models.Event
	testutil.DecodeJSON(t, rec, &created)
	if created.ID.IsZero() {
		t.Fatal("created event has no id")
	}

	getReq := httptest.NewRequest(http.MethodGet, "/api/events/"+created.ID.Hex(), nil)
	getReq = testutil.WithChiURLParam(getReq, "id", created.ID.Hex())
	getRec := httptest.NewRecorder()
	h.Get(getRec, getReq)

	if getRec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", getRec.Code)
	}
	var fetched models.Event
	testutil.DecodeJSON(t, getRec, &fetched)
	if fetched.Title != "Sunday Service" {
		t.Errorf("unexpected title %q", fetched.Title)
	}
}

func TestGetRejectsBadID(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/events/not-an-id", nil)
	req = testutil.WithChiURLParam(req, "id", "not-an-id")
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed id, got %d", rec.Code)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	h, fix := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	event := fix.CreateEvent(ctx, "One-off", "2026-10-01T18:00", models.AreaFamily)

	del := func() (int, map[string]any) {
		req := testutil.NewAdminRequest(t, http.MethodDelete, "/api/events/"+event.ID.Hex(), nil, testutil.SuperAdminClaims())
		req = testutil.WithChiURLParam(req, "id", event.ID.Hex())
		rec := httptest.NewRecorder()
		h.Delete(rec, req)

		var body map[string]any
		testutil.DecodeJSON(t, rec, &body)
		return rec.Code, body
	}

	code, body := del()
	if code != http.StatusOK || body["deleted"] != true {
		t.Fatalf("first delete: code=%d body=%v", code, body)
	}

	code, body = del()
	if code != http.StatusOK || body["deleted"] != false {
		t.Errorf("second delete should be 200 with deleted=false: code=%d body=%v", code, body)
	}
}

func TestListRejectsUnknownArea(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/events?area=bowling", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
