package members

import (
	"net/http"
	"net/http/httptest"
	"testing"

	memberstore "github.com/gracechapel/churchhub/internal/app/store/members"
	"github.com/gracechapel/churchhub/internal/domain/models"
	"github.com/gracechapel/churchhub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	store := memberstore.New(db)

	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("ensure member indexes: %v", err)
	}

	return NewHandler(store, nil, zap.NewNop()), testutil.NewFixtures(t, db)
}

func TestCreateValidatesInput(t *testing.T) {
	h, _ := newTestHandler(t)

	cases := []struct {
		name string
		body map[string]any
	}{
		{"missing member id", map[string]any{"full_name": "Jane", "email": "jane@example.com"}},
		{"bad email", map[string]any{"member_id": "GC-1", "full_name": "Jane", "email": "nope"}},
		{"bad blessing status", map[string]any{"member_id": "GC-1", "full_name": "Jane", "email": "jane@example.com", "blessing_status": "maybe"}},
		{"bad joined_at", map[string]any{"member_id": "GC-1", "full_name": "Jane", "email": "jane@example.com", "joined_at": "yesterday"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.NewAdminRequest(t, http.MethodPost, "/api/members", tc.body, testutil.SuperAdminClaims())
			rec := httptest.NewRecorder()
			h.Create(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestCreateAndGetByEitherID(t *testing.T) {
	h, _ := newTestHandler(t)

	body := map[string]any{
		"member_id":       "gc-0042",
		"full_name":       "María González",
		"email":           "maria@example.com",
		"locality":        "Madrid",
		"blessing_status": models.BlessingCandidate,
	}
	req := testutil.NewAdminRequest(t, http.MethodPost, "/api/members", body, testutil.SuperAdminClaims())
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created models.Member
	testutil.DecodeJSON(t, rec, &created)
	if created.MemberID != "GC-0042" {
		t.Errorf("member id not normalized: %q", created.MemberID)
	}

	for _, ref := range []string{created.ID.Hex(), "GC-0042"} {
		getReq := testutil.NewAdminRequest(t, http.MethodGet, "/api/members/"+ref, nil, testutil.SuperAdminClaims())
		getReq = testutil.WithChiURLParam(getReq, "id", ref)
		getRec := httptest.NewRecorder()
		h.Get(getRec, getReq)

		if getRec.Code != http.StatusOK {
			t.Errorf("lookup by %q: expected 200, got %d", ref, getRec.Code)
		}
	}
}

func TestDuplicateMemberRejected(t *testing.T) {
	h, fix := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fix.CreateMember(ctx, "GC-0100", "Existing", "existing@example.com")

	body := map[string]any{"member_id": "GC-0100", "full_name": "Clone", "email": "clone@example.com"}
	req := testutil.NewAdminRequest(t, http.MethodPost, "/api/members", body, testutil.SuperAdminClaims())
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for duplicate member id, got %d", rec.Code)
	}
}
