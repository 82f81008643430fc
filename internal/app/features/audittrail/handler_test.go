package audittrail

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gracechapel/churchhub/internal/app/store/audit"
	"github.com/gracechapel/churchhub/internal/testutil"
	"go.uber.org/zap"
)

type listResponse struct {
	Total int64         `json:"total"`
	Items []audit.Entry `json:"items"`
}

func newTestHandler(t *testing.T) (*Handler, *audit.Store) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	return NewHandler(store, zap.NewNop()), store
}

func seedEntries(t *testing.T, store *audit.Store) {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	entries := []audit.Entry{
		{Action: audit.ActionCreate, ResourceType: audit.ResourceNews, ResourceID: "n1"},
		{Action: audit.ActionDelete, ResourceType: audit.ResourceNews, ResourceID: "n1"},
		{Action: audit.ActionCreate, ResourceType: audit.ResourceEvent, ResourceID: "e1"},
	}
	for _, e := range entries {
		if err := store.Append(ctx, e); err != nil {
			t.Fatalf("append audit entry: %v", err)
		}
	}
}

func TestListFiltersByActionAndResource(t *testing.T) {
	h, store := newTestHandler(t)
	seedEntries(t, store)

	req := testutil.NewAdminRequest(t, http.MethodGet, "/api/admin/audit?action=create&resource_type=news", nil, testutil.SuperAdminClaims())
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp listResponse
	testutil.DecodeJSON(t, rec, &resp)
	if resp.Total != 1 || len(resp.Items) != 1 {
		t.Fatalf("expected a single matching entry, got total=%d items=%d", resp.Total, len(resp.Items))
	}
	if resp.Items[0].ResourceID != "n1" || resp.Items[0].Action != audit.ActionCreate {
		t.Errorf("unexpected entry: %+v", resp.Items[0])
	}
}

func TestListRejectsBadTimestamps(t *testing.T) {
	h, _ := newTestHandler(t)

	for _, target := range []string{
		"/api/admin/audit?since=yesterday",
		"/api/admin/audit?until=2026-13-40",
		"/api/admin/audit?admin_id=nothex",
	} {
		req := testutil.NewAdminRequest(t, http.MethodGet, target, nil, testutil.SuperAdminClaims())
		rec := httptest.NewRecorder()
		h.List(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, rec.Code)
		}
	}
}

func TestListSinceFilter(t *testing.T) {
	h, store := newTestHandler(t)
	seedEntries(t, store)

	cutoff := time.Now().Add(time.Hour).UTC().Format(time.RFC3339)
	req := testutil.NewAdminRequest(t, http.MethodGet, "/api/admin/audit?since="+cutoff, nil, testutil.SuperAdminClaims())
	rec := httptest.NewRecorder()
	h.List(rec, req)

	var resp listResponse
	testutil.DecodeJSON(t, rec, &resp)
	if resp.Total != 0 || len(resp.Items) != 0 {
		t.Errorf("future cutoff should match nothing, got total=%d items=%d", resp.Total, len(resp.Items))
	}
}
