package newsletter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	newsletterstore "github.com/gracechapel/churchhub/internal/app/store/newsletters"
	"github.com/gracechapel/churchhub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewHandler(newsletterstore.New(db), nil, zap.NewNop())
}

func TestSubscribeValidatesEmail(t *testing.T) {
	h := newTestHandler(t)

	for _, email := range []string{"", "not-an-email", "@nouser.example"} {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/newsletter", map[string]any{"email": email})
		rec := httptest.NewRecorder()
		h.Subscribe(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("email %q: expected 400, got %d", email, rec.Code)
		}
	}
}

func TestSubscribeReportsCreated(t *testing.T) {
	h := newTestHandler(t)

	subscribe := func(email string) map[string]any {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/newsletter", map[string]any{"email": email})
		rec := httptest.NewRecorder()
		h.Subscribe(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("subscribe %q: expected 200, got %d: %s", email, rec.Code, rec.Body.String())
		}
		var body map[string]any
		testutil.DecodeJSON(t, rec, &body)
		return body
	}

	if body := subscribe("visitor@example.com"); body["created"] != true {
		t.Errorf("first subscribe should report created=true: %v", body)
	}
	if body := subscribe("VISITOR@example.com"); body["created"] != false {
		t.Errorf("repeat subscribe should report created=false: %v", body)
	}
}

func TestSubscribeRejectsUnknownFrequency(t *testing.T) {
	h := newTestHandler(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/newsletter",
		map[string]any{"email": "visitor@example.com", "frequency": "hourly"})
	rec := httptest.NewRecorder()
	h.Subscribe(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown frequency, got %d", rec.Code)
	}
}

func TestUnsubscribeMissing(t *testing.T) {
	h := newTestHandler(t)

	req := testutil.NewJSONRequest(t, http.MethodDelete, "/api/newsletter", map[string]any{"email": "ghost@example.com"})
	rec := httptest.NewRecorder()
	h.Unsubscribe(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown subscription, got %d", rec.Code)
	}
}
