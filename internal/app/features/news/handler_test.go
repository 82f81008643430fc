package news

import (
	"net/http"
	"net/http/httptest"
	"testing"

	newsstore "github.com/gracechapel/churchhub/internal/app/store/news"
	"github.com/gracechapel/churchhub/internal/app/system/auth"
	"github.com/gracechapel/churchhub/internal/domain/models"
	"github.com/gracechapel/churchhub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewHandler(newsstore.New(db), nil, zap.NewNop()), testutil.NewFixtures(t, db)
}

func TestGetHidesDraftsFromPublic(t *testing.T) {
	h, fix := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	draft := fix.CreateNews(ctx, "Draft", "hidden-draft", models.NewsDraft)

	req := httptest.NewRequest(http.MethodGet, "/api/news/hidden-draft", nil)
	req = testutil.WithChiURLParam(req, "ref", "hidden-draft")
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("anonymous reader should get 404 for a draft, got %d", rec.Code)
	}

	// The same lookup with an admin session sees the draft.
	adminReq := httptest.NewRequest(http.MethodGet, "/api/news/"+draft.ID.Hex(), nil)
	adminReq = testutil.WithChiURLParam(adminReq, "ref", draft.ID.Hex())
	adminReq = auth.WithTestAdmin(adminReq, testutil.EditorClaims())
	adminRec := httptest.NewRecorder()
	h.Get(adminRec, adminReq)

	if adminRec.Code != http.StatusOK {
		t.Errorf("admin should see the draft, got %d", adminRec.Code)
	}
}

func TestGetBySlugAndID(t *testing.T) {
	h, fix := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	article := fix.CreateNews(ctx, "Easter", "easter", models.NewsPublished)

	for _, ref := range []string{article.ID.Hex(), "easter"} {
		req := httptest.NewRequest(http.MethodGet, "/api/news/"+ref, nil)
		req = testutil.WithChiURLParam(req, "ref", ref)
		rec := httptest.NewRecorder()
		h.Get(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("lookup by %q: expected 200, got %d", ref, rec.Code)
		}
	}
}

func TestCreateSlugifiesTitle(t *testing.T) {
	h, _ := newTestHandler(t)

	body := map[string]any{
		"title":  "Annual Harvest Festival!",
		"body":   "<p>Join us</p><script>alert(1)</script>",
		"status": models.NewsPublished,
		"tags":   []string{"Festival", "festival", "community"},
	}
	req := testutil.NewAdminRequest(t, http.MethodPost, "/api/news", body, testutil.EditorClaims())
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created models.News
	testutil.DecodeJSON(t, rec, &created)
	if created.Slug != "annual-harvest-festival" {
		t.Errorf("unexpected slug %q", created.Slug)
	}
	// Script tags never reach storage.
	if want := "<p>Join us</p>"; created.Body != want {
		t.Errorf("body not sanitized: %q", created.Body)
	}
	if len(created.Tags) != 2 {
		t.Errorf("tags not deduplicated: %v", created.Tags)
	}
}

func TestCreateRejectsLegacyStatus(t *testing.T) {
	h, _ := newTestHandler(t)

	body := map[string]any{"title": "X", "body": "y", "status": "public"}
	req := testutil.NewAdminRequest(t, http.MethodPost, "/api/news", body, testutil.EditorClaims())
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("legacy status must be rejected on write, got %d", rec.Code)
	}
}

func TestCountersRequirePublished(t *testing.T) {
	h, fix := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fix.CreateNews(ctx, "Quiet", "quiet-draft", models.NewsDraft)

	req := httptest.NewRequest(http.MethodPost, "/api/news/quiet-draft/views", nil)
	req = testutil.WithChiURLParam(req, "ref", "quiet-draft")
	rec := httptest.NewRecorder()
	h.AddView(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("view on draft should 400, got %d", rec.Code)
	}

	published := fix.CreateNews(ctx, "Loud", "loud", models.NewsPublished)
	req = httptest.NewRequest(http.MethodPost, "/api/news/"+published.ID.Hex()+"/views", nil)
	req = testutil.WithChiURLParam(req, "ref", published.ID.Hex())
	rec = httptest.NewRecorder()
	h.AddView(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("view on published should 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAddCommentValidatesBody(t *testing.T) {
	h, fix := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fix.CreateNews(ctx, "Open", "open", models.NewsPublished)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/news/open/comments", map[string]any{"author": "Jane"})
	req = testutil.WithChiURLParam(req, "ref", "open")
	rec := httptest.NewRecorder()
	h.AddComment(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("comment without text should 400, got %d", rec.Code)
	}

	req = testutil.NewJSONRequest(t, http.MethodPost, "/api/news/open/comments", map[string]any{"author": "Jane", "text": "Amen"})
	req = testutil.WithChiURLParam(req, "ref", "open")
	rec = httptest.NewRecorder()
	h.AddComment(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}
