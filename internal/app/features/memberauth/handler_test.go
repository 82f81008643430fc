package memberauth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	memberstore "github.com/gracechapel/churchhub/internal/app/store/members"
	userstore "github.com/gracechapel/churchhub/internal/app/store/users"
	"github.com/gracechapel/churchhub/internal/app/system/auth"
	"github.com/gracechapel/churchhub/internal/testutil"
	"go.uber.org/zap"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestHandler(t *testing.T) (*Handler, *testutil.Fixtures) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	mgr, err := auth.NewManager(testSecret, false)
	if err != nil {
		t.Fatalf("auth manager: %v", err)
	}
	users := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := users.EnsureIndexes(ctx); err != nil {
		t.Fatalf("ensure user indexes: %v", err)
	}

	h := &Handler{
		Users:   users,
		Members: memberstore.New(db),
		Auth:    mgr,
		Log:     zap.NewNop(),
	}
	return h, testutil.NewFixtures(t, db)
}

func TestRegisterRequiresMemberRecord(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/member-auth/register",
		map[string]any{"member_id": "GC-9999", "email": "nobody@example.com", "password": "password-123"})
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without a member record, got %d", rec.Code)
	}
}

func TestRegisterChecksDirectoryEmail(t *testing.T) {
	h, fix := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fix.CreateMember(ctx, "GC-0001", "Jane Doe", "jane@example.com")

	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/member-auth/register",
		map[string]any{"member_id": "GC-0001", "email": "impostor@example.com", "password": "password-123"})
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for mismatched email, got %d", rec.Code)
	}
}

func TestRegisterLoginAndRemember(t *testing.T) {
	h, fix := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fix.CreateMember(ctx, "GC-0002", "John Doe", "john@example.com")

	regReq := testutil.NewJSONRequest(t, http.MethodPost, "/api/member-auth/register",
		map[string]any{"member_id": "gc-0002", "email": "john@example.com", "password": "password-123"})
	regRec := httptest.NewRecorder()
	h.Register(regRec, regReq)

	if regRec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", regRec.Code, regRec.Body.String())
	}

	// Registering the same member twice fails on the unique account index.
	dupRec := httptest.NewRecorder()
	h.Register(dupRec, testutil.NewJSONRequest(t, http.MethodPost, "/api/member-auth/register",
		map[string]any{"member_id": "GC-0002", "email": "john@example.com", "password": "password-456"}))
	if dupRec.Code != http.StatusBadRequest {
		t.Errorf("duplicate register: expected 400, got %d", dupRec.Code)
	}

	login := func(remember bool) *http.Cookie {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/member-auth/login",
			map[string]any{"email": "john@example.com", "password": "password-123", "remember": remember})
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		for _, c := range rec.Result().Cookies() {
			if c.Name == auth.MemberCookie {
				return c
			}
		}
		t.Fatal("no member_token cookie set")
		return nil
	}

	short := login(false)
	long := login(true)

	if short.MaxAge != int(auth.DefaultTTL.Seconds()) {
		t.Errorf("short session max-age: got %d", short.MaxAge)
	}
	if long.MaxAge != int(auth.ExtendedTTL.Seconds()) {
		t.Errorf("remembered session max-age: got %d", long.MaxAge)
	}
}

func TestMeRequiresSession(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/member-auth/me", nil)
	rec := httptest.NewRecorder()
	h.Me(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without session, got %d", rec.Code)
	}
}
