package authadmin

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	adminstore "github.com/gracechapel/churchhub/internal/app/store/adminusers"
	tokenstore "github.com/gracechapel/churchhub/internal/app/store/tokens"
	"github.com/gracechapel/churchhub/internal/app/system/auth"
	"github.com/gracechapel/churchhub/internal/domain/models"
	"github.com/gracechapel/churchhub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestHandler(t *testing.T) (*Handler, *testutil.Fixtures, *mongo.Database) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	mgr, err := auth.NewManager(testSecret, false)
	if err != nil {
		t.Fatalf("auth manager: %v", err)
	}
	h := &Handler{
		Admins:  adminstore.New(db),
		Tokens:  tokenstore.New(db),
		Auth:    mgr,
		BaseURL: "http://localhost:3000",
		Log:     zap.NewNop(),
	}
	return h, testutil.NewFixtures(t, db), db
}

func findCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestLoginSetsCookie(t *testing.T) {
	h, fix, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fix.CreateAdmin(ctx, "pastor@church.org", models.RoleSuperAdmin, "correct-horse")

	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/auth/login",
		map[string]any{"email": "pastor@church.org", "password": "correct-horse"})
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	cookie := findCookie(t, rec, auth.AdminCookie)
	if cookie == nil {
		t.Fatal("no admin_token cookie set")
	}
	if !cookie.HttpOnly {
		t.Error("cookie must be HttpOnly")
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Error("cookie must be SameSite=Lax")
	}

	claims, err := h.Auth.Tokens.Verify(cookie.Value)
	if err != nil {
		t.Fatalf("cookie does not carry a valid token: %v", err)
	}
	if claims.Role != models.RoleSuperAdmin {
		t.Errorf("unexpected role in claims: %q", claims.Role)
	}

	// The body must not leak the bcrypt hash.
	if strings.Contains(rec.Body.String(), "$2") {
		t.Error("response leaks password hash")
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	h, fix, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fix.CreateAdmin(ctx, "pastor@church.org", models.RoleSuperAdmin, "correct-horse")

	cases := []struct {
		name  string
		email string
		pass  string
	}{
		{"wrong password", "pastor@church.org", "battery-staple"},
		{"unknown email", "ghost@church.org", "correct-horse"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.NewJSONRequest(t, http.MethodPost, "/api/auth/login",
				map[string]any{"email": tc.email, "password": tc.pass})
			rec := httptest.NewRecorder()
			h.Login(rec, req)

			// Both failures must be indistinguishable.
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", rec.Code)
			}
			if findCookie(t, rec, auth.AdminCookie) != nil {
				t.Error("failed login must not set a cookie")
			}
		})
	}
}

func TestInitSuperAdminOnlyOnce(t *testing.T) {
	h, _, _ := newTestHandler(t)

	body := map[string]any{"email": "first@church.org", "name": "First", "password": "long-enough-pass"}
	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/auth/init-super-admin", body)
	rec := httptest.NewRecorder()
	h.InitSuperAdmin(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	// A second attempt is refused because an admin now exists.
	body["email"] = "second@church.org"
	req = testutil.NewJSONRequest(t, http.MethodPost, "/api/auth/init-super-admin", body)
	rec = httptest.NewRecorder()
	h.InitSuperAdmin(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 once an admin exists, got %d", rec.Code)
	}
}

func TestInviteAndAcceptFlow(t *testing.T) {
	h, _, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	inviteReq := testutil.NewAdminRequest(t, http.MethodPost, "/api/auth/invite",
		map[string]any{"email": "editor@church.org", "name": "New Editor", "role": models.RoleNewsEditor},
		testutil.SuperAdminClaims())
	inviteRec := httptest.NewRecorder()
	h.Invite(inviteRec, inviteReq)

	if inviteRec.Code != http.StatusCreated {
		t.Fatalf("invite: expected 201, got %d: %s", inviteRec.Code, inviteRec.Body.String())
	}

	var invited models.AdminUser
	testutil.DecodeJSON(t, inviteRec, &invited)

	// Dig the issued token straight out of the store; email delivery is
	// out of band.
	issued, err := h.Tokens.Issue(ctx, invited.ID, models.PurposeInvite, time.Hour)
	if err != nil {
		t.Fatalf("issue second token: %v", err)
	}

	acceptReq := testutil.NewJSONRequest(t, http.MethodPost, "/api/auth/accept-invite",
		map[string]any{"token": issued.Token, "password": "my-new-password"})
	acceptRec := httptest.NewRecorder()
	h.AcceptInvite(acceptRec, acceptReq)

	if acceptRec.Code != http.StatusOK {
		t.Fatalf("accept: expected 200, got %d: %s", acceptRec.Code, acceptRec.Body.String())
	}

	// The new password works for login.
	loginReq := testutil.NewJSONRequest(t, http.MethodPost, "/api/auth/login",
		map[string]any{"email": "editor@church.org", "password": "my-new-password"})
	loginRec := httptest.NewRecorder()
	h.Login(loginRec, loginReq)

	if loginRec.Code != http.StatusOK {
		t.Errorf("login with invited password: expected 200, got %d", loginRec.Code)
	}

	// The token is spent.
	reuseReq := testutil.NewJSONRequest(t, http.MethodPost, "/api/auth/accept-invite",
		map[string]any{"token": issued.Token, "password": "another-password"})
	reuseRec := httptest.NewRecorder()
	h.AcceptInvite(reuseRec, reuseReq)

	if reuseRec.Code != http.StatusBadRequest {
		t.Errorf("token reuse: expected 400, got %d", reuseRec.Code)
	}
}

func TestResetRequestDoesNotLeakExistence(t *testing.T) {
	h, fix, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fix.CreateAdmin(ctx, "real@church.org", models.RoleContentManager, "password-123")

	for _, email := range []string{"real@church.org", "fake@church.org"} {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/auth/reset-request",
			map[string]any{"email": email})
		rec := httptest.NewRecorder()
		h.RequestReset(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("reset request for %q: expected 200, got %d", email, rec.Code)
		}
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	h, _, _ := newTestHandler(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	cookie := findCookie(t, rec, auth.AdminCookie)
	if cookie == nil {
		t.Fatal("logout did not touch the admin cookie")
	}
	if cookie.MaxAge >= 0 {
		t.Errorf("logout cookie should expire immediately, got MaxAge=%d", cookie.MaxAge)
	}
}
