package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gracechapel/churchhub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that call handlers directly, without a router.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// SuperAdminClaims returns claims for a super admin with a fresh id.
func SuperAdminClaims() *auth.Claims {
	c := &auth.Claims{Email: "super@church.org", Role: "super_admin"}
	c.Subject = primitive.NewObjectID().Hex()
	return c
}

// EditorClaims returns claims for a news editor.
func EditorClaims() *auth.Claims {
	c := &auth.Claims{Email: "editor@church.org", Role: "news_editor"}
	c.Subject = primitive.NewObjectID().Hex()
	return c
}

// NewJSONRequest builds a request with body marshaled as JSON.
func NewJSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// NewAdminRequest builds a JSON request with admin claims in context.
func NewAdminRequest(t *testing.T, method, target string, body any, claims *auth.Claims) *http.Request {
	t.Helper()
	return auth.WithTestAdmin(NewJSONRequest(t, method, target, body), claims)
}

// DecodeJSON unmarshals a recorded response body into v.
func DecodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to parse response %q: %v", rec.Body.String(), err)
	}
}
