package auth

import (
	"context"
	"net/http"

	"github.com/gracechapel/churchhub/internal/app/system/respond"
)

type ctxKey string

const (
	adminClaimsKey  ctxKey = "adminClaims"
	memberClaimsKey ctxKey = "memberClaims"
)

// CurrentAdmin returns the verified admin claims loaded by WithAdmin.
func CurrentAdmin(r *http.Request) (*Claims, bool) {
	c, ok := r.Context().Value(adminClaimsKey).(*Claims)
	return c, ok
}

// CurrentMember returns the verified member claims loaded by WithMember.
func CurrentMember(r *http.Request) (*Claims, bool) {
	c, ok := r.Context().Value(memberClaimsKey).(*Claims)
	return c, ok
}

// WithAdmin verifies the admin_token cookie and, when valid, injects the
// claims into the request context. Requests without a valid cookie pass
// through unauthenticated; gating happens in RequireAdmin/RequireRole.
func (m *Manager) WithAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(AdminCookie); err == nil {
			if claims, err := m.Tokens.Verify(cookie.Value); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), adminClaimsKey, claims))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// WithMember is the member_token analog of WithAdmin.
func (m *Manager) WithMember(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(MemberCookie); err == nil {
			if claims, err := m.Tokens.Verify(cookie.Value); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), memberClaimsKey, claims))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests without verified admin claims with a 401.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentAdmin(r); !ok {
			respond.Unauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole rejects requests whose admin role is not in the allowed set.
// An unauthenticated request gets 401; a wrong role gets 403.
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := CurrentAdmin(r)
			if !ok {
				respond.Unauthorized(w)
				return
			}
			if _, has := set[claims.Role]; !has {
				respond.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireMember rejects requests without verified member claims with a 401.
func RequireMember(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentMember(r); !ok {
			respond.Unauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithTestAdmin injects admin claims directly into the request context.
// Test-only: lets handler tests bypass cookie verification.
func WithTestAdmin(r *http.Request, claims *Claims) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), adminClaimsKey, claims))
}

// WithTestMember injects member claims directly into the request context.
func WithTestMember(r *http.Request, claims *Claims) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), memberClaimsKey, claims))
}
