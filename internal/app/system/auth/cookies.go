package auth

import (
	"net/http"
	"time"
)

// Session cookie names. admin_token carries the back-office session;
// member_token carries the member-facing session.
const (
	AdminCookie  = "admin_token"
	MemberCookie = "member_token"
)

// Manager bundles the token issuer with cookie policy. Secure is true in
// production so cookies are only sent over HTTPS.
type Manager struct {
	Tokens *Tokens
	Secure bool
}

// NewManager builds an auth Manager. It fails when the signing secret is
// missing or too short.
func NewManager(secret string, secure bool) (*Manager, error) {
	tokens, err := NewTokens(secret)
	if err != nil {
		return nil, err
	}
	return &Manager{Tokens: tokens, Secure: secure}, nil
}

func (m *Manager) setCookie(w http.ResponseWriter, name, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   m.Secure,
	})
}

func (m *Manager) clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   m.Secure,
	})
}

// SetAdminCookie attaches the admin session cookie (2-hour max-age).
func (m *Manager) SetAdminCookie(w http.ResponseWriter, token string) {
	m.setCookie(w, AdminCookie, token, DefaultTTL)
}

// ClearAdminCookie expires the admin session cookie.
func (m *Manager) ClearAdminCookie(w http.ResponseWriter) {
	m.clearCookie(w, AdminCookie)
}

// SetMemberCookie attaches the member session cookie. long extends the
// max-age to 24 hours to match an extended token.
func (m *Manager) SetMemberCookie(w http.ResponseWriter, token string, long bool) {
	ttl := DefaultTTL
	if long {
		ttl = ExtendedTTL
	}
	m.setCookie(w, MemberCookie, token, ttl)
}

// ClearMemberCookie expires the member session cookie.
func (m *Manager) ClearMemberCookie(w http.ResponseWriter) {
	m.clearCookie(w, MemberCookie)
}
