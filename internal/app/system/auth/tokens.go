package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token lifetimes. DefaultTTL matches the admin cookie max-age; ExtendedTTL
// is used for "remember me" member sessions.
const (
	DefaultTTL  = 2 * time.Hour
	ExtendedTTL = 24 * time.Hour
)

// MinSecretLen is the minimum accepted signing-secret length. Startup fails
// below this; there is no fallback secret.
const MinSecretLen = 32

var (
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims are the payload carried by a signed session token.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies HMAC-SHA-256 signed session tokens.
type Tokens struct {
	secret []byte
}

// NewTokens builds a token issuer. The secret must be explicit and at least
// MinSecretLen bytes.
func NewTokens(secret string) (*Tokens, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("token secret is required")
	}
	if len(secret) < MinSecretLen {
		return nil, fmt.Errorf("token secret must be at least %d bytes", MinSecretLen)
	}
	return &Tokens{secret: []byte(secret)}, nil
}

// Create issues a signed token for the given subject. The expiry is
// now+DefaultTTL, or now+ExtendedTTL when long is set.
func (t *Tokens) Create(subject, email, role string, long bool) (string, error) {
	if subject == "" || role == "" {
		return "", ErrInvalidToken
	}

	ttl := DefaultTTL
	if long {
		ttl = ExtendedTTL
	}

	now := time.Now()
	claims := &Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Verify checks the signature and standard claims (including expiry) and
// returns the payload. Any failure maps to ErrInvalidToken.
func (t *Tokens) Verify(raw string) (*Claims, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrMissingToken
	}

	parsed, err := jwt.ParseWithClaims(raw, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
