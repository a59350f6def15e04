// Package session owns the session token: its shape check, the immutable
// Session value handed to the auth and query clients, the persistent Token
// Store and the ephemeral per-session query cache.
package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/progressboard/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Valid reports whether token splits on "." into exactly three nonempty
// parts. Nothing is verified cryptographically.
func Valid(token string) bool {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return false
	}
	for _, p := range parts {
		if p == "" {
			return false
		}
	}
	return true
}

// hasuraClaims is the namespace the query endpoint reads its claims from.
const hasuraClaims = "https://hasura.io/jwt/claims"

// Session is an authenticated session. It is immutable: signing in again
// or out replaces the value instead of mutating it.
type Session struct {
	token     string
	userID    string
	expiresAt time.Time
}

// New validates the token shape and peeks at its claims. Unreadable claims
// are not an error; the corresponding accessors return zero values.
func New(token string) (*Session, error) {
	if !Valid(token) {
		return nil, fmt.Errorf("%w: token has an invalid shape", common.ErrNotAuthenticated)
	}

	s := &Session{token: token}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			s.expiresAt = exp.Time
		}
		s.userID = userIDFromClaims(claims)
	}
	return s, nil
}

func userIDFromClaims(claims jwt.MapClaims) string {
	if ns, ok := claims[hasuraClaims].(map[string]any); ok {
		if id, ok := ns["x-hasura-user-id"].(string); ok && id != "" {
			return id
		}
	}
	if sub, err := claims.GetSubject(); err == nil {
		return sub
	}
	return ""
}

// Token returns the raw token.
func (s *Session) Token() string { return s.token }

// UserID returns the user id claimed by the token, if any.
func (s *Session) UserID() string { return s.userID }

// ExpiresAt returns the claimed expiry; zero when the token has none.
func (s *Session) ExpiresAt() time.Time { return s.expiresAt }

// Expired reports whether the claimed expiry is before now. Tokens without
// an expiry never expire.
func (s *Session) Expired(now time.Time) bool {
	return !s.expiresAt.IsZero() && now.After(s.expiresAt)
}

// Authorization returns the bearer header value for the query endpoint.
func (s *Session) Authorization() string {
	return "Bearer " + s.token
}
