package propsdk

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is an authenticated client: the same operations surface as
// Client plus the bearer token attached to every request.
//
// The expiry is read from the token's exp claim without verifying the
// signature. That is deliberate: the client only uses it to prompt a
// re-login before requests start failing, the backend is the authority.
type Session struct {
	client    *Client
	token     string
	expiresAt time.Time
	user      User
}

// expiryBuffer makes the client consider a token stale slightly before
// the backend does.
const expiryBuffer = 30 * time.Second

// newSession builds a session from a login response token.
func newSession(c *Client, token string, user User) (*Session, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("failed to parse session token: %w", err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, fmt.Errorf("session token has no usable expiry: %w", err)
	}
	return &Session{
		client:    c,
		token:     token,
		expiresAt: exp.Time.Add(-expiryBuffer),
		user:      user,
	}, nil
}

// Token returns the raw bearer token, e.g. for persisting across runs.
func (s *Session) Token() string { return s.token }

// User returns the profile captured at login.
func (s *Session) User() User { return s.user }

// Expired reports whether the token is past (or within the buffer of) its
// expiry and a re-login should be prompted.
func (s *Session) Expired() bool {
	return !time.Now().Before(s.expiresAt)
}
