package profilesdk

import (
	"context"
	"net/http"
	"time"
)

// Session is an authenticated handle on the profiles service. Sessions are
// safe for concurrent use; the token is immutable once issued.
type Session struct {
	client      *Client
	accountID   string
	accessToken string
	expiresAt   time.Time
}

func newSession(c *Client, tok TokenResponse) *Session {
	return &Session{
		client:      c,
		accountID:   tok.Account.ID,
		accessToken: tok.AccessToken,
		// Small buffer so callers re-login before the server rejects.
		expiresAt: time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - 30*time.Second),
	}
}

// AccountID returns the authenticated account's id.
func (s *Session) AccountID() string { return s.accountID }

// AccessToken returns the raw bearer token, e.g. for keychain storage.
func (s *Session) AccessToken() string { return s.accessToken }

// Expired reports whether the token has passed its (buffered) expiry.
func (s *Session) Expired() bool { return time.Now().After(s.expiresAt) }

// Me returns the account summary with its resolved active profile.
func (s *Session) Me(ctx context.Context) (*MeResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/me", nil, nil)
	if err != nil {
		return nil, err
	}

	var out MeResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
