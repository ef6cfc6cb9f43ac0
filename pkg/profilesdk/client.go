package profilesdk

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

// Client is an unauthenticated client for the profiles service. Use Login
// to obtain an authenticated Session.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a profiles service client with a sane default timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Signup creates a new account. The returned outcome reports whether the
// bootstrap profile was created alongside it.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*SignupResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/signup", bytes.NewReader(payload), jsonHeaders)
	if err != nil {
		return nil, err
	}

	var out SignupResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login performs the password grant and returns an authenticated Session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	payload, err := json.Marshal(LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/login", bytes.NewReader(payload), jsonHeaders)
	if err != nil {
		return nil, err
	}

	var out TokenResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return newSession(c, out), nil
}

// NewSessionFromToken creates a Session from a previously issued access
// token, e.g. one restored from the OS keychain.
func (c *Client) NewSessionFromToken(accountID, accessToken string, expiresIn int64) *Session {
	return &Session{
		client:      c,
		accountID:   accountID,
		accessToken: accessToken,
		expiresAt:   time.Now().Add(time.Duration(expiresIn) * time.Second),
	}
}

// Health calls the liveness endpoint.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/livez", nil, nil)
	if err != nil {
		return nil, err
	}

	var out HealthResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
