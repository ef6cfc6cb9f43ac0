package profilesdk

import (
	"encoding/json"
	"time"
)

// Signup outcome values, mirrored in the signup response.
const (
	OutcomeAccountCreated               = "account_created"
	OutcomeAccountCreatedProfilePending = "account_created_profile_pending"
)

// SignupRequest creates a new account.
type SignupRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
	Role        string `json:"role,omitempty"` // user | student; admin is seeded, never signed up
}

// SignupResponse reports the created account and how far bootstrap got.
// Outcome "account_created_profile_pending" means the account exists but
// its first profile is still missing; it is repaired server-side.
type SignupResponse struct {
	Account Account `json:"account"`
	Outcome string  `json:"outcome"`
}

// LoginRequest is the password grant payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is the login response.
type TokenResponse struct {
	AccessToken string  `json:"access_token"`
	TokenType   string  `json:"token_type"`
	ExpiresIn   int64   `json:"expires_in"`
	Account     Account `json:"account"`
}

// Account is the wire shape of an account. The password hash and the
// internal storage-representation marker never leave the server.
type Account struct {
	ID               string          `json:"id"`
	Email            string          `json:"email"`
	DisplayName      string          `json:"display_name"`
	Role             string          `json:"role"`
	Credits          int64           `json:"credits"`
	Onboarded        bool            `json:"onboarded"`
	Preferences      json.RawMessage `json:"preferences,omitempty"`
	DefaultProfileID *string         `json:"default_profile_id,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// Profile is the wire shape of a profile.
//
// Transient is only ever set client-side: it marks a synthesized
// placeholder produced by the synchronizer while the backend is
// unreachable. Transient profiles are never persisted and never sent to
// the server.
type Profile struct {
	ID             string          `json:"id"`
	AccountID      string          `json:"account_id"`
	Name           string          `json:"name"`
	Color          string          `json:"color"`
	Preferences    json.RawMessage `json:"preferences,omitempty"`
	LastAccessedAt *time.Time      `json:"last_accessed_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	Transient bool `json:"-"`
}

// MeResponse is the account summary with its resolved active profile.
type MeResponse struct {
	Account       Account  `json:"account"`
	ActiveProfile *Profile `json:"active_profile,omitempty"`
}

// ProfileListResponse wraps the profile collection.
type ProfileListResponse struct {
	Profiles []Profile `json:"profiles"`
}

// CreateProfileRequest creates a new profile. Color is optional; the
// server assigns one from its palette when empty.
type CreateProfileRequest struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// UpdateProfileRequest patches a profile. Absent fields are unchanged.
type UpdateProfileRequest struct {
	Name        *string         `json:"name,omitempty"`
	Color       *string         `json:"color,omitempty"`
	Preferences json.RawMessage `json:"preferences,omitempty"`
}

// Document is the wire shape of a document stub.
type Document struct {
	ID        string    `json:"id"`
	ProfileID *string   `json:"profile_id,omitempty"`
	Title     string    `json:"title"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DocumentListResponse wraps the document collection.
type DocumentListResponse struct {
	Documents []Document `json:"documents"`
}

// CreateDocumentRequest creates a document scoped to one of the caller's
// profiles.
type CreateDocumentRequest struct {
	ProfileID string `json:"profile_id"`
	Title     string `json:"title"`
	Kind      string `json:"kind,omitempty"`
}

// BackfillResponse is the admin backfill report.
type BackfillResponse struct {
	AccountsProcessed int   `json:"accounts_processed"`
	AccountsUpgraded  int   `json:"accounts_upgraded"`
	ProfilesCreated   int   `json:"profiles_created"`
	DocumentsUpdated  int64 `json:"documents_updated"`
	NotifsUpdated     int64 `json:"notifications_updated"`

	DocumentsTightened bool `json:"documents_tightened"`
	NotifsTightened    bool `json:"notifications_tightened"`
}

// HealthResponse is returned by the health endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Version string        `json:"version,omitempty"`
	Uptime  string        `json:"uptime,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports per-dependency readiness.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}
