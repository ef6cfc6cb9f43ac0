package domain

import (
	"encoding/json"
	"time"
)

// Account roles. Accounts are the credentialed login entity; profiles under
// an account never carry their own role.
const (
	RoleUser    = "user"
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// ProfileSchema marks which storage representation is authoritative for an
// account's profiles. Older accounts carry their profiles as a JSON array
// embedded in the preferences blob; the backfill batch upgrades them to
// normalized rows and flips this marker.
type ProfileSchema string

const (
	ProfileSchemaEmbedded   ProfileSchema = "embedded"
	ProfileSchemaNormalized ProfileSchema = "normalized"
)

type Account struct {
	ID           string
	Email        string
	DisplayName  string
	Role         string // user | admin | student
	PasswordHash string // argon2 encoded
	Credits      int64  // stored only; accounting happens elsewhere
	Onboarded    bool

	// Preferences is an opaque blob. For embedded-schema accounts it also
	// carries the legacy "profiles" array; writers must preserve sibling keys.
	Preferences json.RawMessage

	// DefaultProfileID is the server-persisted active-profile pointer.
	// Last writer wins across devices (nullable).
	DefaultProfileID *string

	ProfileSchema ProfileSchema
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
