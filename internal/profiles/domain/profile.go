package domain

import (
	"encoding/json"
	"time"
	"unicode/utf8"
)

const (
	// MaxActiveProfiles caps the number of active profiles per account.
	MaxActiveProfiles = 10

	// MaxProfileNameLength is the upper bound on a trimmed display name.
	MaxProfileNameLength = 50
)

// DefaultProfileColors is the palette assigned round-robin when a profile is
// created without an explicit color.
var DefaultProfileColors = []string{
	"#4F86C6", "#E2725B", "#6BA368", "#B57EDC", "#E6B655", "#5BB8B4",
}

// ValidProfileName reports whether a trimmed name satisfies the length
// rule. The limit counts characters, not bytes, so multi-byte names get
// the full budget.
func ValidProfileName(name string) bool {
	return name != "" && utf8.RuneCountInString(name) <= MaxProfileNameLength
}

// Profile is a named persona scoped to exactly one account. Profiles are
// soft-deleted (Active=false) so already-scoped resources keep a valid
// reference.
type Profile struct {
	ID        string
	AccountID string // immutable after creation
	Name      string // 1-50 chars, unique among the account's active profiles
	Color     string

	Preferences json.RawMessage

	Active         bool
	LastAccessedAt *time.Time // nil until the profile is first switched to
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ProfilePatch carries the mutable fields of a profile. Nil means "leave
// unchanged".
type ProfilePatch struct {
	Name        *string
	Color       *string
	Preferences json.RawMessage
}
