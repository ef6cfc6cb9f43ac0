package store

import (
	"context"
	"errors"
	"time"

	"github.com/readspacehq/readspace/internal/profiles/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. It exposes sub-repositories to keep concerns
// tidy and testable, and to stop callers from accidentally nesting
// transactions.
type Store interface {
	Accounts() Accounts

	// Profiles is the normalized representation (profiles table).
	Profiles() Profiles

	// EmbeddedProfiles reads and writes the legacy representation: a
	// "profiles" array inside the account's preferences blob. Same contract
	// as Profiles; select between the two with ProfilesFor.
	EmbeddedProfiles() Profiles

	Documents() Documents
	Notifications() Notifications
	Schema() Schema

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, rolling back when fn returns
	// an error and committing otherwise. Preferred over Tx directly.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources (optional for sqlite).
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// ProfilesFor selects the profile repository that is authoritative for the
// given account, based on its schema marker. Callers must never branch on
// blob presence themselves.
func ProfilesFor(s Store, a domain.Account) Profiles {
	if a.ProfileSchema == domain.ProfileSchemaEmbedded {
		return s.EmbeddedProfiles()
	}
	return s.Profiles()
}

type Accounts interface {
	// GetAccountByID returns an account by id.
	GetAccountByID(ctx context.Context, id string) (domain.Account, error)

	// GetAccountByEmail is used during the password grant.
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)

	// CreateAccount inserts a new account (id is provided by app via ULID).
	CreateAccount(ctx context.Context, a domain.Account) error

	// UpdateDisplayName mutates the display_name and bumps updated_at.
	UpdateDisplayName(ctx context.Context, accountID, displayName string) error

	// SetOnboarded flips the onboarding flag.
	SetOnboarded(ctx context.Context, accountID string) error

	// SetRole changes the account's role. Admin seeding and support
	// tooling only.
	SetRole(ctx context.Context, accountID, role string) error

	// SetDefaultProfile updates the server-persisted active-profile pointer.
	// Last writer wins; nil clears the pointer.
	SetDefaultProfile(ctx context.Context, accountID string, profileID *string) error

	// SetProfileSchema flips the storage-representation marker. Only the
	// backfill batch calls this.
	SetProfileSchema(ctx context.Context, accountID string, schema domain.ProfileSchema) error

	// UpdatePreferences replaces the opaque preferences blob.
	UpdatePreferences(ctx context.Context, accountID string, prefs []byte) error

	// ListAccountIDs returns every account id, oldest first. Used by the
	// backfill batch and housekeeping.
	ListAccountIDs(ctx context.Context) ([]string, error)

	// DeleteAccount cascades to profiles and scoped resources (per schema).
	DeleteAccount(ctx context.Context, accountID string) error
}

// Profiles is the versioned profile repository contract. Both the
// normalized-table and the embedded-blob implementations satisfy it; every
// method is scoped by account id so the embedded implementation can locate
// the owning blob and the normalized one can enforce ownership in SQL.
type Profiles interface {
	// GetProfile returns the account's profile by id, active or not.
	GetProfile(ctx context.Context, accountID, profileID string) (domain.Profile, error)

	// ListActiveProfiles returns active profiles, most recently accessed
	// first (profiles never accessed sort last, newest first among them).
	ListActiveProfiles(ctx context.Context, accountID string) ([]domain.Profile, error)

	// ListProfiles returns all of the account's profiles, soft-deleted
	// included, in the same order. The backfill batch uses it to carry
	// soft-delete history across representations.
	ListProfiles(ctx context.Context, accountID string) ([]domain.Profile, error)

	// CountActiveProfiles returns the number of active profiles.
	CountActiveProfiles(ctx context.Context, accountID string) (int, error)

	// CreateProfile inserts a new profile (id is ULID).
	CreateProfile(ctx context.Context, p domain.Profile) error

	// UpdateProfile persists the mutable fields (name, color, preferences)
	// and bumps updated_at.
	UpdateProfile(ctx context.Context, p domain.Profile) error

	// SetProfileActive flips the soft-delete flag.
	SetProfileActive(ctx context.Context, accountID, profileID string, active bool) error

	// TouchLastAccessed stamps last_accessed_at.
	TouchLastAccessed(ctx context.Context, accountID, profileID string, at time.Time) error
}

type Documents interface {
	// GetDocumentByID returns a document regardless of owner; callers gate
	// access through the ownership check before acting on it.
	GetDocumentByID(ctx context.Context, id string) (domain.Document, error)

	// ListDocumentsByProfile returns documents scoped to a profile, newest
	// first.
	ListDocumentsByProfile(ctx context.Context, profileID string) ([]domain.Document, error)

	// CreateDocument inserts a new document.
	CreateDocument(ctx context.Context, d domain.Document) error

	// DeleteDocument removes a document.
	DeleteDocument(ctx context.Context, id string) error

	// CountMissingProfileRef counts rows still carrying only the legacy
	// account reference.
	CountMissingProfileRef(ctx context.Context) (int64, error)

	// BackfillProfileRef sets profile_id on the account's rows that have
	// none, returning the number of rows updated. Backfill-batch only.
	BackfillProfileRef(ctx context.Context, accountID, profileID string) (int64, error)
}

type Notifications interface {
	// ListNotificationsByProfile returns a profile's notifications, newest
	// first.
	ListNotificationsByProfile(ctx context.Context, profileID string) ([]domain.Notification, error)

	// CreateNotification inserts a new notification.
	CreateNotification(ctx context.Context, n domain.Notification) error

	// DeleteReadNotificationsBefore removes read notifications older than
	// the cutoff. Housekeeping.
	DeleteReadNotificationsBefore(ctx context.Context, cutoff time.Time) error

	// CountMissingProfileRef counts rows still carrying only the legacy
	// account reference.
	CountMissingProfileRef(ctx context.Context) (int64, error)

	// BackfillProfileRef sets profile_id on the account's rows that have
	// none, returning the number of rows updated. Backfill-batch only.
	BackfillProfileRef(ctx context.Context, accountID, profileID string) (int64, error)
}

// Schema exposes the constraint-tightening step of the backfill. Enforcement
// is recorded in a marker table so re-running the batch is a no-op.
type Schema interface {
	// ProfileRefEnforced reports whether the NOT NULL enforcement for the
	// given scoped-resource table is already installed.
	ProfileRefEnforced(ctx context.Context, table string) (bool, error)

	// EnforceProfileRef installs the NOT NULL enforcement for the table and
	// records the marker. Callers must verify no NULL refs remain first.
	EnforceProfileRef(ctx context.Context, table string) error
}
