package domain

import "time"

// ResourceRef is the owner reference carried by a scoped resource. During
// the compatibility window a resource points either at a profile (current
// shape) or directly at an account (pre-profile rows). The ownership check
// dispatches on the concrete type rather than branching on nullable columns
// at every call site.
type ResourceRef interface {
	isResourceRef()
}

// ProfileRef is the current reference shape: the resource belongs to a
// single profile.
type ProfileRef struct {
	ProfileID string
}

// LegacyAccountRef is the pre-profile reference shape: the resource belongs
// to the account as a whole. It disappears once the backfill completes.
type LegacyAccountRef struct {
	AccountID string
}

func (ProfileRef) isResourceRef()       {}
func (LegacyAccountRef) isResourceRef() {}

// Document is a profile-scoped resource (notes, uploads, assignments).
// Content and rendering live elsewhere; this core only tracks ownership.
type Document struct {
	ID        string
	AccountID string  // legacy reference, kept through the compatibility window
	ProfileID *string // nil on pre-backfill rows
	Title     string
	Kind      string // freeform: "note", "pdf", "assignment", ...
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Ref returns the document's owner reference for the policy check.
func (d Document) Ref() ResourceRef {
	if d.ProfileID != nil {
		return ProfileRef{ProfileID: *d.ProfileID}
	}
	return LegacyAccountRef{AccountID: d.AccountID}
}

// Notification is a profile-scoped resource delivered to a single persona.
type Notification struct {
	ID        string
	AccountID string
	ProfileID *string
	Message   string
	ReadAt    *time.Time
	CreatedAt time.Time
}

// Ref returns the notification's owner reference for the policy check.
func (n Notification) Ref() ResourceRef {
	if n.ProfileID != nil {
		return ProfileRef{ProfileID: *n.ProfileID}
	}
	return LegacyAccountRef{AccountID: n.AccountID}
}
