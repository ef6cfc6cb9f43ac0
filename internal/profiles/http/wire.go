package http

import (
	"errors"
	"net/http"

	"github.com/readspacehq/readspace/internal/profiles/domain"
	"github.com/readspacehq/readspace/internal/profiles/service"
	"github.com/readspacehq/readspace/internal/profiles/store"
	"github.com/readspacehq/readspace/pkg/profilesdk"
)

func toWireAccount(a domain.Account) profilesdk.Account {
	return profilesdk.Account{
		ID:               a.ID,
		Email:            a.Email,
		DisplayName:      a.DisplayName,
		Role:             a.Role,
		Credits:          a.Credits,
		Onboarded:        a.Onboarded,
		Preferences:      a.Preferences,
		DefaultProfileID: a.DefaultProfileID,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

func toWireProfile(p domain.Profile) profilesdk.Profile {
	return profilesdk.Profile{
		ID:             p.ID,
		AccountID:      p.AccountID,
		Name:           p.Name,
		Color:          p.Color,
		Preferences:    p.Preferences,
		LastAccessedAt: p.LastAccessedAt,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func toWireProfiles(profiles []domain.Profile) []profilesdk.Profile {
	out := make([]profilesdk.Profile, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, toWireProfile(p))
	}
	return out
}

func toWireDocument(d domain.Document) profilesdk.Document {
	return profilesdk.Document{
		ID:        d.ID,
		ProfileID: d.ProfileID,
		Title:     d.Title,
		Kind:      d.Kind,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// writeServiceError maps service sentinels onto the stable error envelope.
// Unknown errors become opaque 500s.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrOwnershipDenied):
		profilesdk.ErrOwnershipDenied.WriteError(w)
	case errors.Is(err, service.ErrProfileNotFound):
		profilesdk.ErrNotFound.WriteError(w)
	case errors.Is(err, service.ErrProfileNameInvalid):
		profilesdk.ErrProfileNameInvalid.WriteError(w)
	case errors.Is(err, service.ErrProfileNameTaken):
		profilesdk.ErrProfileNameTaken.WriteError(w)
	case errors.Is(err, service.ErrProfileLimitReached):
		profilesdk.ErrProfileLimitReached.WriteError(w)
	case errors.Is(err, service.ErrLastProfile):
		profilesdk.ErrLastProfile.WriteError(w)
	case errors.Is(err, service.ErrEmailTaken):
		profilesdk.ErrEmailTaken.WriteError(w)
	case errors.Is(err, service.ErrSignupInvalid), errors.Is(err, service.ErrDocumentInvalid):
		profilesdk.ErrInvalidRequest.WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		profilesdk.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, store.ErrNotFound):
		profilesdk.ErrNotFound.WriteError(w)
	default:
		profilesdk.ErrServerError.WriteError(w)
	}
}
