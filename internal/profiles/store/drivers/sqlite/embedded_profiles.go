package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/readspacehq/readspace/internal/profiles/domain"
	"github.com/readspacehq/readspace/internal/profiles/store"
)

// embeddedProfilesRepo serves accounts that predate the profiles table:
// their profiles live as a "profiles" array inside the preferences blob.
// It satisfies the same store.Profiles contract as the normalized repo so
// the selector in the store package is the only place aware of the split.
//
// Writes rewrite the array in place and must preserve every sibling key in
// the blob; the backfill batch is what eventually moves these accounts to
// the normalized table.
type embeddedProfilesRepo struct {
	q querier
}

// embeddedProfile is the legacy wire shape inside the blob.
type embeddedProfile struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Color          string          `json:"color"`
	Preferences    json.RawMessage `json:"preferences,omitempty"`
	Active         bool            `json:"active"`
	LastAccessedAt *time.Time      `json:"last_accessed_at"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (e embeddedProfile) toDomain(accountID string) domain.Profile {
	return domain.Profile{
		ID:             e.ID,
		AccountID:      accountID,
		Name:           e.Name,
		Color:          e.Color,
		Preferences:    e.Preferences,
		Active:         e.Active,
		LastAccessedAt: e.LastAccessedAt,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

// loadBlob returns the full preferences map and the decoded profiles array.
func (r *embeddedProfilesRepo) loadBlob(ctx context.Context, accountID string) (map[string]json.RawMessage, []embeddedProfile, error) {
	var raw string
	err := r.q.QueryRowContext(ctx,
		`SELECT preferences FROM accounts WHERE id = ?`, accountID).Scan(&raw)
	if err != nil {
		return nil, nil, mapNotFound(err)
	}

	blob := map[string]json.RawMessage{}
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &blob); err != nil {
			return nil, nil, fmt.Errorf("sqlite: corrupt preferences blob for account %s: %w", accountID, err)
		}
	}

	var profiles []embeddedProfile
	if arr, ok := blob["profiles"]; ok {
		if err := json.Unmarshal(arr, &profiles); err != nil {
			return nil, nil, fmt.Errorf("sqlite: corrupt embedded profiles for account %s: %w", accountID, err)
		}
	}
	return blob, profiles, nil
}

// saveBlob writes the profiles array back, keeping every other key intact.
func (r *embeddedProfilesRepo) saveBlob(ctx context.Context, accountID string, blob map[string]json.RawMessage, profiles []embeddedProfile) error {
	arr, err := json.Marshal(profiles)
	if err != nil {
		return err
	}
	blob["profiles"] = arr

	out, err := json.Marshal(blob)
	if err != nil {
		return err
	}

	_, err = r.q.ExecContext(ctx,
		`UPDATE accounts SET preferences = ?, updated_at = ? WHERE id = ?`,
		string(out), time.Now().UTC(), accountID)
	return err
}

func (r *embeddedProfilesRepo) GetProfile(ctx context.Context, accountID, profileID string) (domain.Profile, error) {
	_, profiles, err := r.loadBlob(ctx, accountID)
	if err != nil {
		return domain.Profile{}, err
	}
	for _, p := range profiles {
		if p.ID == profileID {
			return p.toDomain(accountID), nil
		}
	}
	return domain.Profile{}, store.ErrNotFound
}

func (r *embeddedProfilesRepo) ListActiveProfiles(ctx context.Context, accountID string) ([]domain.Profile, error) {
	_, profiles, err := r.loadBlob(ctx, accountID)
	if err != nil {
		return nil, err
	}

	var out []domain.Profile
	for _, p := range profiles {
		if p.Active {
			out = append(out, p.toDomain(accountID))
		}
	}
	sortByRecency(out)
	return out, nil
}

func (r *embeddedProfilesRepo) ListProfiles(ctx context.Context, accountID string) ([]domain.Profile, error) {
	_, profiles, err := r.loadBlob(ctx, accountID)
	if err != nil {
		return nil, err
	}

	var out []domain.Profile
	for _, p := range profiles {
		out = append(out, p.toDomain(accountID))
	}
	sortByRecency(out)
	return out, nil
}

// sortByRecency applies the same ordering contract as the normalized repo:
// most recently accessed first, never-accessed profiles last (newest first
// among those).
func sortByRecency(out []domain.Profile) {
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.LastAccessedAt != nil && b.LastAccessedAt != nil:
			return a.LastAccessedAt.After(*b.LastAccessedAt)
		case a.LastAccessedAt != nil:
			return true
		case b.LastAccessedAt != nil:
			return false
		default:
			return a.CreatedAt.After(b.CreatedAt)
		}
	})
}

func (r *embeddedProfilesRepo) CountActiveProfiles(ctx context.Context, accountID string) (int, error) {
	_, profiles, err := r.loadBlob(ctx, accountID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, p := range profiles {
		if p.Active {
			count++
		}
	}
	return count, nil
}

func (r *embeddedProfilesRepo) CreateProfile(ctx context.Context, p domain.Profile) error {
	blob, profiles, err := r.loadBlob(ctx, p.AccountID)
	if err != nil {
		return err
	}

	for _, existing := range profiles {
		if existing.ID == p.ID || (existing.Active && existing.Name == p.Name) {
			return store.ErrAlreadyExists
		}
	}

	now := time.Now().UTC()
	profiles = append(profiles, embeddedProfile{
		ID:             p.ID,
		Name:           p.Name,
		Color:          p.Color,
		Preferences:    p.Preferences,
		Active:         p.Active,
		LastAccessedAt: p.LastAccessedAt,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	return r.saveBlob(ctx, p.AccountID, blob, profiles)
}

func (r *embeddedProfilesRepo) UpdateProfile(ctx context.Context, p domain.Profile) error {
	return r.mutate(ctx, p.AccountID, p.ID, func(e *embeddedProfile, siblings []embeddedProfile) error {
		for _, s := range siblings {
			if s.ID != e.ID && s.Active && s.Name == p.Name {
				return store.ErrAlreadyExists
			}
		}
		e.Name = p.Name
		e.Color = p.Color
		e.Preferences = p.Preferences
		return nil
	})
}

func (r *embeddedProfilesRepo) SetProfileActive(ctx context.Context, accountID, profileID string, active bool) error {
	return r.mutate(ctx, accountID, profileID, func(e *embeddedProfile, _ []embeddedProfile) error {
		e.Active = active
		return nil
	})
}

func (r *embeddedProfilesRepo) TouchLastAccessed(ctx context.Context, accountID, profileID string, at time.Time) error {
	return r.mutate(ctx, accountID, profileID, func(e *embeddedProfile, _ []embeddedProfile) error {
		t := at.UTC()
		e.LastAccessedAt = &t
		return nil
	})
}

// mutate applies fn to the identified profile and persists the blob.
func (r *embeddedProfilesRepo) mutate(ctx context.Context, accountID, profileID string, fn func(*embeddedProfile, []embeddedProfile) error) error {
	blob, profiles, err := r.loadBlob(ctx, accountID)
	if err != nil {
		return err
	}

	for i := range profiles {
		if profiles[i].ID == profileID {
			if err := fn(&profiles[i], profiles); err != nil {
				return err
			}
			profiles[i].UpdatedAt = time.Now().UTC()
			return r.saveBlob(ctx, accountID, blob, profiles)
		}
	}
	return store.ErrNotFound
}
