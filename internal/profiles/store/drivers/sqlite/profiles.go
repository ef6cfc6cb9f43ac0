package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/readspacehq/readspace/internal/profiles/domain"
	"github.com/readspacehq/readspace/internal/profiles/store"
)

type profilesRepo struct {
	q querier
}

const profileColumns = `id, account_id, name, color, preferences, active,
	last_accessed_at, created_at, updated_at`

func scanProfile(row interface{ Scan(...any) error }) (domain.Profile, error) {
	var (
		p            domain.Profile
		prefs        string
		lastAccessed sql.NullTime
	)
	err := row.Scan(
		&p.ID, &p.AccountID, &p.Name, &p.Color, &prefs, &p.Active,
		&lastAccessed, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return domain.Profile{}, err
	}
	p.Preferences = json.RawMessage(prefs)
	p.LastAccessedAt = mapNullTimePtr(lastAccessed)
	return p, nil
}

func (r *profilesRepo) GetProfile(ctx context.Context, accountID, profileID string) (domain.Profile, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE id = ? AND account_id = ?`,
		profileID, accountID)
	p, err := scanProfile(row)
	if err != nil {
		return domain.Profile{}, mapNotFound(err)
	}
	return p, nil
}

func (r *profilesRepo) ListActiveProfiles(ctx context.Context, accountID string) ([]domain.Profile, error) {
	return r.list(ctx,
		`SELECT `+profileColumns+` FROM profiles
		 WHERE account_id = ? AND active = 1
		 ORDER BY last_accessed_at IS NULL ASC, last_accessed_at DESC, created_at DESC`,
		accountID)
}

func (r *profilesRepo) ListProfiles(ctx context.Context, accountID string) ([]domain.Profile, error) {
	return r.list(ctx,
		`SELECT `+profileColumns+` FROM profiles
		 WHERE account_id = ?
		 ORDER BY last_accessed_at IS NULL ASC, last_accessed_at DESC, created_at DESC`,
		accountID)
}

func (r *profilesRepo) list(ctx context.Context, query string, args ...any) ([]domain.Profile, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *profilesRepo) CountActiveProfiles(ctx context.Context, accountID string) (int, error) {
	var count int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM profiles WHERE account_id = ? AND active = 1`,
		accountID).Scan(&count)
	return count, err
}

func (r *profilesRepo) CreateProfile(ctx context.Context, p domain.Profile) error {
	prefs := string(p.Preferences)
	if prefs == "" {
		prefs = "{}"
	}
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO profiles (id, account_id, name, color, preferences, active,
			last_accessed_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.AccountID, p.Name, p.Color, prefs, p.Active,
		mapOptionalTime(p.LastAccessedAt), now, now,
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE") {
		return store.ErrAlreadyExists
	}
	return err
}

func (r *profilesRepo) UpdateProfile(ctx context.Context, p domain.Profile) error {
	prefs := string(p.Preferences)
	if prefs == "" {
		prefs = "{}"
	}
	res, err := r.q.ExecContext(ctx,
		`UPDATE profiles SET name = ?, color = ?, preferences = ?, updated_at = ?
		 WHERE id = ? AND account_id = ?`,
		p.Name, p.Color, prefs, time.Now().UTC(), p.ID, p.AccountID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return store.ErrAlreadyExists
		}
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *profilesRepo) SetProfileActive(ctx context.Context, accountID, profileID string, active bool) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE profiles SET active = ?, updated_at = ? WHERE id = ? AND account_id = ?`,
		active, time.Now().UTC(), profileID, accountID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *profilesRepo) TouchLastAccessed(ctx context.Context, accountID, profileID string, at time.Time) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE profiles SET last_accessed_at = ?, updated_at = ? WHERE id = ? AND account_id = ?`,
		at.UTC(), time.Now().UTC(), profileID, accountID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return store.ErrNotFound
	}
	return nil
}
