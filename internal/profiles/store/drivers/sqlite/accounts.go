package sqlite

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/readspacehq/readspace/internal/profiles/domain"
	"github.com/readspacehq/readspace/internal/profiles/store"
)

type accountsRepo struct {
	q querier
}

const accountColumns = `id, email, display_name, role, password_hash, credits, onboarded,
	preferences, default_profile_id, profile_schema, created_at, updated_at`

func scanAccount(row interface{ Scan(...any) error }) (domain.Account, error) {
	var (
		a              domain.Account
		prefs          string
		defaultProfile *string
		schema         string
	)
	err := row.Scan(
		&a.ID, &a.Email, &a.DisplayName, &a.Role, &a.PasswordHash, &a.Credits,
		&a.Onboarded, &prefs, &defaultProfile, &schema, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return domain.Account{}, err
	}
	a.Preferences = json.RawMessage(prefs)
	a.DefaultProfileID = defaultProfile
	a.ProfileSchema = domain.ProfileSchema(schema)
	return a, nil
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
	a, err := scanAccount(row)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return a, nil
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = ?`, email)
	a, err := scanAccount(row)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return a, nil
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	prefs := string(a.Preferences)
	if prefs == "" {
		prefs = "{}"
	}
	schema := a.ProfileSchema
	if schema == "" {
		schema = domain.ProfileSchemaNormalized
	}
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO accounts (id, email, display_name, role, password_hash, credits,
			onboarded, preferences, default_profile_id, profile_schema, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Email, a.DisplayName, a.Role, a.PasswordHash, a.Credits,
		a.Onboarded, prefs, a.DefaultProfileID, string(schema), now, now,
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE") {
		return store.ErrAlreadyExists
	}
	return err
}

func (r *accountsRepo) UpdateDisplayName(ctx context.Context, accountID, displayName string) error {
	return r.exec(ctx,
		`UPDATE accounts SET display_name = ?, updated_at = ? WHERE id = ?`,
		displayName, time.Now().UTC(), accountID)
}

func (r *accountsRepo) SetRole(ctx context.Context, accountID, role string) error {
	return r.exec(ctx,
		`UPDATE accounts SET role = ?, updated_at = ? WHERE id = ?`,
		role, time.Now().UTC(), accountID)
}

func (r *accountsRepo) SetOnboarded(ctx context.Context, accountID string) error {
	return r.exec(ctx,
		`UPDATE accounts SET onboarded = 1, updated_at = ? WHERE id = ?`,
		time.Now().UTC(), accountID)
}

func (r *accountsRepo) SetDefaultProfile(ctx context.Context, accountID string, profileID *string) error {
	return r.exec(ctx,
		`UPDATE accounts SET default_profile_id = ?, updated_at = ? WHERE id = ?`,
		mapOptionalString(profileID), time.Now().UTC(), accountID)
}

func (r *accountsRepo) SetProfileSchema(ctx context.Context, accountID string, schema domain.ProfileSchema) error {
	return r.exec(ctx,
		`UPDATE accounts SET profile_schema = ?, updated_at = ? WHERE id = ?`,
		string(schema), time.Now().UTC(), accountID)
}

func (r *accountsRepo) UpdatePreferences(ctx context.Context, accountID string, prefs []byte) error {
	return r.exec(ctx,
		`UPDATE accounts SET preferences = ?, updated_at = ? WHERE id = ?`,
		string(prefs), time.Now().UTC(), accountID)
}

func (r *accountsRepo) ListAccountIDs(ctx context.Context) ([]string, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id FROM accounts ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *accountsRepo) DeleteAccount(ctx context.Context, accountID string) error {
	return r.exec(ctx, `DELETE FROM accounts WHERE id = ?`, accountID)
}

// exec runs a write that must touch exactly one existing row.
func (r *accountsRepo) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return store.ErrNotFound
	}
	return nil
}
