package sqlite

import (
	"context"
	"database/sql"

	"github.com/readspacehq/readspace/internal/profiles/domain"
	"github.com/readspacehq/readspace/internal/profiles/store"
)

type documentsRepo struct {
	q querier
}

const documentColumns = `id, account_id, profile_id, title, kind, created_at, updated_at`

func scanDocument(row interface{ Scan(...any) error }) (domain.Document, error) {
	var (
		d         domain.Document
		profileID sql.NullString
	)
	err := row.Scan(&d.ID, &d.AccountID, &profileID, &d.Title, &d.Kind, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return domain.Document{}, err
	}
	d.ProfileID = mapNullStringPtr(profileID)
	return d, nil
}

func (r *documentsRepo) GetDocumentByID(ctx context.Context, id string) (domain.Document, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE id = ?`, id)
	d, err := scanDocument(row)
	if err != nil {
		return domain.Document{}, mapNotFound(err)
	}
	return d, nil
}

func (r *documentsRepo) ListDocumentsByProfile(ctx context.Context, profileID string) ([]domain.Document, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+documentColumns+` FROM documents
		 WHERE profile_id = ?
		 ORDER BY created_at DESC, id DESC`,
		profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *documentsRepo) CreateDocument(ctx context.Context, d domain.Document) error {
	now := nowUTC()
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO documents (id, account_id, profile_id, title, kind, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.AccountID, mapOptionalString(d.ProfileID), d.Title, d.Kind, now, now,
	)
	return err
}

func (r *documentsRepo) DeleteDocument(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *documentsRepo) CountMissingProfileRef(ctx context.Context) (int64, error) {
	var count int64
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM documents WHERE profile_id IS NULL`).Scan(&count)
	return count, err
}

func (r *documentsRepo) BackfillProfileRef(ctx context.Context, accountID, profileID string) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`UPDATE documents SET profile_id = ?, updated_at = ?
		 WHERE account_id = ? AND profile_id IS NULL`,
		profileID, nowUTC(), accountID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
