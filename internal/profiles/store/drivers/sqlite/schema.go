package sqlite

import (
	"context"
	"fmt"
)

// schemaRepo installs the post-backfill NOT NULL enforcement on scoped
// resources. SQLite cannot ALTER TABLE ... ADD CONSTRAINT, so enforcement is
// a pair of RAISE(ABORT) triggers per table, recorded in schema_markers so
// re-running the batch is a no-op.
type schemaRepo struct {
	q querier
}

// enforceableTables guards against interpolating arbitrary identifiers into
// the trigger DDL.
var enforceableTables = map[string]bool{
	"documents":     true,
	"notifications": true,
}

func markerName(table string) string { return "profile_ref_not_null_" + table }

func (r *schemaRepo) ProfileRefEnforced(ctx context.Context, table string) (bool, error) {
	if !enforceableTables[table] {
		return false, fmt.Errorf("sqlite: unknown scoped-resource table %q", table)
	}
	var count int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM schema_markers WHERE name = ?`,
		markerName(table)).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *schemaRepo) EnforceProfileRef(ctx context.Context, table string) error {
	if !enforceableTables[table] {
		return fmt.Errorf("sqlite: unknown scoped-resource table %q", table)
	}

	enforced, err := r.ProfileRefEnforced(ctx, table)
	if err != nil {
		return err
	}
	if enforced {
		return nil
	}

	insertTrigger := fmt.Sprintf(
		`CREATE TRIGGER IF NOT EXISTS trg_%[1]s_profile_ref_insert
		 BEFORE INSERT ON %[1]s
		 WHEN NEW.profile_id IS NULL
		 BEGIN
		     SELECT RAISE(ABORT, '%[1]s.profile_id must not be NULL');
		 END`, table)
	updateTrigger := fmt.Sprintf(
		`CREATE TRIGGER IF NOT EXISTS trg_%[1]s_profile_ref_update
		 BEFORE UPDATE OF profile_id ON %[1]s
		 WHEN NEW.profile_id IS NULL
		 BEGIN
		     SELECT RAISE(ABORT, '%[1]s.profile_id must not be NULL');
		 END`, table)

	if _, err := r.q.ExecContext(ctx, insertTrigger); err != nil {
		return err
	}
	if _, err := r.q.ExecContext(ctx, updateTrigger); err != nil {
		return err
	}

	_, err = r.q.ExecContext(ctx,
		`INSERT INTO schema_markers (name, applied_at) VALUES (?, ?)`,
		markerName(table), nowUTC())
	return err
}
