package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/readspacehq/readspace/internal/profiles/domain"
	"github.com/readspacehq/readspace/internal/profiles/store"
)

type notificationsRepo struct {
	q querier
}

const notificationColumns = `id, account_id, profile_id, message, read_at, created_at`

func scanNotification(row interface{ Scan(...any) error }) (domain.Notification, error) {
	var (
		n         domain.Notification
		profileID sql.NullString
		readAt    sql.NullTime
	)
	err := row.Scan(&n.ID, &n.AccountID, &profileID, &n.Message, &readAt, &n.CreatedAt)
	if err != nil {
		return domain.Notification{}, err
	}
	n.ProfileID = mapNullStringPtr(profileID)
	n.ReadAt = mapNullTimePtr(readAt)
	return n, nil
}

func (r *notificationsRepo) ListNotificationsByProfile(ctx context.Context, profileID string) ([]domain.Notification, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+notificationColumns+` FROM notifications
		 WHERE profile_id = ?
		 ORDER BY created_at DESC, id DESC`,
		profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *notificationsRepo) CreateNotification(ctx context.Context, n domain.Notification) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO notifications (id, account_id, profile_id, message, read_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		n.ID, n.AccountID, mapOptionalString(n.ProfileID), n.Message,
		mapOptionalTime(n.ReadAt), nowUTC(),
	)
	return err
}

func (r *notificationsRepo) DeleteReadNotificationsBefore(ctx context.Context, cutoff time.Time) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM notifications WHERE read_at IS NOT NULL AND read_at < ?`,
		cutoff.UTC())
	return err
}

func (r *notificationsRepo) CountMissingProfileRef(ctx context.Context) (int64, error) {
	var count int64
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE profile_id IS NULL`).Scan(&count)
	return count, err
}

func (r *notificationsRepo) BackfillProfileRef(ctx context.Context, accountID, profileID string) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`UPDATE notifications SET profile_id = ?
		 WHERE account_id = ? AND profile_id IS NULL`,
		profileID, accountID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

var _ store.Notifications = (*notificationsRepo)(nil)
