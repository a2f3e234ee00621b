package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/givebridge/givebridge/internal/model"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationRepo persists user-facing alerts. Rows are inserted by the
// fan-out consumer; clients only ever read them and flip the read flag. Both
// mark methods filter on the recipient id so nobody can acknowledge another
// user's alerts.
type NotificationRepo struct{ db *sql.DB }

func NewNotificationRepo(db *sql.DB) *NotificationRepo { return &NotificationRepo{db: db} }

const notificationCols = `id, recipient_id, type, title, message, payload,
	is_read, read_at, created_at`

func scanNotification(scan func(dest ...any) error) (*model.Notification, error) {
	var (
		n       model.Notification
		payload sql.NullString
		readAt  sql.NullTime
	)
	err := scan(&n.ID, &n.RecipientID, &n.Type, &n.Title, &n.Message, &payload,
		&n.IsRead, &readAt, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	if payload.Valid && payload.String != "" {
		_ = json.Unmarshal([]byte(payload.String), &n.Payload)
	}
	if readAt.Valid {
		t := readAt.Time
		n.ReadAt = &t
	}
	return &n, nil
}

// Insert stores a notification and populates its ID and timestamp.
func (r *NotificationRepo) Insert(ctx context.Context, n *model.Notification) error {
	payload, err := json.Marshal(n.Payload)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO notifications (recipient_id, type, title, message, payload)
		 VALUES (?,?,?,?,?)`,
		n.RecipientID, n.Type, n.Title, n.Message, string(payload))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	n.ID = uint64(id)
	row := r.db.QueryRowContext(ctx,
		"SELECT "+notificationCols+" FROM notifications WHERE id = ?", n.ID)
	got, err := scanNotification(row.Scan)
	if err != nil {
		return err
	}
	*n = *got
	return nil
}

// ListByRecipient returns the recipient's latest notifications, newest
// first, optionally restricted to unread rows.
func (r *NotificationRepo) ListByRecipient(ctx context.Context, recipientID uint64, unreadOnly bool, limit int) ([]*model.Notification, error) {
	q := "SELECT " + notificationCols + " FROM notifications WHERE recipient_id = ?"
	if unreadOnly {
		q += " AND is_read = FALSE"
	}
	q += " ORDER BY id DESC LIMIT ?"
	rows, err := r.db.QueryContext(ctx, q, recipientID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*model.Notification, 0, limit)
	for rows.Next() {
		n, err := scanNotification(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// UnreadCount returns the number of unread notifications for the badge.
func (r *NotificationRepo) UnreadCount(ctx context.Context, recipientID uint64) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM notifications WHERE recipient_id = ? AND is_read = FALSE",
		recipientID).Scan(&n)
	return n, err
}

// MarkRead flips one notification to read. A row belonging to a different
// recipient is indistinguishable from a missing one here; both return
// ErrNotificationNotFound after the recipient-filtered update matches
// nothing, and the explicit existence check below splits the two cases.
func (r *NotificationRepo) MarkRead(ctx context.Context, id, recipientID uint64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE notifications SET is_read=TRUE, read_at=NOW() WHERE id=? AND recipient_id=? AND is_read=FALSE",
		id, recipientID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	var owner uint64
	var isRead bool
	err = r.db.QueryRowContext(ctx,
		"SELECT recipient_id, is_read FROM notifications WHERE id=?", id).Scan(&owner, &isRead)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotificationNotFound
	}
	if err != nil {
		return err
	}
	if owner != recipientID {
		return ErrForbidden
	}
	return nil // already read; marking again is a no-op
}

// MarkAllRead flips every unread notification for the recipient and returns
// how many rows changed.
func (r *NotificationRepo) MarkAllRead(ctx context.Context, recipientID uint64) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE notifications SET is_read=TRUE, read_at=NOW() WHERE recipient_id=? AND is_read=FALSE",
		recipientID)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}
