package postgresql

import (
	"context"
	"fmt"

	"github.com/sitehr/sitehr-backend-go/internal/domain/notification"
	"github.com/sitehr/sitehr-backend-go/internal/pkg/database"
)

type notificationRepository struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.NotificationRepository {
	return &notificationRepository{db: db}
}

// Create implements notification.NotificationRepository.
func (r *notificationRepository) Create(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO notifications (user_id, title, message, type, link)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, read, created_at
	`

	err := q.QueryRow(ctx, query, n.UserID, n.Title, n.Message, n.Type, n.Link).
		Scan(&n.ID, &n.Read, &n.CreatedAt)
	if err != nil {
		return notification.Notification{}, fmt.Errorf("failed to create notification: %w", err)
	}

	return n, nil
}

// ListByUser implements notification.NotificationRepository. Returns the
// page of notifications, the total count and the unread count.
func (r *notificationRepository) ListByUser(ctx context.Context, userID string, filter notification.NotificationFilter) ([]notification.Notification, int64, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "user_id = $1"
	if filter.UnreadOnly {
		baseWhere += " AND read = FALSE"
	}

	var total, unread int64
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FILTER (WHERE `+baseWhere+`), COUNT(*) FILTER (WHERE user_id = $1 AND read = FALSE) FROM notifications`,
		userID,
	).Scan(&total, &unread)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	query := `
		SELECT id, user_id, title, message, type, link, read, created_at
		FROM notifications
		WHERE ` + baseWhere + `
		ORDER BY created_at DESC LIMIT $2 OFFSET $3
	`

	rows, err := q.Query(ctx, query, userID, filter.Limit, (filter.Page-1)*filter.Limit)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []notification.Notification
	for rows.Next() {
		var n notification.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.Link, &n.Read, &n.CreatedAt); err != nil {
			return nil, 0, 0, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	return notifications, total, unread, rows.Err()
}

// MarkRead implements notification.NotificationRepository. The userID guard
// keeps users from marking other users' notifications.
func (r *notificationRepository) MarkRead(ctx context.Context, id string, userID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notification.ErrNotificationNotFound
	}

	return nil
}

// MarkAllRead implements notification.NotificationRepository.
func (r *notificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `UPDATE notifications SET read = TRUE WHERE user_id = $1 AND read = FALSE`, userID)
	if err != nil {
		return fmt.Errorf("failed to mark all notifications read: %w", err)
	}

	return nil
}
