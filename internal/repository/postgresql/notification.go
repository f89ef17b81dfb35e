package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/stafftrack/hr-backend-go/internal/domain/notification"
	"github.com/stafftrack/hr-backend-go/internal/pkg/database"
)

type notificationRepository struct {
	db *database.DB
}

// Create implements notification.Repository.
func (n *notificationRepository) Create(ctx context.Context, notif *notification.Notification) error {
	q := GetQuerier(ctx, n.db)

	query := `
		INSERT INTO notifications (id, recipient_id, type, title, message, data, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := q.Exec(ctx, query,
		notif.ID, notif.RecipientID, notif.Type, notif.Title, notif.Message,
		notif.Data, notif.IsRead, notif.CreatedAt,
	)
	if err != nil {
		return database.StoreError("create notification", err)
	}

	return nil
}

// CreateBatch implements notification.Repository.
func (n *notificationRepository) CreateBatch(ctx context.Context, notifications []*notification.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO notifications (id, recipient_id, type, title, message, data, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	for _, notif := range notifications {
		batch.Queue(query,
			notif.ID, notif.RecipientID, notif.Type, notif.Title, notif.Message,
			notif.Data, notif.IsRead, notif.CreatedAt,
		)
	}

	results := n.db.Pool.SendBatch(ctx, batch)
	defer results.Close()

	for range notifications {
		if _, err := results.Exec(); err != nil {
			return database.StoreError("batch insert notifications", err)
		}
	}

	return nil
}

// GetByRecipient implements notification.Repository.
func (n *notificationRepository) GetByRecipient(ctx context.Context, recipientID string, page, pageSize int, unreadOnly bool) ([]*notification.Notification, int, error) {
	q := GetQuerier(ctx, n.db)

	baseWhere := "recipient_id = $1"
	args := []interface{}{recipientID}
	if unreadOnly {
		baseWhere += " AND is_read = FALSE"
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM notifications WHERE " + baseWhere
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, database.StoreError("count notifications", err)
	}

	query := `
		SELECT id, recipient_id, type, title, message, data, is_read, read_at, created_at
		FROM notifications
		WHERE ` + baseWhere + `
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	args = append(args, pageSize, (page-1)*pageSize)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, database.StoreError("query notifications", err)
	}
	defer rows.Close()

	var notifications []*notification.Notification
	for rows.Next() {
		var notif notification.Notification
		err := rows.Scan(
			&notif.ID, &notif.RecipientID, &notif.Type, &notif.Title, &notif.Message,
			&notif.Data, &notif.IsRead, &notif.ReadAt, &notif.CreatedAt,
		)
		if err != nil {
			return nil, 0, database.StoreError("scan notification", err)
		}
		notifications = append(notifications, &notif)
	}

	return notifications, total, nil
}

// GetUnreadCount implements notification.Repository.
func (n *notificationRepository) GetUnreadCount(ctx context.Context, recipientID string) (int, error) {
	q := GetQuerier(ctx, n.db)

	var count int
	query := `SELECT COUNT(*) FROM notifications WHERE recipient_id = $1 AND is_read = FALSE`
	if err := q.QueryRow(ctx, query, recipientID).Scan(&count); err != nil {
		return 0, database.StoreError("count unread notifications", err)
	}

	return count, nil
}

// MarkAsRead implements notification.Repository.
func (n *notificationRepository) MarkAsRead(ctx context.Context, ids []string, recipientID string) error {
	if len(ids) == 0 {
		return nil
	}

	q := GetQuerier(ctx, n.db)

	query := `
		UPDATE notifications
		SET is_read = TRUE, read_at = NOW()
		WHERE id = ANY($1)
		  AND recipient_id = $2
	`

	tag, err := q.Exec(ctx, query, ids, recipientID)
	if err != nil {
		return database.StoreError("mark notifications as read", err)
	}
	if tag.RowsAffected() == 0 {
		return notification.ErrNotificationNotFound
	}

	return nil
}

// MarkAllAsRead implements notification.Repository.
func (n *notificationRepository) MarkAllAsRead(ctx context.Context, recipientID string) error {
	q := GetQuerier(ctx, n.db)

	query := `
		UPDATE notifications
		SET is_read = TRUE, read_at = NOW()
		WHERE recipient_id = $1
		  AND is_read = FALSE
	`

	if _, err := q.Exec(ctx, query, recipientID); err != nil {
		return database.StoreError("mark all notifications as read", err)
	}

	return nil
}

func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepository{db: db}
}
