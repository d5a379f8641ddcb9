package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/wfmlabs/workforce-backend-go/internal/domain/notification"
	"github.com/wfmlabs/workforce-backend-go/internal/pkg/database"
)

type notificationRepository struct {
	db *database.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *database.DB) notification.Repository {
	return &notificationRepository{db: db}
}

// Create inserts a new notification
func (r *notificationRepository) Create(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	q := GetQuerier(ctx, r.db)

	if n.ID == "" {
		n.ID = uuid.New().String()
	}

	dataJSON, err := json.Marshal(n.Data)
	if err != nil {
		return notification.Notification{}, fmt.Errorf("failed to marshal notification data: %w", err)
	}

	query := `
		INSERT INTO notifications (id, company_id, recipient_id, type, title, message, data, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, NOW())
		RETURNING created_at
	`

	err = q.QueryRow(ctx, query,
		n.ID, n.CompanyID, n.RecipientID, string(n.Type),
		n.Title, n.Message, dataJSON,
	).Scan(&n.CreatedAt)
	if err != nil {
		return notification.Notification{}, fmt.Errorf("failed to create notification: %w", err)
	}

	return n, nil
}

// ListByRecipient returns notifications for a recipient with total and
// unread counts.
func (r *notificationRepository) ListByRecipient(ctx context.Context, recipientID string, filter notification.NotificationFilter, companyID string) ([]notification.Notification, int64, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "WHERE recipient_id = $1 AND company_id = $2"
	args := []interface{}{recipientID, companyID}
	if filter.UnreadOnly {
		where += " AND is_read = FALSE"
	}

	var total, unread int64
	countQuery := fmt.Sprintf(`
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE is_read = FALSE)
		FROM notifications %s
	`, where)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total, &unread); err != nil {
		return nil, 0, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT id, company_id, recipient_id, type, title, message, data, is_read, read_at, created_at
		FROM notifications
		%s
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`, where)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []notification.Notification
	for rows.Next() {
		var n notification.Notification
		var typ string
		var dataJSON []byte
		if err := rows.Scan(
			&n.ID, &n.CompanyID, &n.RecipientID, &typ,
			&n.Title, &n.Message, &dataJSON, &n.IsRead, &n.ReadAt, &n.CreatedAt,
		); err != nil {
			return nil, 0, 0, fmt.Errorf("failed to scan notification: %w", err)
		}
		n.Type = notification.Type(typ)
		if len(dataJSON) > 0 {
			if err := json.Unmarshal(dataJSON, &n.Data); err != nil {
				return nil, 0, 0, fmt.Errorf("failed to unmarshal notification data: %w", err)
			}
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, fmt.Errorf("failed to iterate notifications: %w", err)
	}

	return notifications, total, unread, nil
}

// MarkRead marks one notification as read
func (r *notificationRepository) MarkRead(ctx context.Context, id string, recipientID string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE notifications
		SET is_read = TRUE, read_at = NOW()
		WHERE id = $1 AND recipient_id = $2 AND company_id = $3
	`
	tag, err := q.Exec(ctx, query, id, recipientID, companyID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notification.ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead marks every unread notification for a recipient as read
func (r *notificationRepository) MarkAllRead(ctx context.Context, recipientID string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE notifications
		SET is_read = TRUE, read_at = NOW()
		WHERE recipient_id = $1 AND company_id = $2 AND is_read = FALSE
	`
	if _, err := q.Exec(ctx, query, recipientID, companyID); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}
