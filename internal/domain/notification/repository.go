package notification

import (
	"context"
)

// Repository defines data access for notifications.
type Repository interface {
	Create(ctx context.Context, n Notification) (Notification, error)

	ListByRecipient(ctx context.Context, recipientID string, filter NotificationFilter, companyID string) ([]Notification, int64, int64, error)

	MarkRead(ctx context.Context, id string, recipientID string, companyID string) error

	MarkAllRead(ctx context.Context, recipientID string, companyID string) error
}

// Service queues and lists notifications. QueueNotification never fails
// the calling operation; persistence errors are logged and swallowed.
type Service interface {
	QueueNotification(ctx context.Context, req CreateNotificationRequest) error
	List(ctx context.Context, companyID string, recipientID string, filter NotificationFilter) (ListNotificationResponse, error)
	MarkRead(ctx context.Context, companyID string, recipientID string, id string) error
	MarkAllRead(ctx context.Context, companyID string, recipientID string) error
}
