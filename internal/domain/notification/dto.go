package notification

import (
	"time"
)

type CreateNotificationRequest struct {
	CompanyID   string
	RecipientID string
	Type        Type
	Title       string
	Message     string
	Data        map[string]interface{}
}

type NotificationFilter struct {
	UnreadOnly bool
	Page       int
	Limit      int
}

type NotificationResponse struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Data      map[string]interface{} `json:"data,omitempty"`
	IsRead    bool                   `json:"is_read"`
	ReadAt    *string                `json:"read_at,omitempty"`
	CreatedAt string                 `json:"created_at"`
}

type ListNotificationResponse struct {
	TotalCount    int64                  `json:"total_count"`
	UnreadCount   int64                  `json:"unread_count"`
	Notifications []NotificationResponse `json:"notifications"`
}

// MapNotificationToResponse converts a Notification entity to the response shape.
func MapNotificationToResponse(n Notification) NotificationResponse {
	var readAt *string
	if n.ReadAt != nil {
		v := n.ReadAt.UTC().Format(time.RFC3339)
		readAt = &v
	}

	return NotificationResponse{
		ID:        n.ID,
		Type:      string(n.Type),
		Title:     n.Title,
		Message:   n.Message,
		Data:      n.Data,
		IsRead:    n.IsRead,
		ReadAt:    readAt,
		CreatedAt: n.CreatedAt.UTC().Format(time.RFC3339),
	}
}
