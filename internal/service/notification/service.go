package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/wfmlabs/workforce-backend-go/internal/domain/notification"
)

type ServiceImpl struct {
	repo notification.Repository
}

func NewNotificationService(repo notification.Repository) notification.Service {
	return &ServiceImpl{repo: repo}
}

// QueueNotification implements notification.Service. Persistence failures
// are logged and swallowed so the calling operation never fails on a
// notification write.
func (s *ServiceImpl) QueueNotification(ctx context.Context, req notification.CreateNotificationRequest) error {
	_, err := s.repo.Create(ctx, notification.Notification{
		ID:          uuid.New().String(),
		CompanyID:   req.CompanyID,
		RecipientID: req.RecipientID,
		Type:        req.Type,
		Title:       req.Title,
		Message:     req.Message,
		Data:        req.Data,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to queue notification",
			slog.String("type", string(req.Type)),
			slog.String("recipient_id", req.RecipientID),
			slog.Any("error", err))
	}
	return nil
}

// List implements notification.Service.
func (s *ServiceImpl) List(ctx context.Context, companyID string, recipientID string, filter notification.NotificationFilter) (notification.ListNotificationResponse, error) {
	if filter.Limit == 0 {
		filter.Limit = 20
	}
	if filter.Page == 0 {
		filter.Page = 1
	}

	notifications, total, unread, err := s.repo.ListByRecipient(ctx, recipientID, filter, companyID)
	if err != nil {
		return notification.ListNotificationResponse{}, fmt.Errorf("failed to list notifications: %w", err)
	}

	responses := make([]notification.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, notification.MapNotificationToResponse(n))
	}

	return notification.ListNotificationResponse{
		TotalCount:    total,
		UnreadCount:   unread,
		Notifications: responses,
	}, nil
}

// MarkRead implements notification.Service.
func (s *ServiceImpl) MarkRead(ctx context.Context, companyID string, recipientID string, id string) error {
	if err := s.repo.MarkRead(ctx, id, recipientID, companyID); err != nil {
		return err
	}
	return nil
}

// MarkAllRead implements notification.Service.
func (s *ServiceImpl) MarkAllRead(ctx context.Context, companyID string, recipientID string) error {
	if err := s.repo.MarkAllRead(ctx, recipientID, companyID); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}
