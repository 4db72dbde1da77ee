package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/sitehr/sitehr-backend-go/internal/domain/notification"
	"github.com/sitehr/sitehr-backend-go/internal/pkg/database"
)

type NotificationServiceImpl struct {
	db *database.DB
	notification.NotificationRepository
}

func NewNotificationService(db *database.DB, notificationRepo notification.NotificationRepository) notification.NotificationService {
	return &NotificationServiceImpl{
		db:                     db,
		NotificationRepository: notificationRepo,
	}
}

// Notify implements notification.NotificationService.
func (s *NotificationServiceImpl) Notify(ctx context.Context, userID, title, message string, typ notification.Type, link *string) error {
	_, err := s.NotificationRepository.Create(ctx, notification.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    typ,
		Link:    link,
	})
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

// ListMine implements notification.NotificationService.
func (s *NotificationServiceImpl) ListMine(ctx context.Context, filter notification.NotificationFilter) (notification.ListNotificationsResponse, error) {
	userID, err := requireUserID(ctx)
	if err != nil {
		return notification.ListNotificationsResponse{}, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	notifications, total, unread, err := s.NotificationRepository.ListByUser(ctx, userID, filter)
	if err != nil {
		return notification.ListNotificationsResponse{}, fmt.Errorf("failed to list notifications: %w", err)
	}

	resp := notification.ListNotificationsResponse{
		TotalCount:    total,
		UnreadCount:   unread,
		Page:          filter.Page,
		Limit:         filter.Limit,
		Notifications: make([]notification.NotificationResponse, 0, len(notifications)),
	}
	for _, n := range notifications {
		resp.Notifications = append(resp.Notifications, notification.NotificationResponse{
			ID:        n.ID,
			Title:     n.Title,
			Message:   n.Message,
			Type:      string(n.Type),
			Link:      n.Link,
			Read:      n.Read,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
		})
	}

	return resp, nil
}

// MarkRead implements notification.NotificationService.
func (s *NotificationServiceImpl) MarkRead(ctx context.Context, id string) error {
	userID, err := requireUserID(ctx)
	if err != nil {
		return err
	}

	return s.NotificationRepository.MarkRead(ctx, id, userID)
}

// MarkAllRead implements notification.NotificationService.
func (s *NotificationServiceImpl) MarkAllRead(ctx context.Context) error {
	userID, err := requireUserID(ctx)
	if err != nil {
		return err
	}

	return s.NotificationRepository.MarkAllRead(ctx, userID)
}

func requireUserID(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}
	return userID, nil
}
