package notification

import "context"

// NotificationService defines business logic for in-app notifications.
// Notifications are rows read by the client; there is no external dispatch.
type NotificationService interface {
	// Notify creates a notification for a user. Failures are the caller's
	// to ignore: losing a notification never fails the triggering action.
	Notify(ctx context.Context, userID, title, message string, typ Type, link *string) error

	ListMine(ctx context.Context, filter NotificationFilter) (ListNotificationsResponse, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
}
