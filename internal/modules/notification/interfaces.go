package notification

import (
	"context"

	"wellnessbook/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	MarkRead(ctx context.Context, id, userID int64) (bool, error)
	MarkAllRead(ctx context.Context, userID int64) error
}

// Pusher delivers a best-effort real-time copy of a stored notification.
type Pusher interface {
	SendToUser(userID int64, message interface{}) bool
}
