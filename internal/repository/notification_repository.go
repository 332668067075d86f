package repository

import (
	"context"

	"github.com/gdugdh24/roommate-backend/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error
}

type NotificationRepository interface {
	// Create persists n and fills its ID and CreatedAt.
	Create(ctx context.Context, n *domain.Notification) error
	ListByReceiver(ctx context.Context, receiverID string, limit, offset int) ([]*domain.Notification, error)
	CountUnread(ctx context.Context, receiverID string) (int, error)
	MarkRead(ctx context.Context, id, receiverID string) error
}
