package notification

import (
	"context"
	"errors"
	"strings"

	"github.com/gdugdh24/roommate-backend/internal/domain"
	"github.com/gdugdh24/roommate-backend/internal/repository"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type NotificationUseCase struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationUseCase(notificationRepo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{notificationRepo: notificationRepo}
}

// ListResponse is a page of persisted notifications for a receiver
type ListResponse struct {
	Notifications []*domain.Notification `json:"notifications"`
	Unread        int                    `json:"unread"`
}

func (uc *NotificationUseCase) List(ctx context.Context, receiverID string, limit, offset int) (*ListResponse, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	items, err := uc.notificationRepo.ListByReceiver(ctx, receiverID, limit, offset)
	if err != nil {
		return nil, domain.Unavailable("list notifications", err)
	}
	unread, err := uc.notificationRepo.CountUnread(ctx, receiverID)
	if err != nil {
		return nil, domain.Unavailable("count unread notifications", err)
	}
	return &ListResponse{Notifications: items, Unread: unread}, nil
}

func (uc *NotificationUseCase) UnreadCount(ctx context.Context, receiverID string) (int, error) {
	count, err := uc.notificationRepo.CountUnread(ctx, receiverID)
	if err != nil {
		return 0, domain.Unavailable("count unread notifications", err)
	}
	return count, nil
}

func (uc *NotificationUseCase) MarkRead(ctx context.Context, receiverID, notificationID string) error {
	if strings.TrimSpace(notificationID) == "" {
		return domain.ErrInvalidRequest
	}
	err := uc.notificationRepo.MarkRead(ctx, notificationID, receiverID)
	if err != nil && !errors.Is(err, domain.ErrNotificationNotFound) {
		return domain.Unavailable("mark notification read", err)
	}
	return err
}
