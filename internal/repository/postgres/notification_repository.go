package postgres

import (
	"context"

	"github.com/gdugdh24/roommate-backend/internal/domain"
	"github.com/gdugdh24/roommate-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	n.ID = uuid.NewString()
	n.Read = false
	query := `
		INSERT INTO notifications (id, type, message, sender_id, receiver_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	return r.db.QueryRowContext(ctx, query, n.ID, n.Type, n.Message, n.SenderID, n.ReceiverID).
		Scan(&n.CreatedAt)
}

func (r *notificationRepository) ListByReceiver(ctx context.Context, receiverID string, limit, offset int) ([]*domain.Notification, error) {
	notifications := []*domain.Notification{}
	query := `
		SELECT id, type, message, sender_id, receiver_id, created_at, read
		FROM notifications
		WHERE receiver_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	err := r.db.SelectContext(ctx, &notifications, query, receiverID, limit, offset)
	return notifications, err
}

func (r *notificationRepository) CountUnread(ctx context.Context, receiverID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM notifications WHERE receiver_id = $1 AND read = false`
	err := r.db.GetContext(ctx, &count, query, receiverID)
	return count, err
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, receiverID string) error {
	query := `UPDATE notifications SET read = true WHERE id = $1 AND receiver_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, receiverID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}
