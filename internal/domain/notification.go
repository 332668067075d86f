package domain

import "time"

const NotificationTypeMatchRequest = "match-request"

// Real-time event names delivered to a receiver's channel.
const (
	EventNewNotification = "new-notification"
	EventRefreshRequests = "refresh-requests"
)

// Notification is the durable record of an event addressed to a receiver.
// It exists whether or not real-time delivery succeeded.
type Notification struct {
	ID         string    `json:"id" db:"id"`
	Type       string    `json:"type" db:"type"`
	Message    string    `json:"message" db:"message"`
	SenderID   string    `json:"senderId" db:"sender_id"`
	ReceiverID string    `json:"receiverId" db:"receiver_id"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	Read       bool      `json:"read" db:"read"`
}

type NotificationSender struct {
	Name  string  `json:"name"`
	Image *string `json:"image"`
}

// NotificationPayload is the body of the new-notification event.
type NotificationPayload struct {
	*Notification
	Sender NotificationSender `json:"sender"`
}
