package domain

import "time"

type MatchStatus string

const (
	MatchStatusPending  MatchStatus = "pending"
	MatchStatusAccepted MatchStatus = "accepted"
	MatchStatusDeclined MatchStatus = "declined"
)

// MatchRequest is a directed request from sender to receiver. At most one
// request per ordered (sender, receiver) pair is expected to exist.
type MatchRequest struct {
	ID         string      `json:"id" db:"id"`
	SenderID   string      `json:"userId" db:"sender_id"`
	ReceiverID string      `json:"matchId" db:"receiver_id"`
	Message    *string     `json:"message" db:"message"`
	Status     MatchStatus `json:"status" db:"status"`
	CreatedAt  time.Time   `json:"createdAt" db:"created_at"`
}

func (m *MatchRequest) HasUser(userID string) bool {
	return m.SenderID == userID || m.ReceiverID == userID
}

// GetOtherUserID returns the counterpart of userID in the request.
func (m *MatchRequest) GetOtherUserID(userID string) (string, bool) {
	if m.SenderID == userID {
		return m.ReceiverID, true
	}
	if m.ReceiverID == userID {
		return m.SenderID, true
	}
	return "", false
}

// PendingRequest is a received request joined with its sender.
type PendingRequest struct {
	*MatchRequest
	Sender *User `json:"sender"`
}
