package repository

import (
	"context"
	"time"

	"github.com/gdugdh24/roommate-backend/internal/domain"
)

type MatchRepository interface {
	Create(ctx context.Context, match *domain.MatchRequest) error
	// FindOne returns the request for the ordered (senderID, receiverID)
	// pair, or domain.ErrMatchNotFound.
	FindOne(ctx context.Context, senderID, receiverID string) (*domain.MatchRequest, error)
	// CountSince counts requests created by senderID within [from, to],
	// regardless of status.
	CountSince(ctx context.Context, senderID string, from, to time.Time) (int, error)
	ListPendingForReceiver(ctx context.Context, receiverID string) ([]*domain.MatchRequest, error)
	// ListCounterpartIDs returns every user that has a request with userID
	// in either direction.
	ListCounterpartIDs(ctx context.Context, userID string) ([]string, error)
}
