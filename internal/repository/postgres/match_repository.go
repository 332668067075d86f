package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gdugdh24/roommate-backend/internal/domain"
	"github.com/gdugdh24/roommate-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type matchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) repository.MatchRepository {
	return &matchRepository{db: db}
}

// Create inserts the request. There is no unique constraint on
// (sender_id, receiver_id); callers check with FindOne first.
func (r *matchRepository) Create(ctx context.Context, match *domain.MatchRequest) error {
	if match.ID == "" {
		match.ID = uuid.NewString()
	}
	if match.Status == "" {
		match.Status = domain.MatchStatusPending
	}

	query := `
		INSERT INTO match_requests (id, sender_id, receiver_id, message, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query, match.ID, match.SenderID, match.ReceiverID, match.Message, match.Status).
		Scan(&match.CreatedAt)
	return translateWriteError(err)
}

func (r *matchRepository) FindOne(ctx context.Context, senderID, receiverID string) (*domain.MatchRequest, error) {
	var match domain.MatchRequest
	query := `
		SELECT id, sender_id, receiver_id, message, status, created_at
		FROM match_requests
		WHERE sender_id = $1 AND receiver_id = $2
		LIMIT 1
	`
	err := r.db.GetContext(ctx, &match, query, senderID, receiverID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) CountSince(ctx context.Context, senderID string, from, to time.Time) (int, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM match_requests
		WHERE sender_id = $1 AND created_at >= $2 AND created_at <= $3
	`
	err := r.db.GetContext(ctx, &count, query, senderID, from, to)
	return count, err
}

func (r *matchRepository) ListPendingForReceiver(ctx context.Context, receiverID string) ([]*domain.MatchRequest, error) {
	matches := []*domain.MatchRequest{}
	query := `
		SELECT id, sender_id, receiver_id, message, status, created_at
		FROM match_requests
		WHERE receiver_id = $1 AND status = $2
	`
	err := r.db.SelectContext(ctx, &matches, query, receiverID, domain.MatchStatusPending)
	return matches, err
}

func (r *matchRepository) ListCounterpartIDs(ctx context.Context, userID string) ([]string, error) {
	ids := []string{}
	query := `
		SELECT DISTINCT CASE WHEN sender_id = $1 THEN receiver_id ELSE sender_id END
		FROM match_requests
		WHERE sender_id = $1 OR receiver_id = $1
	`
	err := r.db.SelectContext(ctx, &ids, query, userID)
	return ids, err
}
