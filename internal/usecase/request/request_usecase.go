package request

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gdugdh24/roommate-backend/internal/domain"
	"github.com/gdugdh24/roommate-backend/internal/repository"
	"github.com/gdugdh24/roommate-backend/internal/usecase/notification"
	"github.com/gdugdh24/roommate-backend/internal/usecase/quota"
)

// Notifier is the part of the notification dispatcher the workflow needs.
type Notifier interface {
	Dispatch(ctx context.Context, in notification.DispatchInput) (*domain.Notification, error)
}

// RequestUseCase runs the match-request workflow: duplicate check, quota
// check, persist, optional message, notify.
//
// The duplicate and quota checks are read-then-write with no lock and no
// unique constraint behind them. Two concurrent calls for the same pair, or
// two calls that both observe a count below the limit, can both persist.
// Steps already completed are not rolled back if a later step fails or the
// caller goes away.
type RequestUseCase struct {
	matchRepo   repository.MatchRepository
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	guard       *quota.Guard
	notifier    Notifier
	logger      *slog.Logger
	now         func() time.Time
}

func NewRequestUseCase(
	matchRepo repository.MatchRepository,
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	guard *quota.Guard,
	notifier Notifier,
	logger *slog.Logger,
) *RequestUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &RequestUseCase{
		matchRepo:   matchRepo,
		messageRepo: messageRepo,
		userRepo:    userRepo,
		guard:       guard,
		notifier:    notifier,
		logger:      logger,
		now:         time.Now,
	}
}

// CreateMatchRequest is the body of a new match request
type CreateMatchRequest struct {
	MatchID string  `json:"matchId"`
	Message *string `json:"message"`
}

// PendingRequestResponse lists requests received by the caller
type PendingRequestResponse struct {
	Requests []*domain.PendingRequest `json:"requests"`
}

// CreateRequest creates a pending match request from senderID.
func (uc *RequestUseCase) CreateRequest(ctx context.Context, senderID string, req *CreateMatchRequest) (*domain.MatchRequest, error) {
	if strings.TrimSpace(senderID) == "" {
		return nil, domain.ErrUnauthenticated
	}
	if req == nil || strings.TrimSpace(req.MatchID) == "" {
		return nil, fmt.Errorf("%w: match id is required", domain.ErrInvalidRequest)
	}
	receiverID := strings.TrimSpace(req.MatchID)
	if receiverID == senderID {
		return nil, fmt.Errorf("%w: cannot send a request to yourself", domain.ErrInvalidRequest)
	}

	if _, err := uc.userRepo.GetByID(ctx, receiverID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: unknown match id", domain.ErrInvalidRequest)
		}
		return nil, domain.Unavailable("get receiver", err)
	}

	existing, err := uc.matchRepo.FindOne(ctx, senderID, receiverID)
	if err != nil && !errors.Is(err, domain.ErrMatchNotFound) {
		return nil, domain.Unavailable("find existing request", err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicateRequest
	}

	if err := uc.checkQuota(ctx, senderID); err != nil {
		return nil, err
	}

	match := &domain.MatchRequest{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Message:    req.Message,
		Status:     domain.MatchStatusPending,
	}
	if err := uc.matchRepo.Create(ctx, match); err != nil {
		// The receiver can disappear between the lookup and the insert.
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: unknown match id", domain.ErrInvalidRequest)
		}
		return nil, domain.Unavailable("create match request", err)
	}

	// The match is durable from here on; later failures only warn.
	if req.Message != nil && strings.TrimSpace(*req.Message) != "" {
		msg := &domain.Message{
			SenderID:   senderID,
			ReceiverID: receiverID,
			Message:    *req.Message,
			Timestamp:  uc.now(),
		}
		if err := uc.messageRepo.Create(ctx, msg); err != nil {
			uc.logger.WarnContext(ctx, "failed to persist request message",
				"sender_id", senderID, "receiver_id", receiverID, "error", err)
		}
	}

	uc.notifyReceiver(ctx, senderID, receiverID)

	return match, nil
}

func (uc *RequestUseCase) checkQuota(ctx context.Context, senderID string) error {
	sender, err := uc.userRepo.GetByID(ctx, senderID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUnauthenticated
		}
		return domain.Unavailable("get sender", err)
	}
	if sender.IsPremium {
		return nil
	}

	from, to := uc.guard.Window(uc.now())
	count, err := uc.matchRepo.CountSince(ctx, senderID, from, to)
	if err != nil {
		return domain.Unavailable("count requests today", err)
	}
	if !uc.guard.MayRequest(false, count) {
		return domain.ErrQuotaExceeded
	}
	return nil
}

// notifyReceiver is skipped silently when either user cannot be resolved.
func (uc *RequestUseCase) notifyReceiver(ctx context.Context, senderID, receiverID string) {
	sender, err := uc.userRepo.GetByID(ctx, senderID)
	if err != nil {
		uc.logger.DebugContext(ctx, "skipping notification, sender lookup failed", "sender_id", senderID, "error", err)
		return
	}
	if _, err := uc.userRepo.GetByID(ctx, receiverID); err != nil {
		uc.logger.DebugContext(ctx, "skipping notification, receiver lookup failed", "receiver_id", receiverID, "error", err)
		return
	}

	_, err = uc.notifier.Dispatch(ctx, notification.DispatchInput{
		Type:        domain.NotificationTypeMatchRequest,
		Message:     fmt.Sprintf("%s sent you a match request.", sender.Name),
		SenderID:    senderID,
		ReceiverID:  receiverID,
		SenderName:  sender.Name,
		SenderImage: sender.Image,
	})
	if err != nil {
		uc.logger.WarnContext(ctx, "failed to persist notification",
			"sender_id", senderID, "receiver_id", receiverID, "error", err)
	}
}

// ListPending returns pending requests received by receiverID, each joined
// with its sender and the sender's preferences. Order is whatever the store
// returns. Requests whose sender no longer resolves are skipped.
func (uc *RequestUseCase) ListPending(ctx context.Context, receiverID string) (*PendingRequestResponse, error) {
	if strings.TrimSpace(receiverID) == "" {
		return nil, domain.ErrUnauthenticated
	}

	matches, err := uc.matchRepo.ListPendingForReceiver(ctx, receiverID)
	if err != nil {
		return nil, domain.Unavailable("list pending requests", err)
	}

	requests := make([]*domain.PendingRequest, 0, len(matches))
	for _, m := range matches {
		sender, err := uc.userRepo.GetByID(ctx, m.SenderID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				continue
			}
			return nil, domain.Unavailable("get request sender", err)
		}
		requests = append(requests, &domain.PendingRequest{MatchRequest: m, Sender: sender})
	}

	return &PendingRequestResponse{Requests: requests}, nil
}
