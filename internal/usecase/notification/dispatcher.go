package notification

import (
	"context"
	"log/slog"
	"time"

	"github.com/gdugdh24/roommate-backend/internal/domain"
	"github.com/gdugdh24/roommate-backend/internal/repository"
)

const deliveryTimeout = 3 * time.Second

// RealTimeChannel delivers events to connected receivers. Available reports
// whether a live hub backs the channel at all.
type RealTimeChannel interface {
	Available() bool
	IsConnected(userID string) bool
	EmitToUser(ctx context.Context, userID, event string, payload any) error
}

// Emitter is the fallback delivery path used when no hub is available.
type Emitter interface {
	EmitToUser(ctx context.Context, userID, event string, payload any) error
}

type DispatchInput struct {
	Type        string
	Message     string
	SenderID    string
	ReceiverID  string
	SenderName  string
	SenderImage *string
}

// Dispatcher persists a notification and then attempts best-effort
// real-time delivery. Primary and fallback are fixed at construction.
type Dispatcher struct {
	notificationRepo repository.NotificationRepository
	primary          RealTimeChannel
	fallback         Emitter
	logger           *slog.Logger
}

func NewDispatcher(
	notificationRepo repository.NotificationRepository,
	primary RealTimeChannel,
	fallback Emitter,
	logger *slog.Logger,
) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		notificationRepo: notificationRepo,
		primary:          primary,
		fallback:         fallback,
		logger:           logger,
	}
}

// Dispatch returns once the notification is persisted. Delivery failures are
// logged and never returned.
func (d *Dispatcher) Dispatch(ctx context.Context, in DispatchInput) (*domain.Notification, error) {
	n := &domain.Notification{
		Type:       in.Type,
		Message:    in.Message,
		SenderID:   in.SenderID,
		ReceiverID: in.ReceiverID,
	}
	if err := d.notificationRepo.Create(ctx, n); err != nil {
		return nil, domain.Unavailable("create notification", err)
	}

	payload := domain.NotificationPayload{
		Notification: n,
		Sender: domain.NotificationSender{
			Name:  in.SenderName,
			Image: in.SenderImage,
		},
	}

	// Delivery outlives a disconnected caller; the record is already durable.
	deliverCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), deliveryTimeout)
	defer cancel()
	d.deliver(deliverCtx, n.ReceiverID, payload)

	return n, nil
}

func (d *Dispatcher) deliver(ctx context.Context, receiverID string, payload domain.NotificationPayload) {
	log := d.logger.With("receiver_id", receiverID, "notification_id", payload.ID)

	if d.primary != nil && d.primary.Available() {
		if !d.primary.IsConnected(receiverID) {
			log.DebugContext(ctx, "receiver offline, notification left for next fetch")
			return
		}
		if err := emitAll(ctx, d.primary, receiverID, payload); err != nil {
			log.WarnContext(ctx, "real-time delivery failed", "error", err)
		}
		return
	}

	if d.fallback == nil {
		log.WarnContext(ctx, "no real-time hub and no fallback channel configured")
		return
	}
	if err := emitAll(ctx, d.fallback, receiverID, payload); err != nil {
		log.WarnContext(ctx, "fallback delivery failed", "error", err)
	}
}

// emitAll sends the notification followed by the request-list refresh signal.
func emitAll(ctx context.Context, e Emitter, receiverID string, payload domain.NotificationPayload) error {
	if err := e.EmitToUser(ctx, receiverID, domain.EventNewNotification, payload); err != nil {
		return err
	}
	return e.EmitToUser(ctx, receiverID, domain.EventRefreshRequests, nil)
}
