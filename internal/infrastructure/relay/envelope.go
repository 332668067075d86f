// Package relay carries real-time events from a process without a hub to the
// relay process that owns one.
package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Envelope is one event addressed to one user.
type Envelope struct {
	UserID string          `json:"user_id"`
	Event  string          `json:"event"`
	Data   json.RawMessage `json:"data,omitempty"`
}

func NewEnvelope(userID, event string, payload any) (Envelope, error) {
	env := Envelope{UserID: userID, Event: event}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return Envelope{}, fmt.Errorf("marshal %s payload: %w", event, err)
		}
		env.Data = data
	}
	return env, nil
}

func DecodeEnvelope(raw []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	if env.UserID == "" || env.Event == "" {
		return Envelope{}, fmt.Errorf("decode envelope: user_id and event are required")
	}
	return env, nil
}

// Sink receives relayed events, normally a realtime.Hub.
type Sink interface {
	EmitToUser(ctx context.Context, userID, event string, payload any) error
}

// Forward decodes raw and hands the event to sink.
func Forward(ctx context.Context, sink Sink, raw []byte) error {
	env, err := DecodeEnvelope(raw)
	if err != nil {
		return err
	}
	var payload any
	if len(env.Data) > 0 {
		payload = env.Data
	}
	return sink.EmitToUser(ctx, env.UserID, env.Event, payload)
}

// Discard is the fallback used when no transport is configured. It only logs.
type Discard struct {
	Logger *slog.Logger
}

func (d Discard) EmitToUser(ctx context.Context, userID, event string, _ any) error {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "no fallback transport, event not relayed", "user_id", userID, "event", event)
	return nil
}
