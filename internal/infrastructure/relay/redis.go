package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// RedisPublisher publishes envelopes on a Redis pub/sub channel.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

func (p *RedisPublisher) EmitToUser(ctx context.Context, userID, event string, payload any) error {
	env, err := NewEnvelope(userID, event, payload)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(env)
	if err != nil {
		return err
	}
	if err := p.client.Publish(ctx, p.channel, raw).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}

// RedisSubscriber forwards envelopes from a Redis channel into a sink.
type RedisSubscriber struct {
	client  *redis.Client
	channel string
	logger  *slog.Logger
}

func NewRedisSubscriber(client *redis.Client, channel string, logger *slog.Logger) *RedisSubscriber {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisSubscriber{client: client, channel: channel, logger: logger}
}

// Run blocks until ctx is cancelled or the subscription fails.
func (s *RedisSubscriber) Run(ctx context.Context, sink Sink) error {
	sub := s.client.Subscribe(ctx, s.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("redis subscribe %s: %w", s.channel, err)
	}
	s.logger.Info("relay subscribed", "transport", "redis", "channel", s.channel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return fmt.Errorf("redis subscription %s closed", s.channel)
			}
			if err := Forward(ctx, sink, []byte(msg.Payload)); err != nil {
				s.logger.Warn("dropping relayed event", "error", err)
			}
		}
	}
}
