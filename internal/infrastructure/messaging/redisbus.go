package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"hotelops/internal/domain/shared/events"
	"hotelops/internal/shared/logger"
)

// MutationChannel is the Redis Pub/Sub channel carrying mutation events
// between service instances.
const MutationChannel = "hotelops:mutations"

// MutationEventHandler receives events read back from the channel.
type MutationEventHandler func(ctx context.Context, event events.MutationEvent)

// RedisEventBus fans mutation events out over Redis Pub/Sub so other
// instances (dashboards, caches) can react to changes made here.
type RedisEventBus struct {
	client *redis.Client
	logger logger.Interface
}

func NewRedisEventBus(client *redis.Client, log logger.Interface) *RedisEventBus {
	return &RedisEventBus{client: client, logger: log.Named("redis-bus")}
}

func (b *RedisEventBus) CanHandle(eventType string) bool {
	return events.IsMutationEventType(eventType)
}

// Handle publishes a dispatcher event on MutationChannel.
func (b *RedisEventBus) Handle(event events.DomainEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	return b.Publish(ctx, event)
}

func (b *RedisEventBus) Publish(ctx context.Context, event events.DomainEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := b.client.Publish(ctx, MutationChannel, data).Err(); err != nil {
		b.logger.Errorw("failed to publish mutation event",
			"event_type", event.GetEventType(),
			"event_id", event.GetEventID(),
			"error", err,
		)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	b.logger.Debugw("mutation event published",
		"event_type", event.GetEventType(),
		"event_id", event.GetEventID(),
	)
	return nil
}

// Subscribe blocks, delivering each received event to handler until ctx ends.
func (b *RedisEventBus) Subscribe(ctx context.Context, handler MutationEventHandler) error {
	sub := b.client.Subscribe(ctx, MutationChannel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to channel: %w", err)
	}
	b.logger.Infow("subscribed to mutation events", "channel", MutationChannel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				b.logger.Warnw("mutation event channel closed")
				return nil
			}
			var event events.MutationEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				b.logger.Warnw("failed to unmarshal mutation event",
					"payload", msg.Payload,
					"error", err,
				)
				continue
			}
			handler(ctx, event)
		}
	}
}
