// Package messaging delivers committed mutation events to external
// consumers. Publishers implement events.EventHandler and are subscribed to
// the in-process dispatcher; a failed publish is logged and never reaches
// the request that caused it.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"hotelops/internal/domain/shared/events"
	"hotelops/internal/shared/config"
	"hotelops/internal/shared/logger"
)

const (
	publishTimeout = 5 * time.Second
	redialBackoff  = 2 * time.Second
)

// AMQPPublisher publishes events to a durable topic exchange. The event type
// (hotel.<entity>.<action>) is the routing key.
type AMQPPublisher struct {
	url      string
	exchange string
	logger   logger.Interface

	mu        sync.Mutex
	conn      *amqp.Connection
	ch        *amqp.Channel
	lastDial  time.Time
	dialFunc  func(url string) (*amqp.Connection, error)
	closeOnce sync.Once
}

// NewAMQPPublisher builds a publisher. The connection is opened lazily on
// the first event and re-opened after the broker drops it.
func NewAMQPPublisher(cfg *config.EventsConfig, log logger.Interface) *AMQPPublisher {
	exchange := cfg.Exchange
	if exchange == "" {
		exchange = "hotel.events"
	}
	return &AMQPPublisher{
		url:      cfg.AMQPURL,
		exchange: exchange,
		logger:   log.Named("amqp"),
		dialFunc: amqp.Dial,
	}
}

// CanHandle accepts every hotel mutation event.
func (p *AMQPPublisher) CanHandle(eventType string) bool {
	return events.IsMutationEventType(eventType)
}

// Handle publishes one event. Errors are returned so the dispatcher logs them.
func (p *AMQPPublisher) Handle(event events.DomainEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	ch, err := p.channel()
	if err != nil {
		return err
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.GetEventID(),
		Type:         event.GetEventType(),
		Timestamp:    event.GetOccurredAt(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, p.exchange, event.GetEventType(), false, false, msg); err != nil {
		p.reset()
		p.logger.Warnw("failed to publish event",
			"event_type", event.GetEventType(),
			"event_id", event.GetEventID(),
			"error", err,
		)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debugw("event published",
		"exchange", p.exchange,
		"routing_key", event.GetEventType(),
		"event_id", event.GetEventID(),
	)
	return nil
}

// channel returns an open channel, dialing when needed. Dials are spaced by
// redialBackoff so a dead broker does not add latency to every event.
func (p *AMQPPublisher) channel() (*amqp.Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil && !p.ch.IsClosed() && p.conn != nil && !p.conn.IsClosed() {
		return p.ch, nil
	}
	if since := time.Since(p.lastDial); !p.lastDial.IsZero() && since < redialBackoff {
		return nil, fmt.Errorf("broker unavailable, next dial in %s", (redialBackoff - since).Round(time.Millisecond))
	}
	p.lastDial = time.Now()
	p.closeLocked()

	conn, err := p.dialFunc(p.url)
	if err != nil {
		p.logger.Warnw("amqp dial failed", "error", err)
		return nil, fmt.Errorf("failed to dial broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(
		p.exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", p.exchange, err)
	}

	p.conn, p.ch = conn, ch
	p.logger.Infow("amqp publisher connected", "exchange", p.exchange)
	return ch, nil
}

func (p *AMQPPublisher) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeLocked()
}

func (p *AMQPPublisher) closeLocked() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

// Close releases the broker connection.
func (p *AMQPPublisher) Close() error {
	p.closeOnce.Do(p.reset)
	return nil
}
