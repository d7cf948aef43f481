package events

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DomainEvent represents a domain event interface
type DomainEvent interface {
	GetEventID() string
	GetEventType() string
	GetOccurredAt() time.Time
}

const mutationNamespace = "hotel"

// Actions carried by MutationEvent.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
	ActionBatch   = "batch_updated"
)

// MutationEvent is emitted after a confirmed mutation has been committed.
// EventType has the form hotel.<entity>.<action>, which doubles as the AMQP
// routing key.
type MutationEvent struct {
	EventID    string         `json:"event_id"`
	EventType  string         `json:"event_type"`
	EntityType string         `json:"entity_type"`
	Action     string         `json:"action"`
	EntityIDs  []uint         `json:"entity_ids"`
	Payload    map[string]any `json:"payload,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// NewMutationEvent stamps a new event with a random id and the current time.
func NewMutationEvent(entityType, action string, ids []uint, payload map[string]any) MutationEvent {
	return MutationEvent{
		EventID:    uuid.NewString(),
		EventType:  fmt.Sprintf("%s.%s.%s", mutationNamespace, entityType, action),
		EntityType: entityType,
		Action:     action,
		EntityIDs:  ids,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
}

// IsMutationEventType reports whether eventType has the form
// hotel.<entity>.<action> with both segments present.
func IsMutationEventType(eventType string) bool {
	parts := strings.Split(eventType, ".")
	if len(parts) != 3 || parts[0] != mutationNamespace {
		return false
	}
	return parts[1] != "" && parts[2] != ""
}

func (e MutationEvent) GetEventID() string       { return e.EventID }
func (e MutationEvent) GetEventType() string     { return e.EventType }
func (e MutationEvent) GetOccurredAt() time.Time { return e.OccurredAt }

// EventHandler represents a handler for domain events
type EventHandler interface {
	Handle(event DomainEvent) error
	CanHandle(eventType string) bool
}

// EventPublisher publishes domain events
type EventPublisher interface {
	Publish(event DomainEvent) error
}

// EventDispatcher buffers published events and fans them out to subscribers.
type EventDispatcher interface {
	EventPublisher
	Subscribe(eventType string, handler EventHandler) error
	Start() error
	Stop() error
}
