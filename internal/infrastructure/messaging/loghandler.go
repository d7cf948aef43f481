package messaging

import (
	"hotelops/internal/domain/shared/events"
	"hotelops/internal/shared/logger"
)

// LogHandler writes every event to the structured log. It is subscribed
// when no broker is configured so mutations stay traceable.
type LogHandler struct {
	logger logger.Interface
}

func NewLogHandler(log logger.Interface) *LogHandler {
	return &LogHandler{logger: log.Named("events")}
}

func (h *LogHandler) CanHandle(string) bool { return true }

func (h *LogHandler) Handle(event events.DomainEvent) error {
	fields := []any{
		"event_type", event.GetEventType(),
		"event_id", event.GetEventID(),
		"occurred_at", event.GetOccurredAt(),
	}
	if m, ok := event.(events.MutationEvent); ok {
		fields = append(fields, "entity_ids", m.EntityIDs)
	}
	h.logger.Infow("mutation committed", fields...)
	return nil
}
