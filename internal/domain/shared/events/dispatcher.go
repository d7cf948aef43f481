package events

import (
	"fmt"
	"strings"
	"sync"

	"hotelops/internal/shared/goroutine"
	"hotelops/internal/shared/logger"
)

// Wildcard subscribes a handler to every event type.
const Wildcard = "*"

// InMemoryEventDispatcher queues events on a bounded channel and delivers
// them to subscribers on a background goroutine. Publish never blocks: a full
// buffer drops the event with an error.
type InMemoryEventDispatcher struct {
	handlers map[string][]EventHandler
	mu       sync.RWMutex
	running  bool
	stopCh   chan struct{}
	eventCh  chan DomainEvent
	wg       sync.WaitGroup
	logger   logger.Interface
}

// NewInMemoryEventDispatcher creates a new in-memory event dispatcher
func NewInMemoryEventDispatcher(bufferSize int, log logger.Interface) *InMemoryEventDispatcher {
	if bufferSize <= 0 {
		bufferSize = 100
	}
	return &InMemoryEventDispatcher{
		handlers: make(map[string][]EventHandler),
		stopCh:   make(chan struct{}),
		eventCh:  make(chan DomainEvent, bufferSize),
		logger:   log,
	}
}

// Publish enqueues a single event
func (d *InMemoryEventDispatcher) Publish(event DomainEvent) error {
	d.mu.RLock()
	running := d.running
	d.mu.RUnlock()
	if !running {
		return fmt.Errorf("event dispatcher is not running")
	}

	select {
	case d.eventCh <- event:
		return nil
	default:
		return fmt.Errorf("event channel is full, dropped %s", event.GetEventType())
	}
}

// Subscribe registers a handler for an event type, or for all of them with
// Wildcard. A type ending in ".*" matches by prefix.
func (d *InMemoryEventDispatcher) Subscribe(eventType string, handler EventHandler) error {
	if eventType == "" {
		return fmt.Errorf("event type cannot be empty")
	}
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	d.mu.Lock()
	d.handlers[eventType] = append(d.handlers[eventType], handler)
	d.mu.Unlock()
	return nil
}

// Start starts the event dispatcher
func (d *InMemoryEventDispatcher) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running {
		return fmt.Errorf("event dispatcher is already running")
	}
	d.running = true

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		d.processEvents()
	}()
	return nil
}

// Stop drains queued events and waits for the loop to exit.
func (d *InMemoryEventDispatcher) Stop() error {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return fmt.Errorf("event dispatcher is not running")
	}
	d.running = false
	d.mu.Unlock()

	close(d.stopCh)
	d.wg.Wait()
	return nil
}

func (d *InMemoryEventDispatcher) processEvents() {
	for {
		select {
		case <-d.stopCh:
			for {
				select {
				case event := <-d.eventCh:
					d.handleEvent(event)
				default:
					return
				}
			}
		case event := <-d.eventCh:
			d.handleEvent(event)
		}
	}
}

func (d *InMemoryEventDispatcher) matching(eventType string) []EventHandler {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var out []EventHandler
	for key, handlers := range d.handlers {
		switch {
		case key == Wildcard, key == eventType:
		case strings.HasSuffix(key, ".*") && strings.HasPrefix(eventType, strings.TrimSuffix(key, "*")):
		default:
			continue
		}
		out = append(out, handlers...)
	}
	return out
}

// handleEvent delivers synchronously so Stop can wait for in-flight work;
// panics in handlers are contained per handler.
func (d *InMemoryEventDispatcher) handleEvent(event DomainEvent) {
	for _, handler := range d.matching(event.GetEventType()) {
		if !handler.CanHandle(event.GetEventType()) {
			continue
		}
		goroutine.Protect(d.logger, "event-handler:"+event.GetEventType(), func() {
			if err := handler.Handle(event); err != nil {
				d.logger.Errorw("event handler failed",
					"event_type", event.GetEventType(),
					"event_id", event.GetEventID(),
					"error", err,
				)
			}
		})
	}
}

// HandlerFunc adapts a function into an EventHandler that accepts every type.
type HandlerFunc func(DomainEvent) error

func (f HandlerFunc) Handle(event DomainEvent) error { return f(event) }
func (f HandlerFunc) CanHandle(string) bool          { return true }
