package service

import "sync"

// EventType defines the type of event
type EventType string

const (
	EventReminderSaved     EventType = "reminder_saved"
	EventReminderDeleted   EventType = "reminder_deleted"
	EventRemindersCleared  EventType = "reminders_cleared"
	EventRemindersImported EventType = "reminders_imported"
)

// Event represents an event that occurred in the system
type Event struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload,omitempty"`
}

// Handler receives published events
type Handler func(Event)

// EventBus allows publishing and subscribing to events
type EventBus struct {
	mu       sync.RWMutex
	handlers []Handler
}

// NewEventBus creates a new event bus
func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make([]Handler, 0),
	}
}

// Subscribe adds a handler to receive events
func (eb *EventBus) Subscribe(h Handler) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.handlers = append(eb.handlers, h)
}

// Publish delivers an event to every handler in subscription order
func (eb *EventBus) Publish(event Event) {
	eb.mu.RLock()
	handlers := make([]Handler, len(eb.handlers))
	copy(handlers, eb.handlers)
	eb.mu.RUnlock()

	for _, h := range handlers {
		h(event)
	}
}
