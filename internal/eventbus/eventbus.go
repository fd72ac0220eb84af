package eventbus

import (
	"log"
	"runtime/debug"
	"sync"

	"sketchedit/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventHandlesInvalidated        = domain.EventHandlesInvalidated
	EventDocumentChanged           = domain.EventDocumentChanged
	EventMessage                   = domain.EventMessage
	EventSelectionChanged          = domain.EventSelectionChanged
	EventSelectionCleared          = domain.EventSelectionCleared
	EventPendingChanged            = domain.EventPendingChanged
	EventConfigChanged             = domain.EventConfigChanged
	EventCommandReferenceRequested = domain.EventCommandReferenceRequested
	EventQuitRequested             = domain.EventQuitRequested
)

// Re-export domain event types
type HandlesInvalidatedEvent = domain.HandlesInvalidatedEvent
type DocumentChangedEvent = domain.DocumentChangedEvent
type MessageEvent = domain.MessageEvent
type SelectionChangedEvent = domain.SelectionChangedEvent
type SelectionClearedEvent = domain.SelectionClearedEvent
type PendingChangedEvent = domain.PendingChangedEvent
type ConfigChangedEvent = domain.ConfigChangedEvent
type CommandReferenceRequestedEvent = domain.CommandReferenceRequestedEvent
type QuitRequestedEvent = domain.QuitRequestedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus.
// Publish delivers to every subscriber before it returns, so a handler
// observes document state exactly as the publisher left it.
type bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]subscription
	nextID   uint64
}

// New creates a new event bus
func New() EventBus {
	return &bus{
		handlers: make(map[EventType][]subscription),
	}
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	// Skip logging for high-frequency events
	switch event.Type() {
	case EventSelectionChanged, EventPendingChanged:
	default:
		log.Printf("EventBus: Publishing event %s", event.Type())
	}

	// Copy so handlers may subscribe or publish without holding the lock
	b.mu.RLock()
	subs := make([]subscription, len(b.handlers[event.Type()]))
	copy(subs, b.handlers[event.Type()])
	b.mu.RUnlock()

	for _, sub := range subs {
		b.deliver(sub.handler, event)
	}
}

func (b *bus) deliver(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Event handler panic for %s: %v\nStack: %s", event.Type(), r, debug.Stack())
		}
	}()
	h(event)
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}
