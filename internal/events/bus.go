package events

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"
)

// EventListener processes events
type EventListener interface {
	HandleEvent(event Event) error
	Priority() int
	ID() string
}

// ListenerFunc adapts a function to EventListener
type ListenerFunc struct {
	Name  string
	Order int
	Fn    func(event Event) error
}

func (l *ListenerFunc) HandleEvent(event Event) error { return l.Fn(event) }
func (l *ListenerFunc) Priority() int                 { return l.Order }
func (l *ListenerFunc) ID() string                    { return l.Name }

// Bus delivers dungeon events to listeners in ascending priority order.
// A listener may cancel an event to stop later listeners seeing it; a
// failing listener does not.
type Bus struct {
	listeners map[EventType][]EventListener
	logger    *log.Logger
	mu        sync.RWMutex
}

// NewBus creates an event bus that logs to log.Default()
func NewBus() *Bus {
	return NewBusWithLogger(nil)
}

// NewBusWithLogger creates an event bus that logs to logger
func NewBusWithLogger(logger *log.Logger) *Bus {
	if logger == nil {
		logger = log.Default()
	}

	return &Bus{
		listeners: make(map[EventType][]EventListener),
		logger:    logger,
	}
}

// Subscribe adds a listener for specific event types
func (b *Bus) Subscribe(eventType EventType, listener EventListener) {
	b.mu.Lock()
	defer b.mu.Unlock()

	listeners := append(b.listeners[eventType], listener)
	slices.SortStableFunc(listeners, func(a, c EventListener) int {
		return a.Priority() - c.Priority()
	})
	b.listeners[eventType] = listeners

	b.logger.Printf("[EventBus] Subscribed listener %s to event %s with priority %d",
		listener.ID(), eventType, listener.Priority())
}

// SubscribeAll adds one listener for several event types
func (b *Bus) SubscribeAll(listener EventListener, eventTypes ...EventType) {
	for _, eventType := range eventTypes {
		b.Subscribe(eventType, listener)
	}
}

// Unsubscribe removes a listener
func (b *Bus) Unsubscribe(eventType EventType, listenerID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := slices.IndexFunc(b.listeners[eventType], func(l EventListener) bool {
		return l.ID() == listenerID
	})
	if i < 0 {
		return
	}

	b.listeners[eventType] = slices.Delete(b.listeners[eventType], i, i+1)
	b.logger.Printf("[EventBus] Unsubscribed listener %s from event %s", listenerID, eventType)
}

// HasListeners reports whether anything listens for eventType
func (b *Bus) HasListeners(eventType EventType) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.listeners[eventType]) > 0
}

// Emit sends an event to every listener for its type and returns the
// joined errors of the listeners that failed
func (b *Bus) Emit(event Event) error {
	b.mu.RLock()
	listeners := slices.Clone(b.listeners[event.GetType()])
	b.mu.RUnlock()

	var errs []error
	for _, listener := range listeners {
		if event.IsCancelled() {
			b.logger.Printf("[EventBus] Event %s cancelled, stopping propagation", event.GetType())
			break
		}

		if err := listener.HandleEvent(event); err != nil {
			errs = append(errs, fmt.Errorf("listener %s failed: %w", listener.ID(), err))
		}
	}

	return errors.Join(errs...)
}

// Clear removes all listeners
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners = make(map[EventType][]EventListener)
	b.logger.Printf("[EventBus] Cleared all listeners")
}
