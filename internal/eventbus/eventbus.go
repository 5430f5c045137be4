package eventbus

import (
	"runtime/debug"
	"sync"

	"go.uber.org/zap"

	"seekterm/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventSearchStarted       = domain.EventSearchStarted
	EventSearchIgnored       = domain.EventSearchIgnored
	EventLifecycleChanged    = domain.EventLifecycleChanged
	EventStatusChanged       = domain.EventStatusChanged
	EventResultsCleared      = domain.EventResultsCleared
	EventResultsPresented    = domain.EventResultsPresented
	EventSearchFailed        = domain.EventSearchFailed
	EventNotificationChanged = domain.EventNotificationChanged
	EventHealthChecked       = domain.EventHealthChecked
)

// AllEventTypes lists every event type the bus carries
var AllEventTypes = []EventType{
	EventSearchStarted,
	EventSearchIgnored,
	EventLifecycleChanged,
	EventStatusChanged,
	EventResultsCleared,
	EventResultsPresented,
	EventSearchFailed,
	EventNotificationChanged,
	EventHealthChecked,
}

// Re-export domain event types
type SearchStartedEvent = domain.SearchStartedEvent
type SearchIgnoredEvent = domain.SearchIgnoredEvent
type LifecycleChangedEvent = domain.LifecycleChangedEvent
type StatusChangedEvent = domain.StatusChangedEvent
type ResultsClearedEvent = domain.ResultsClearedEvent
type ResultsPresentedEvent = domain.ResultsPresentedEvent
type SearchFailedEvent = domain.SearchFailedEvent
type NotificationChangedEvent = domain.NotificationChangedEvent
type HealthCheckedEvent = domain.HealthCheckedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	Close()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus delivers events to handlers in publish order on a single dispatcher
// goroutine. A slow handler delays every later event.
type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]subscription
	nextID    uint64
	eventChan chan DomainEvent
	quit      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
	log       *zap.Logger
}

// New creates a new event bus
func New(log *zap.Logger) EventBus {
	if log == nil {
		log = zap.NewNop()
	}
	b := &bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, 256),
		quit:      make(chan struct{}),
		log:       log.Named("eventbus"),
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish queues an event. It blocks while the queue is full so lifecycle
// events are never dropped; after Close it is a no-op.
func (b *bus) Publish(event DomainEvent) {
	switch event.Type() {
	case EventStatusChanged, EventNotificationChanged:
		// too frequent to log
	default:
		b.log.Debug("publishing event", zap.String("type", string(event.Type())))
	}

	select {
	case <-b.quit:
		return
	default:
	}

	select {
	case b.eventChan <- event:
	case <-b.quit:
	}
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

// Close stops the dispatcher after delivering already queued events
func (b *bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
	})
	b.wg.Wait()
}

func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.deliver(event)

		case <-b.quit:
			for {
				select {
				case event := <-b.eventChan:
					b.deliver(event)
				default:
					return
				}
			}
		}
	}
}

func (b *bus) deliver(event DomainEvent) {
	b.mu.RLock()
	subs := make([]subscription, len(b.handlers[event.Type()]))
	copy(subs, b.handlers[event.Type()])
	b.mu.RUnlock()

	for _, s := range subs {
		b.call(s.handler, event)
	}
}

func (b *bus) call(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("event handler panic",
				zap.String("type", string(event.Type())),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
		}
	}()
	h(event)
}
