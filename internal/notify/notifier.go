// Package notify shows transient notifications and copies record
// identifiers to the clipboard.
package notify

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"seekterm/internal/domain"
	"seekterm/internal/eventbus"
)

// Default notification timing
const (
	DefaultEntranceDelay   = 100 * time.Millisecond
	DefaultDisplayDuration = 3 * time.Second
	DefaultExitDuration    = 300 * time.Millisecond
)

// Timing controls the notification animation. Leaving starts Display after
// the notification is shown; removal follows Exit later.
type Timing struct {
	Entrance time.Duration
	Display  time.Duration
	Exit     time.Duration
}

// DefaultTiming returns the stock timing
func DefaultTiming() Timing {
	return Timing{
		Entrance: DefaultEntranceDelay,
		Display:  DefaultDisplayDuration,
		Exit:     DefaultExitDuration,
	}
}

// Task is a scheduled callback that can be cancelled
type Task interface {
	Stop() bool
}

// Scheduler runs callbacks after a delay
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Task
}

// WallClock schedules with time.AfterFunc
type WallClock struct{}

func (WallClock) AfterFunc(d time.Duration, f func()) Task {
	return time.AfterFunc(d, f)
}

// Listener observes the visible notification; nil means none is visible.
// It is called with the notifier locked and must not call back into it.
type Listener func(n *domain.Notification)

// Notifier keeps at most one notification visible. Showing a new one
// removes the previous one at once and cancels its pending transitions.
type Notifier struct {
	mu       sync.Mutex
	sched    Scheduler
	timing   Timing
	listener Listener
	log      *zap.Logger

	current *domain.Notification
	pending []Task
	nextID  uint64
}

// Option configures a Notifier
type Option func(*Notifier)

// WithScheduler replaces the wall-clock scheduler
func WithScheduler(s Scheduler) Option { return func(n *Notifier) { n.sched = s } }

// WithTiming replaces the default timing
func WithTiming(t Timing) Option { return func(n *Notifier) { n.timing = t } }

// WithListener registers the change listener
func WithListener(l Listener) Option { return func(n *Notifier) { n.listener = l } }

// WithLogger sets the logger
func WithLogger(log *zap.Logger) Option { return func(n *Notifier) { n.log = log } }

// BusListener publishes every change as a NotificationChangedEvent
func BusListener(bus eventbus.EventBus) Listener {
	return func(n *domain.Notification) {
		bus.Publish(eventbus.NotificationChangedEvent{Notification: n})
	}
}

// NewNotifier creates a notifier
func NewNotifier(opts ...Option) *Notifier {
	n := &Notifier{
		sched:  WallClock{},
		timing: DefaultTiming(),
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	n.log = n.log.Named("notify")
	return n
}

// Show replaces whatever is visible with a new notification and returns
// its id
func (n *Notifier) Show(kind domain.NotificationKind, message string) uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.cancelPending()
	if n.current != nil {
		n.log.Debug("superseding notification", zap.Uint64("id", n.current.ID))
		n.current = nil
		n.emit()
	}

	n.nextID++
	id := n.nextID
	n.current = &domain.Notification{ID: id, Kind: kind, Message: message, Stage: domain.StageEntering}
	n.emit()

	n.pending = []Task{
		n.sched.AfterFunc(n.timing.Entrance, func() { n.advance(id, domain.StageShown) }),
		n.sched.AfterFunc(n.timing.Display, func() { n.advance(id, domain.StageLeaving) }),
		n.sched.AfterFunc(n.timing.Display+n.timing.Exit, func() { n.remove(id) }),
	}
	return id
}

// Current returns a copy of the visible notification, or nil
func (n *Notifier) Current() *domain.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return nil
	}
	c := *n.current
	return &c
}

// Dismiss removes the visible notification immediately
func (n *Notifier) Dismiss() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cancelPending()
	if n.current != nil {
		n.current = nil
		n.emit()
	}
}

// Close cancels pending transitions without notifying the listener
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cancelPending()
}

// advance and remove ignore callbacks for a notification that is no longer
// current; a stopped timer may already have fired and be waiting on mu.
func (n *Notifier) advance(id uint64, stage domain.NotificationStage) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil || n.current.ID != id || n.current.Stage >= stage {
		return
	}
	n.current.Stage = stage
	n.emit()
}

func (n *Notifier) remove(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil || n.current.ID != id {
		return
	}
	n.current = nil
	n.pending = nil
	n.emit()
}

func (n *Notifier) cancelPending() {
	for _, t := range n.pending {
		t.Stop()
	}
	n.pending = nil
}

func (n *Notifier) emit() {
	if n.listener == nil {
		return
	}
	if n.current == nil {
		n.listener(nil)
		return
	}
	c := *n.current
	n.listener(&c)
}
