package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchStarted       EventType = "SearchStarted"
	EventSearchIgnored       EventType = "SearchIgnored"
	EventLifecycleChanged    EventType = "LifecycleChanged"
	EventStatusChanged       EventType = "StatusChanged"
	EventResultsCleared      EventType = "ResultsCleared"
	EventResultsPresented    EventType = "ResultsPresented"
	EventSearchFailed        EventType = "SearchFailed"
	EventNotificationChanged EventType = "NotificationChanged"
	EventHealthChecked       EventType = "HealthChecked"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchStartedEvent is emitted when a controller accepts a query
type SearchStartedEvent struct {
	SearchID string
	Query    SearchQuery
}

func (e SearchStartedEvent) Type() EventType { return EventSearchStarted }

// SearchIgnoredEvent is emitted when a query arrives while another search is in flight
type SearchIgnoredEvent struct {
	Query string
}

func (e SearchIgnoredEvent) Type() EventType { return EventSearchIgnored }

// LifecycleChangedEvent is emitted on every lifecycle transition
type LifecycleChangedEvent struct {
	SearchID string
	State    LifecycleState
}

func (e LifecycleChangedEvent) Type() EventType { return EventLifecycleChanged }

// StatusChangedEvent carries the status side channel: a label and a percentage.
// Visible is false once the status was cleared.
type StatusChangedEvent struct {
	Text     string
	Progress int
	Visible  bool
}

func (e StatusChangedEvent) Type() EventType { return EventStatusChanged }

// ResultsClearedEvent is emitted when the previously rendered set is removed
type ResultsClearedEvent struct{}

func (e ResultsClearedEvent) Type() EventType { return EventResultsCleared }

// ResultsPresentedEvent carries a freshly rendered tree
type ResultsPresentedEvent struct {
	Tree PresentationTree
}

func (e ResultsPresentedEvent) Type() EventType { return EventResultsPresented }

// SearchFailedEvent holds the raw failure for logging only
type SearchFailedEvent struct {
	SearchID string
	Err      error
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// NotificationChangedEvent is emitted when the visible notification changes.
// Notification is nil once it has been removed.
type NotificationChangedEvent struct {
	Notification *Notification
}

func (e NotificationChangedEvent) Type() EventType { return EventNotificationChanged }

// HealthCheckedEvent carries the start-up endpoint probe result
type HealthCheckedEvent struct {
	Health EndpointHealth
	Err    error
}

func (e HealthCheckedEvent) Type() EventType { return EventHealthChecked }
