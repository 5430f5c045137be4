package ui

import (
	"seekterm/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// searchDoneMsg reports that RunSearch returned. The outcome itself arrives
// through events; err is informational.
type searchDoneMsg struct {
	query string
	err   error
}

// copyDoneMsg reports the result of a clipboard copy
type copyDoneMsg struct {
	err error
}

// pagerMsg contains the result of a pager command
type pagerMsg struct {
	what string
	err  error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
