package eventbus

import "seekterm/internal/domain"

// StatusPublisher turns status updates into StatusChangedEvents
type StatusPublisher struct {
	Bus EventBus
}

func (p StatusPublisher) ShowStatus(text string, progress int) {
	p.Bus.Publish(StatusChangedEvent{Text: text, Progress: progress, Visible: true})
}

func (p StatusPublisher) ClearStatus() {
	p.Bus.Publish(StatusChangedEvent{})
}

// ResultsPublisher turns rendered output into result events
type ResultsPublisher struct {
	Bus EventBus
}

func (p ResultsPublisher) ClearResults() {
	p.Bus.Publish(ResultsClearedEvent{})
}

func (p ResultsPublisher) Present(tree domain.PresentationTree) {
	p.Bus.Publish(ResultsPresentedEvent{Tree: tree})
}
