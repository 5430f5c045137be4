package eventbus

import (
	"go.uber.org/zap"
)

// Audit logs every search lifecycle event with its search id. The returned
// function unsubscribes.
func Audit(b EventBus, log *zap.Logger) func() {
	log = log.Named("audit")

	unsubs := []func(){
		b.Subscribe(EventSearchStarted, func(e DomainEvent) {
			ev := e.(SearchStartedEvent)
			log.Info("search started", zap.String("search_id", ev.SearchID), zap.String("query", ev.Query.String()))
		}),
		b.Subscribe(EventSearchIgnored, func(e DomainEvent) {
			ev := e.(SearchIgnoredEvent)
			log.Info("search ignored, another search is running", zap.String("query", ev.Query))
		}),
		b.Subscribe(EventLifecycleChanged, func(e DomainEvent) {
			ev := e.(LifecycleChangedEvent)
			log.Debug("lifecycle", zap.String("search_id", ev.SearchID), zap.Stringer("state", ev.State))
			if ev.State.Phase.Terminal() {
				log.Info("search finished", zap.String("search_id", ev.SearchID), zap.Stringer("state", ev.State))
			}
		}),
		b.Subscribe(EventSearchFailed, func(e DomainEvent) {
			ev := e.(SearchFailedEvent)
			log.Warn("search failed", zap.String("search_id", ev.SearchID), zap.Error(ev.Err))
		}),
	}

	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}
