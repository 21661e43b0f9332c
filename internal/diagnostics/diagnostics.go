// Package diagnostics is the developer-facing side of the widget: it writes
// every search lifecycle event to a structured log. Users only ever see the
// generic messages in the results container.
package diagnostics

import (
	"errors"
	"log/slog"

	"searchwidget/internal/eventbus"
	"searchwidget/internal/search"
)

// Subscribe logs widget and config events published on bus.
// The returned function removes every subscription.
func Subscribe(bus eventbus.EventBus, logger *slog.Logger) func() {
	unsubs := []func(){
		bus.Subscribe(eventbus.EventQueryRejected, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.QueryRejectedEvent); ok {
				logger.Info("query rejected", "raw", ev.Raw)
			}
		}),
		bus.Subscribe(eventbus.EventSearchSubmitted, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.SearchSubmittedEvent); ok {
				logger.Info("search submitted", "token", ev.Token, "query", ev.Query)
			}
		}),
		bus.Subscribe(eventbus.EventSearchCompleted, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.SearchCompletedEvent); ok {
				logger.Info("search completed", "token", ev.Token, "query", ev.Query, "count", ev.Count, "elapsed", ev.Elapsed)
			}
		}),
		bus.Subscribe(eventbus.EventSearchFailed, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.SearchFailedEvent); ok {
				logger.Error("search failed", failureAttrs(ev)...)
			}
		}),
		bus.Subscribe(eventbus.EventSearchDiscarded, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.SearchDiscardedEvent); ok {
				logger.Debug("stale search response discarded", "token", ev.Token, "latest", ev.Latest, "query", ev.Query)
			}
		}),
		bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.ConfigLoadedEvent); ok {
				logger.Info("config loaded", "path", ev.Path, "endpoint", ev.Endpoint)
			}
		}),
		bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) {
			if ev, ok := e.(eventbus.ConfigSavedEvent); ok {
				logger.Info("config saved", "path", ev.Path)
			}
		}),
	}

	return func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}

func failureAttrs(ev eventbus.SearchFailedEvent) []any {
	attrs := []any{
		"token", ev.Token,
		"query", ev.Query,
		"kind", string(search.KindOf(ev.Err)),
		"elapsed", ev.Elapsed,
		"error", ev.Err,
	}
	var statusErr *search.HTTPStatusError
	if errors.As(ev.Err, &statusErr) {
		attrs = append(attrs, "status", statusErr.StatusCode, "body", statusErr.Body)
	}
	return attrs
}
