package domain

import "time"

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventQueryRejected   EventType = "QueryRejected"
	EventSearchSubmitted EventType = "SearchSubmitted"
	EventSearchCompleted EventType = "SearchCompleted"
	EventSearchFailed    EventType = "SearchFailed"
	EventSearchDiscarded EventType = "SearchDiscarded"
	EventConfigLoaded    EventType = "ConfigLoaded"
	EventConfigSaved     EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// QueryRejectedEvent is emitted when a submitted query is empty after trimming
type QueryRejectedEvent struct {
	Raw string
}

func (e QueryRejectedEvent) Type() EventType { return EventQueryRejected }

// SearchSubmittedEvent is emitted right before a request is dispatched
type SearchSubmittedEvent struct {
	Token uint64
	Query string
}

func (e SearchSubmittedEvent) Type() EventType { return EventSearchSubmitted }

// SearchCompletedEvent is emitted when a current response has been rendered
type SearchCompletedEvent struct {
	Token   uint64
	Query   string
	Count   int
	Elapsed time.Duration
}

func (e SearchCompletedEvent) Type() EventType { return EventSearchCompleted }

// SearchFailedEvent is emitted when a current request failed.
// Err carries the diagnostic detail; the user only sees a generic message.
type SearchFailedEvent struct {
	Token   uint64
	Query   string
	Err     error
	Elapsed time.Duration
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// SearchDiscardedEvent is emitted when a response arrives for a request that
// is no longer the latest one, or after the widget was detached
type SearchDiscardedEvent struct {
	Token  uint64
	Latest uint64
	Query  string
}

func (e SearchDiscardedEvent) Type() EventType { return EventSearchDiscarded }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path     string
	Endpoint string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is written
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
