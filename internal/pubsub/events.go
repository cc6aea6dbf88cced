// Package pubsub carries registry, theme, fetch, watcher and log events from
// their producers into the Bubble Tea loop.
package pubsub

import (
	"context"
	"time"
)

// EventType labels an event.
type EventType string

const (
	// CreatedEvent marks a new value, such as a fresh log line.
	CreatedEvent EventType = "created"
	// UpdatedEvent marks a new snapshot of existing state.
	UpdatedEvent EventType = "updated"
)

// Event is one published value.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber hands out event channels.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher accepts events.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}

// Forward adapts a publisher to a plain callback, so synchronous listener
// APIs such as favorites.Registry.Subscribe can feed a broker.
func Forward[T any](p Publisher[T], eventType EventType) func(T) {
	return func(payload T) {
		p.Publish(eventType, payload)
	}
}
