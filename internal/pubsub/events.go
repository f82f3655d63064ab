// Package pubsub fans navigation outcomes and log lines out to observers.
package pubsub

import (
	"context"
	"time"
)

// EventType names what happened.
type EventType string

const (
	NavigatedEvent        EventType = "navigated"
	NavigationFailedEvent EventType = "navigation_failed"
	WentBackEvent         EventType = "went_back"
	LoggedEvent           EventType = "logged"
)

// Failure reports whether t describes a navigation that did not complete.
func (t EventType) Failure() bool {
	return t == NavigationFailedEvent
}

// Event is one published occurrence. Seq increases by one per Publish on a
// broker, so a subscriber can tell how many events it missed.
type Event[T any] struct {
	Seq       uint64
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
