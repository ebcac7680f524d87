// Package pubsub fans out typed events from the scroll engine and the logger to
// any number of listeners, including Bubble Tea programs.
package pubsub

import "time"

// EventType represents the type of event being published.
type EventType string

const (
	// ScrolledEvent carries a new scroll position or content size.
	ScrolledEvent EventType = "scrolled"
	// LoggedEvent carries a formatted log line.
	LoggedEvent EventType = "logged"
)

// Event represents a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
