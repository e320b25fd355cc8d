// Package pubsub provides a generic publish/subscribe event system used to
// fan out call records and log entries to interested test code.
package pubsub

import (
	"context"
	"time"
)

// EventType labels the kind of event being published.
type EventType string

const (
	// CallEvent is published when a mocked entry point records an invocation.
	CallEvent EventType = "call"
	// LogEvent is published for every diagnostic log entry.
	LogEvent EventType = "log"
	// ResetEvent is published when the registry is cleared or reset.
	ResetEvent EventType = "reset"
)

// Event is a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
