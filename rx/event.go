package rx

import "fmt"

// EventKind tags an Event.
type EventKind int

const (
	// EventValue carries a value.
	EventValue EventKind = iota
	// EventError carries an error.
	EventError
	// EventComplete ends a stream.
	EventComplete
)

// String returns "value", "error" or "complete".
func (k EventKind) String() string {
	switch k {
	case EventValue:
		return "value"
	case EventError:
		return "error"
	case EventComplete:
		return "complete"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is one recorded delivery. Buffer keeps its history as events.
type Event[V any] struct {
	Kind  EventKind
	Value V
	Err   error
}

// ValueEvent creates a value event.
func ValueEvent[V any](v V) Event[V] {
	return Event[V]{Kind: EventValue, Value: v}
}

// ErrorEvent creates an error event.
func ErrorEvent[V any](err error) Event[V] {
	return Event[V]{Kind: EventError, Err: err}
}

// CompleteEvent creates a completion event.
func CompleteEvent[V any]() Event[V] {
	return Event[V]{Kind: EventComplete}
}

// String formats the event for test output and logs.
func (e Event[V]) String() string {
	switch e.Kind {
	case EventValue:
		return fmt.Sprintf("value(%v)", e.Value)
	case EventError:
		return fmt.Sprintf("error(%v)", e.Err)
	default:
		return e.Kind.String()
	}
}
