// Package events describes the analytics events emitted by the style service.
package events

import "time"

const (
	// TypeSuggestionResolved is emitted once per freshly resolved suggestion.
	TypeSuggestionResolved = "SUGGESTION_RESOLVED"
	// TypeSuggestionAccepted is emitted when a user keeps a suggestion.
	TypeSuggestionAccepted = "SUGGESTION_ACCEPTED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "SUGGESTION_RESOLVED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
