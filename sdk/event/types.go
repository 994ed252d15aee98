package event

import "time"

// EventType represents the type of event
type EventType string

const (
	// Session events
	AuthLoggedIn      EventType = "auth.login"
	AuthLoggedOut     EventType = "auth.logout"
	AuthRefreshFailed EventType = "auth.refresh_failed"

	// Transfer lifecycle events
	TransferSubmitted EventType = "transfer.submitted"
	TransferSucceeded EventType = "transfer.succeeded"
	TransferFailed    EventType = "transfer.failed"
)

// EventData carries the event's contextual values, keyed by EventDataKey.
type EventData map[EventDataKey]interface{}

// Event represents an event emitted by the client
type Event struct {
	Type      EventType
	Timestamp time.Time
	Data      EventData
}

func NewEvent(eventType EventType, data EventData) Event {
	if data == nil {
		data = make(EventData)
	}

	return Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}
