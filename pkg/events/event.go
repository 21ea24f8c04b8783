package events

import "time"

// Event defines the contract for all activity events on the bus.
type Event interface {
	// EventType returns the unique code for this event (e.g., "USER_LOGIN").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Activity event codes published by the application.
const (
	TypeUserRegistered  = "USER_REGISTERED"
	TypeUserLogin       = "USER_LOGIN"
	TypeNotebookDeleted = "NOTEBOOK_DELETED"
	TypeLockConfigured  = "LOCK_CONFIGURED"
)

// BaseEvent is the plain struct implementation used across the app.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func NewBaseEvent(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
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
