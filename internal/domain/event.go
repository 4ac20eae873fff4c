package domain

import "time"

// Event is a free-form entry in a session's event log.
type Event struct {
	Time   time.Time `json:"ts"`
	Action string    `json:"action"`
	Round  int       `json:"round,omitempty"`
	Detail string    `json:"detail,omitempty"`
}

// NewEvent creates an event stamped with the current UTC time.
func NewEvent(action string, round int, detail string) Event {
	return Event{
		Time:   time.Now().UTC(),
		Action: action,
		Round:  round,
		Detail: detail,
	}
}
