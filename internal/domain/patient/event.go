package patient

import (
	"time"

	"github.com/google/uuid"
)

// Event is a discrete action emitted once per triggering condition.
type Event struct {
	// ID uniquely identifies the event so notifiers can drop duplicates.
	ID string
	// Action is what the patient requested.
	Action Action
	// Timestamp is the frame time the action was recognised at.
	Timestamp time.Time
}

// NewEvent creates an event with a fresh identifier.
func NewEvent(action Action, timestamp time.Time) Event {
	return Event{
		ID:        uuid.NewString(),
		Action:    action,
		Timestamp: timestamp,
	}
}
