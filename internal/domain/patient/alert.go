package patient

import (
	"errors"
	"time"
)

// ErrDeliveryFailed marks an alert that could not be handed to the messaging channel.
var ErrDeliveryFailed = errors.New("alert delivery failed")

// Actor identifies the host and user a notification originated from.
type Actor struct {
	Hostname string
	Username string
}

// Clone returns a copy of the actor.
func (a *Actor) Clone() *Actor {
	if a == nil {
		return nil
	}

	cloned := *a

	return &cloned
}

// Alert is a caregiver notification as received by the notifier.
type Alert struct {
	// EventID deduplicates deliveries of the same event.
	EventID string
	// Action is the request behind the alert. Status notices carry ActionNone.
	Action Action
	// Message is the human-readable text sent to caregivers.
	Message string
	// Actor is where the alert came from. It may be nil.
	Actor *Actor
	// ReceivedAt is when the notifier accepted the alert.
	ReceivedAt time.Time
}

// Clone returns a deep copy of the alert.
func (a *Alert) Clone() *Alert {
	if a == nil {
		return nil
	}

	cloned := *a
	cloned.Actor = a.Actor.Clone()

	return &cloned
}

// Report is the patient state kept by the notifier.
type Report struct {
	Status    Status
	Durations ExpressionDurations
	// LastAlert is the most recent alert, nil before the first one.
	LastAlert *Alert
	UpdatedAt time.Time
}

// NewReport returns the report known before the monitor reports anything.
func NewReport() *Report {
	return &Report{Status: Awake}
}

// Clone returns a deep copy of the report.
func (r *Report) Clone() *Report {
	if r == nil {
		return nil
	}

	cloned := *r
	cloned.LastAlert = r.LastAlert.Clone()

	return &cloned
}

// ParseStatus converts a wire value back to a Status.
func ParseStatus(s string) (Status, bool) {
	switch st := Status(s); st {
	case Awake, Sleeping:
		return st, true
	default:
		return Awake, false
	}
}
