package monitor

import (
	"github.com/google/uuid"

	"github.com/oshokin/patient-monitor/internal/domain/patient"
)

// Caregiver message formats.
const (
	alertPrefix    = "🚨 Patient Alert: "
	sleepingNotice = "💤 Patient Status: Sleeping"
	awakeNotice    = "☀️ Patient Status: Awake"
)

// actionAlert builds the caregiver alert for a recognised request.
func actionAlert(event patient.Event, actor *patient.Actor) *patient.Alert {
	return &patient.Alert{
		EventID: event.ID,
		Action:  event.Action,
		Message: alertPrefix + string(event.Action),
		Actor:   actor.Clone(),
	}
}

// statusAlert builds the caregiver notice for a sleep/wake transition.
func statusAlert(status patient.Status, actor *patient.Actor) *patient.Alert {
	message := awakeNotice
	if status == patient.Sleeping {
		message = sleepingNotice
	}

	return &patient.Alert{
		EventID: uuid.NewString(),
		Action:  patient.ActionNone,
		Message: message,
		Actor:   actor.Clone(),
	}
}
