package gesture

import (
	"slices"

	"github.com/oshokin/patient-monitor/internal/domain/patient"
)

// Pattern is a fixed run of head directions that requests an action.
type Pattern struct {
	Steps  []patient.Direction
	Action patient.Action
}

// Patterns returns the request vocabulary in match order.
func Patterns() []Pattern {
	return []Pattern{
		{
			Steps:  []patient.Direction{patient.Left, patient.Right, patient.Left, patient.Right},
			Action: patient.WashroomRequested,
		},
		{
			Steps:  []patient.Direction{patient.Up, patient.Down, patient.Up, patient.Down},
			Action: patient.EmergencyAlert,
		},
	}
}

// matches reports whether history ends with exactly the pattern steps.
func (p Pattern) matches(suffix []patient.Direction) bool {
	return len(suffix) == len(p.Steps) && slices.Equal(suffix, p.Steps)
}
