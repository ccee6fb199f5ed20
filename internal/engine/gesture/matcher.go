package gesture

import (
	"github.com/oshokin/patient-monitor/internal/domain/face"
	"github.com/oshokin/patient-monitor/internal/domain/patient"
	"github.com/oshokin/patient-monitor/internal/ring"
)

// State is the published part of the matcher.
type State struct {
	// Direction is the head direction of the last frame with a nose.
	Direction patient.Direction
	// Nose holds the mirrored nose coordinates.
	Nose patient.Coordinates
	// NoseDetected is false until a frame with a nose is seen.
	NoseDetected bool
	// LastRecorded is the last direction appended to the history.
	LastRecorded patient.Direction
	// IdleFrames counts frames since the last append.
	IdleFrames int
	// History holds the recorded directions, oldest first.
	History []patient.Direction
}

// Matcher tracks head pose and gesture sequences. It is not safe for concurrent use.
type Matcher struct {
	cfg      Config
	patterns []Pattern
	history  *ring.Buffer[patient.Direction]

	direction    patient.Direction
	nose         patient.Coordinates
	noseDetected bool
	lastRecorded patient.Direction
	idleFrames   int
}

// NewMatcher creates a matcher with the default request vocabulary.
func NewMatcher(cfg Config) *Matcher {
	patterns := Patterns()

	longest := 1
	for _, p := range patterns {
		longest = max(longest, len(p.Steps))
	}

	return &Matcher{
		cfg:          cfg.WithDefaults(),
		patterns:     patterns,
		history:      ring.New[patient.Direction](longest),
		direction:    patient.Center,
		lastRecorded: patient.Center,
	}
}

// Direction maps mirrored nose coordinates to a head direction.
// Horizontal thresholds take priority over vertical ones.
func (m *Matcher) Direction(mirroredX, y float64) patient.Direction {
	switch {
	case mirroredX < m.cfg.LeftThreshold:
		return patient.Left
	case mirroredX > m.cfg.RightThreshold:
		return patient.Right
	case y < m.cfg.UpThreshold:
		return patient.Up
	case y > m.cfg.DownThreshold:
		return patient.Down
	default:
		return patient.Center
	}
}

// Update processes one frame. Frames without a nose landmark leave every
// piece of state untouched, including the idle counter.
func (m *Matcher) Update(frame *face.Frame) (patient.Action, bool) {
	nose, ok := frame.Point(face.NoseTip)
	if !ok {
		return patient.ActionNone, false
	}

	m.nose = patient.Coordinates{X: 1 - nose.X, Y: nose.Y}
	m.noseDetected = true
	m.direction = m.Direction(m.nose.X, m.nose.Y)

	action, matched := m.record(m.direction)

	m.idleFrames++
	if m.idleFrames > m.cfg.SequenceFrames {
		m.history.Clear()
		m.lastRecorded = patient.Center
	}

	return action, matched
}

// record appends a direction change and checks the patterns.
func (m *Matcher) record(direction patient.Direction) (patient.Action, bool) {
	if direction == m.lastRecorded || direction == patient.Center {
		return patient.ActionNone, false
	}

	m.history.Push(direction)
	m.lastRecorded = direction
	m.idleFrames = 0

	for _, p := range m.patterns {
		if p.matches(m.history.Tail(len(p.Steps))) {
			m.history.Clear()

			return p.Action, true
		}
	}

	return patient.ActionNone, false
}

// State returns a copy of the matcher state.
func (m *Matcher) State() State {
	return State{
		Direction:    m.direction,
		Nose:         m.nose,
		NoseDetected: m.noseDetected,
		LastRecorded: m.lastRecorded,
		IdleFrames:   m.idleFrames,
		History:      m.history.Items(),
	}
}
