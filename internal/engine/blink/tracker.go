package blink

import (
	"time"

	"github.com/oshokin/patient-monitor/internal/domain/patient"
	"github.com/oshokin/patient-monitor/internal/ring"
)

// State is the published part of the eye state machine.
type State struct {
	Eye          patient.EyeStatus
	LeftRatio    float64
	RightRatio   float64
	AverageRatio float64

	// ClosedFrames counts consecutive closed frames.
	ClosedFrames int
	// OpenFrames counts consecutive open frames.
	OpenFrames int
	// FramesSinceClosed counts open frames since the eyes last closed.
	FramesSinceClosed int
	// InBlink is set while the current closure has already been counted.
	InBlink bool

	TotalBlinks       int
	ConsecutiveBlinks int
	BlinkRate         int
	LastBlink         time.Time
	SinceLastBlink    time.Duration

	Sleep patient.Status
}

// Tracker is the eye state machine. It is not safe for concurrent use.
type Tracker struct {
	cfg   Config
	state State
	// blinks holds blink timestamps, oldest first.
	blinks *ring.Buffer[time.Time]
}

// NewTracker creates an awake, eyes-open tracker. start seeds the
// time-since-last-blink measurement.
func NewTracker(cfg Config, start time.Time) *Tracker {
	cfg = cfg.WithDefaults()

	return &Tracker{
		cfg: cfg,
		state: State{
			Eye:       patient.EyeOpen,
			Sleep:     patient.Awake,
			LastBlink: start,
		},
		blinks: ring.New[time.Time](cfg.LogCapacity),
	}
}

// State returns a copy of the current state.
func (t *Tracker) State() State {
	return t.state
}

// Update feeds one frame's eye aspect ratios. It returns the action
// requested by a completed blink run, if any.
func (t *Tracker) Update(left, right float64, now time.Time) (patient.Action, bool) {
	s := &t.state

	s.LeftRatio = left
	s.RightRatio = right
	s.AverageRatio = (left + right) / 2

	if s.AverageRatio < t.cfg.ClosedThreshold {
		t.closed(now)

		return patient.ActionNone, false
	}

	return t.open()
}

// closed handles a frame with closed eyes.
func (t *Tracker) closed(now time.Time) {
	s := &t.state
	s.Eye = patient.EyeClosed

	if !s.InBlink {
		s.InBlink = true
		s.ConsecutiveBlinks++
		s.TotalBlinks++
		s.LastBlink = now
		t.blinks.Push(now)
	}

	s.FramesSinceClosed = 0
	s.OpenFrames = 0
	s.ClosedFrames++

	if s.ClosedFrames > t.cfg.SleepFrames && s.Sleep == patient.Awake {
		s.Sleep = patient.Sleeping
	}
}

// open handles a frame with open eyes.
func (t *Tracker) open() (patient.Action, bool) {
	s := &t.state
	s.Eye = patient.EyeOpen
	s.InBlink = false
	s.ClosedFrames = 0
	s.OpenFrames++

	if s.OpenFrames > t.cfg.WakeFrames && s.Sleep == patient.Sleeping {
		s.Sleep = patient.Awake
	}

	s.FramesSinceClosed++
	if s.FramesSinceClosed <= t.cfg.ResetFrames {
		return patient.ActionNone, false
	}

	run := s.ConsecutiveBlinks
	s.ConsecutiveBlinks = 0

	switch run {
	case t.cfg.WaterBlinks:
		return patient.WaterRequested, true
	case t.cfg.FoodBlinks:
		return patient.FoodRequested, true
	default:
		return patient.ActionNone, false
	}
}

// Tick prunes the blink log to the rate window ending at now and refreshes
// the blink rate and time since the last blink.
func (t *Tracker) Tick(now time.Time) {
	cutoff := now.Add(-t.cfg.RateWindow)
	t.blinks.DropWhile(func(ts time.Time) bool {
		return !ts.After(cutoff)
	})

	t.state.BlinkRate = t.blinks.Len()
	t.state.SinceLastBlink = max(now.Sub(t.state.LastBlink), 0)
}
