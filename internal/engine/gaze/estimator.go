package gaze

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/oshokin/patient-monitor/internal/domain/face"
	"github.com/oshokin/patient-monitor/internal/domain/patient"
	"github.com/oshokin/patient-monitor/internal/geometry"
	"github.com/oshokin/patient-monitor/internal/ring"
)

// Sample is one frame's gaze measurement.
type Sample struct {
	// Raw is the averaged normalized pupil offset of both eyes.
	Raw patient.Coordinates
	// Screen is Raw mapped into [0,1]².
	Screen patient.Coordinates
}

// State is the published part of the estimator.
type State struct {
	Raw       patient.Coordinates
	Point     patient.Coordinates
	Direction patient.Direction
	// Samples is the number of points currently in the smoothing window.
	Samples int
}

// neutral is the published point before any gaze is measured.
//
//nolint:gochecknoglobals // Immutable value.
var neutral = patient.Coordinates{X: 0.5, Y: 0.5}

// Estimator smooths gaze over a rolling window. It is not safe for concurrent use.
type Estimator struct {
	cfg     Config
	history *ring.Buffer[patient.Coordinates]
	state   State
}

// NewEstimator creates an estimator looking at the screen centre.
func NewEstimator(cfg Config) *Estimator {
	cfg = cfg.WithDefaults()

	return &Estimator{
		cfg:     cfg,
		history: ring.New[patient.Coordinates](cfg.HistorySize),
		state: State{
			Point:     neutral,
			Direction: patient.Center,
		},
	}
}

// Measure computes the raw and screen gaze for a frame without touching state.
func (e *Estimator) Measure(frame *face.Frame) (Sample, bool) {
	rx, ry, ok := rightEye.offset(frame)
	if !ok {
		return Sample{}, false
	}

	lx, ly, ok := leftEye.offset(frame)
	if !ok {
		return Sample{}, false
	}

	raw := patient.Coordinates{X: (rx + lx) / 2, Y: (ry + ly) / 2}

	return Sample{
		Raw: raw,
		Screen: patient.Coordinates{
			X: geometry.Clamp(0.5-raw.X*e.cfg.HorizontalGain, 0, 1),
			Y: geometry.Clamp(0.5+raw.Y*e.cfg.VerticalGain, 0, 1),
		},
	}, true
}

// Update measures a frame and refreshes the smoothed point and direction.
// Frames without usable eye geometry leave the state untouched.
func (e *Estimator) Update(frame *face.Frame) (State, bool) {
	sample, ok := e.Measure(frame)
	if !ok {
		return e.state, false
	}

	e.history.Push(sample.Screen)

	e.state = State{
		Raw:       sample.Raw,
		Point:     e.Smoothed(),
		Direction: e.Direction(sample.Raw.X, sample.Raw.Y),
		Samples:   e.history.Len(),
	}

	return e.state, true
}

// Smoothed returns the weighted average of the window, where the i-th oldest
// of k points weighs (i+1)/k. An empty window yields the screen centre.
// The mean is taken over offsets from the oldest point so a constant window
// returns that point exactly.
func (e *Estimator) Smoothed() patient.Coordinates {
	k := e.history.Len()
	if k == 0 {
		return neutral
	}

	origin := e.history.At(0)
	xs := make([]float64, k)
	ys := make([]float64, k)
	weights := make([]float64, k)

	for i := range k {
		p := e.history.At(i)
		xs[i] = p.X - origin.X
		ys[i] = p.Y - origin.Y
		weights[i] = float64(i+1) / float64(k)
	}

	return patient.Coordinates{
		X: origin.X + stat.Mean(xs, weights),
		Y: origin.Y + stat.Mean(ys, weights),
	}
}

// Direction buckets a raw gaze vector. Horizontal dominance is checked first.
func (e *Estimator) Direction(x, y float64) patient.Direction {
	t := e.cfg.DirectionThreshold
	ax, ay := math.Abs(x), math.Abs(y)

	if ax < t && ay < t {
		return patient.Center
	}

	if ax > ay {
		switch {
		case x > t:
			return patient.Right
		case x < -t:
			return patient.Left
		default:
			return patient.Center
		}
	}

	switch {
	case y > t:
		return patient.Down
	case y < -t:
		return patient.Up
	default:
		return patient.Center
	}
}

// State returns a copy of the estimator state.
func (e *Estimator) State() State {
	return e.state
}
