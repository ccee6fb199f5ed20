package expression

import (
	"math"
	"time"

	"github.com/oshokin/patient-monitor/internal/domain/face"
	"github.com/oshokin/patient-monitor/internal/domain/patient"
	"github.com/oshokin/patient-monitor/internal/geometry"
)

// required lists every landmark the classifier reads.
//
//nolint:gochecknoglobals // Fixed landmark layout.
var required = []int{
	face.MouthLeft, face.MouthRight,
	face.LipTop, face.LipBottom,
	face.FaceLeft, face.FaceRight,
	face.Forehead, face.Chin,
	face.BrowInnerLeft, face.BrowInnerRight,
}

// Ratios are the per-frame measurements the rules look at.
type Ratios struct {
	Smile      float64
	MouthOpen  float64
	BrowFurrow float64
}

// Measure computes the ratios for a frame. It returns false when a landmark
// is missing or the face has no width or height.
func Measure(frame *face.Frame) (Ratios, bool) {
	if !frame.Has(required...) {
		return Ratios{}, false
	}

	at := func(i int) face.Point {
		p, _ := frame.Point(i)
		return p
	}

	faceWidth := geometry.Distance(at(face.FaceLeft), at(face.FaceRight))
	faceHeight := math.Abs(at(face.Forehead).Y - at(face.Chin).Y)

	if faceWidth == 0 || faceHeight == 0 {
		return Ratios{}, false
	}

	return Ratios{
		Smile:      geometry.Distance(at(face.MouthLeft), at(face.MouthRight)) / faceWidth,
		MouthOpen:  geometry.Distance(at(face.LipTop), at(face.LipBottom)) / faceHeight,
		BrowFurrow: geometry.Distance(at(face.BrowInnerLeft), at(face.BrowInnerRight)) / faceWidth,
	}, true
}

// rule maps a predicate over ratios to an expression.
type rule struct {
	expression patient.Expression
	matches    func(Ratios) bool
}

// Classifier labels frames and accumulates expression durations.
// It is not safe for concurrent use.
type Classifier struct {
	rules     []rule
	current   patient.Expression
	ratios    Ratios
	durations patient.ExpressionDurations
}

// NewClassifier creates a classifier starting at Neutral.
func NewClassifier(cfg Config) *Classifier {
	cfg = cfg.WithDefaults()

	return &Classifier{
		// Order matters: the first satisfied rule wins.
		rules: []rule{
			{patient.Happy, func(r Ratios) bool { return r.Smile > cfg.SmileThreshold }},
			{patient.Surprised, func(r Ratios) bool { return r.MouthOpen > cfg.MouthOpenThreshold }},
			{patient.Angry, func(r Ratios) bool { return r.BrowFurrow < cfg.BrowFurrowThreshold }},
		},
		current: patient.Neutral,
	}
}

// Classify returns the expression for the given ratios without touching state.
func (c *Classifier) Classify(r Ratios) patient.Expression {
	for _, rl := range c.rules {
		if rl.matches(r) {
			return rl.expression
		}
	}

	return patient.Neutral
}

// Update classifies the frame and attributes delta to the result.
// Frames lacking the required landmarks are ignored and the previous label stays.
func (c *Classifier) Update(frame *face.Frame, delta time.Duration) (patient.Expression, bool) {
	r, ok := Measure(frame)
	if !ok {
		return c.current, false
	}

	c.ratios = r
	c.current = c.Classify(r)
	c.durations.Add(c.current, delta)

	return c.current, true
}

// Current returns the last classified expression.
func (c *Classifier) Current() patient.Expression {
	return c.current
}

// Ratios returns the measurements of the last classified frame.
func (c *Classifier) Ratios() Ratios {
	return c.ratios
}

// Durations returns a copy of the accumulators.
func (c *Classifier) Durations() patient.ExpressionDurations {
	return c.durations
}
