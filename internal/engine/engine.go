package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/oshokin/patient-monitor/internal/domain/face"
	"github.com/oshokin/patient-monitor/internal/domain/patient"
	"github.com/oshokin/patient-monitor/internal/engine/blink"
	"github.com/oshokin/patient-monitor/internal/engine/expression"
	"github.com/oshokin/patient-monitor/internal/engine/gaze"
	"github.com/oshokin/patient-monitor/internal/engine/gesture"
	"github.com/oshokin/patient-monitor/internal/geometry"
	"github.com/oshokin/patient-monitor/internal/logger"
)

var (
	// ErrNilFrame is returned when ProcessFrame receives no frame.
	ErrNilFrame = errors.New("frame is nil")
	// ErrEmptyFrame is returned for a frame without landmarks.
	ErrEmptyFrame = errors.New("frame has no landmarks")
	// ErrFrameOutOfOrder is returned for a frame older than its predecessor.
	ErrFrameOutOfOrder = errors.New("frame timestamp is before the previous frame")
)

// Listener receives the outcome of every processed frame.
// It is called outside the engine lock and must not block.
type Listener func(snapshot patient.Snapshot, events []patient.Event)

// Option customises an Engine.
type Option func(*Engine)

// WithClock replaces time.Now as the engine time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// Engine interprets landmark frames. All methods are safe for concurrent use;
// frames are applied strictly one at a time.
type Engine struct {
	now func() time.Time

	mu         sync.Mutex
	blink      *blink.Tracker
	expression *expression.Classifier
	gesture    *gesture.Matcher
	gaze       *gaze.Estimator
	snapshot   patient.Snapshot
	lastFrame  time.Time
	listeners  []Listener
}

// New validates cfg and creates an engine in its initial state.
func New(cfg Config, opts ...Option) (*Engine, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}

	e := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}

	start := e.now()

	e.blink = blink.NewTracker(cfg.Blink, start)
	e.expression = expression.NewClassifier(cfg.Expression)
	e.gesture = gesture.NewMatcher(cfg.Gesture)
	e.gaze = gaze.NewEstimator(cfg.Gaze)
	e.snapshot = patient.NewSnapshot(start)

	return e, nil
}

// Subscribe registers l for every subsequent frame.
func (e *Engine) Subscribe(l Listener) {
	if l == nil {
		return
	}

	e.mu.Lock()
	e.listeners = append(e.listeners, l)
	e.mu.Unlock()
}

// ProcessFrame applies one frame observed at now and returns the refreshed
// snapshot with the events it triggered. Features whose landmarks are missing
// are skipped and keep their previous values. On error no state changes.
func (e *Engine) ProcessFrame(
	ctx context.Context,
	frame *face.Frame,
	now time.Time,
) (patient.Snapshot, []patient.Event, error) {
	if frame == nil {
		return patient.Snapshot{}, nil, ErrNilFrame
	}

	if frame.Len() == 0 {
		return patient.Snapshot{}, nil, ErrEmptyFrame
	}

	at := frame.Timestamp
	if at.IsZero() {
		at = now
	}

	e.mu.Lock()

	if e.snapshot.Frames > 0 && at.Before(e.lastFrame) {
		e.mu.Unlock()

		return patient.Snapshot{}, nil, fmt.Errorf("%w: %s < %s", ErrFrameOutOfOrder,
			at.Format(time.RFC3339Nano), e.lastFrame.Format(time.RFC3339Nano))
	}

	var delta time.Duration
	if e.snapshot.Frames > 0 {
		delta = at.Sub(e.lastFrame)
	}

	e.lastFrame = at

	events := e.apply(ctx, frame, now, delta)
	snapshot := e.snapshot
	listeners := e.listeners

	e.mu.Unlock()

	for _, l := range listeners {
		l(snapshot, events)
	}

	return snapshot, events, nil
}

// apply runs the interpreters. Callers hold e.mu.
func (e *Engine) apply(ctx context.Context, frame *face.Frame, now time.Time, delta time.Duration) []patient.Event {
	var events []patient.Event

	emit := func(action patient.Action) {
		event := patient.NewEvent(action, now)
		events = append(events, event)
		e.snapshot.LastAction = action

		logger.InfoKV(ctx, "Action recognised", "action", action, "event_id", event.ID)
	}

	s := &e.snapshot

	if g, ok := e.gaze.Update(frame); ok {
		s.GazePoint = g.Point
		s.RawGaze = g.Raw
		s.GazeDirection = g.Direction
	} else {
		logger.Debug(ctx, "Gaze skipped: eye geometry is missing")
	}

	right, rightOK := geometry.EyeAspectRatio(frame, face.RightEyeContour)
	left, leftOK := geometry.EyeAspectRatio(frame, face.LeftEyeContour)

	if rightOK && leftOK {
		if action, ok := e.blink.Update(left, right, now); ok {
			emit(action)
		}

		e.copyBlink()
	} else {
		logger.Debug(ctx, "Blink skipped: eye contour is missing")
	}

	action, matched := e.gesture.Update(frame)
	if matched {
		emit(action)
	}

	g := e.gesture.State()
	s.HeadPose = g.Direction
	s.Nose = g.Nose
	s.NoseDetected = g.NoseDetected

	if _, ok := e.expression.Update(frame, delta); !ok {
		logger.Debug(ctx, "Expression skipped: face landmarks are missing")
	}

	s.Expression = e.expression.Current()
	s.ExpressionDurations = e.expression.Durations()

	s.Frames++
	s.UpdatedAt = now

	return events
}

// copyBlink publishes the eye tracker state. Callers hold e.mu.
func (e *Engine) copyBlink() {
	b := e.blink.State()
	s := &e.snapshot

	s.EyeStatus = b.Eye
	s.LeftEyeRatio = b.LeftRatio
	s.RightEyeRatio = b.RightRatio
	s.EyeRatio = b.AverageRatio
	s.ConsecutiveBlinks = b.ConsecutiveBlinks
	s.TotalBlinks = b.TotalBlinks
	s.BlinkRate = b.BlinkRate
	s.TimeSinceLastBlink = b.SinceLastBlink
	s.PatientStatus = b.Sleep
}

// Tick prunes the blink log to the rate window ending at now and refreshes
// the blink rate.
func (e *Engine) Tick(now time.Time) patient.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.blink.Tick(now)
	e.copyBlink()
	e.snapshot.UpdatedAt = now

	return e.snapshot
}

// Snapshot returns the current published state.
func (e *Engine) Snapshot() patient.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.snapshot
}

// Durations returns the accumulated time per expression.
func (e *Engine) Durations() patient.ExpressionDurations {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.expression.Durations()
}
