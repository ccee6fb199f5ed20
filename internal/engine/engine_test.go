package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/patient-monitor/internal/domain/face"
	"github.com/oshokin/patient-monitor/internal/domain/face/facetest"
	"github.com/oshokin/patient-monitor/internal/domain/patient"
)

//nolint:gochecknoglobals // Shared test epoch.
var epoch = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

// harness feeds frames at a fixed 30 fps cadence.
type harness struct {
	t      *testing.T
	engine *Engine
	now    time.Time
	events []patient.Event
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	e, err := New(Config{}, WithClock(func() time.Time { return epoch }))
	require.NoError(t, err)

	return &harness{t: t, engine: e, now: epoch}
}

// feed processes b n times and returns the last snapshot.
func (h *harness) feed(b *facetest.Builder, n int) patient.Snapshot {
	h.t.Helper()

	var snapshot patient.Snapshot

	for range n {
		h.now = h.now.Add(time.Second / 30)

		var (
			events []patient.Event
			err    error
		)

		snapshot, events, err = h.engine.ProcessFrame(context.Background(), b.At(h.now).Frame(), h.now)
		require.NoError(h.t, err)

		h.events = append(h.events, events...)
	}

	return snapshot
}

func (h *harness) actions() []patient.Action {
	actions := make([]patient.Action, 0, len(h.events))
	for _, e := range h.events {
		actions = append(actions, e.Action)
	}

	return actions
}

// TestEngine_InitialSnapshot checks the state published before any frame.
func TestEngine_InitialSnapshot(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	s := h.engine.Snapshot()
	require.Equal(t, patient.NewSnapshot(epoch), s)
	require.Equal(t, patient.ExpressionDurations{}, h.engine.Durations())
}

// TestEngine_ContractErrors rejects bad frames without touching state.
func TestEngine_ContractErrors(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	ctx := context.Background()

	_, _, err := h.engine.ProcessFrame(ctx, nil, epoch)
	require.ErrorIs(t, err, ErrNilFrame)

	_, _, err = h.engine.ProcessFrame(ctx, &face.Frame{}, epoch)
	require.ErrorIs(t, err, ErrEmptyFrame)

	before := h.feed(facetest.New(), 1)

	stale := facetest.New().At(before.UpdatedAt.Add(-time.Second)).Frame()
	_, _, err = h.engine.ProcessFrame(ctx, stale, h.now)
	require.ErrorIs(t, err, ErrFrameOutOfOrder)

	require.Equal(t, before, h.engine.Snapshot())
}

// TestEngine_SleepAfterSustainedClosure falls asleep on the 211th closed frame.
func TestEngine_SleepAfterSustainedClosure(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	closed := facetest.New().EyeRatio(facetest.ClosedEyeRatio)

	s := h.feed(closed, 210)
	require.Equal(t, patient.Awake, s.PatientStatus)
	require.Equal(t, patient.EyeClosed, s.EyeStatus)

	s = h.feed(closed, 1)
	require.Equal(t, patient.Sleeping, s.PatientStatus)

	s = h.feed(facetest.New(), 210)
	require.Equal(t, patient.Sleeping, s.PatientStatus)

	s = h.feed(facetest.New(), 1)
	require.Equal(t, patient.Awake, s.PatientStatus)
}

// TestEngine_BlinkRequests maps exact blink runs to requests.
func TestEngine_BlinkRequests(t *testing.T) {
	t.Parallel()

	cases := map[int][]patient.Action{
		5: {patient.WaterRequested},
		6: {},
		7: {patient.FoodRequested},
	}

	for blinks, want := range cases {
		h := newHarness(t)

		closed := facetest.New().EyeRatio(facetest.ClosedEyeRatio)
		for range blinks {
			h.feed(closed, 2)
			h.feed(facetest.New(), 3)
		}

		s := h.feed(facetest.New(), 100)

		require.Equal(t, want, h.actions(), "blinks=%d", blinks)
		require.Equal(t, blinks, s.TotalBlinks)
		require.Zero(t, s.ConsecutiveBlinks)

		if len(want) > 0 {
			require.Equal(t, want[0], s.LastAction)
		}
	}
}

// TestEngine_WashroomGesture recognises Left, Right, Left, Right once.
func TestEngine_WashroomGesture(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	left := facetest.New().Nose(0.40, 0.5)
	right := facetest.New().Nose(0.60, 0.5)

	for range 2 {
		s := h.feed(left, 3)
		require.Equal(t, patient.Left, s.HeadPose)
		h.feed(right, 3)
	}

	require.Equal(t, []patient.Action{patient.WashroomRequested}, h.actions())
	require.Equal(t, patient.WashroomRequested, h.engine.Snapshot().LastAction)

	// History is cleared: two more steps do not match again.
	h.feed(left, 3)
	h.feed(right, 3)
	require.Len(t, h.events, 1)
}

// TestEngine_GestureTimeout never matches when steps are too far apart.
func TestEngine_GestureTimeout(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	left := facetest.New().Nose(0.40, 0.5)
	right := facetest.New().Nose(0.60, 0.5)

	for range 2 {
		h.feed(left, 61)
		h.feed(right, 61)
	}

	require.Empty(t, h.events)
}

// TestEngine_MissingNoseKeepsHeadState leaves pose and nose untouched.
func TestEngine_MissingNoseKeepsHeadState(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	before := h.feed(facetest.New().Nose(0.40, 0.55), 1)
	require.True(t, before.NoseDetected)

	after := h.feed(facetest.New().Truncate(face.NoseTip), 1)
	require.Equal(t, before.HeadPose, after.HeadPose)
	require.Equal(t, before.Nose, after.Nose)
	require.Equal(t, before.GazePoint, after.GazePoint)
	require.Equal(t, before.EyeStatus, after.EyeStatus)
	require.Equal(t, before.Frames+1, after.Frames)
}

// TestEngine_ExpressionDurations attributes each inter-frame delta to one label.
func TestEngine_ExpressionDurations(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	step := time.Second / 30

	s := h.feed(facetest.New(), 1)
	require.Equal(t, patient.ExpressionDurations{}, s.ExpressionDurations)

	previous := s.ExpressionDurations
	frames := []*facetest.Builder{
		facetest.New().Smile(0.5),
		facetest.New().MouthOpen(0.3),
		facetest.New().BrowFurrow(0.1),
		facetest.New(),
		facetest.New().Smile(0.5).MouthOpen(0.3),
	}
	want := []patient.Expression{
		patient.Happy, patient.Surprised, patient.Angry, patient.Neutral, patient.Happy,
	}

	for i, b := range frames {
		s = h.feed(b, 1)
		require.Equal(t, want[i], s.Expression)
		require.Equal(t, step, s.ExpressionDurations.Get(want[i])-previous.Get(want[i]))
		require.Equal(t, step, s.ExpressionDurations.Total()-previous.Total())

		previous = s.ExpressionDurations
	}

	require.Equal(t, s.ExpressionDurations, h.engine.Durations())
}

// TestEngine_Gaze publishes the raw vector, bucket and smoothed point.
func TestEngine_Gaze(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	s := h.feed(facetest.New().Gaze(0.2, 0), 10)
	require.Equal(t, patient.Right, s.GazeDirection)
	require.InDelta(t, 0.2, s.RawGaze.X, 1e-9)
	require.InDelta(t, 0.5-0.2*0.8, s.GazePoint.X, 1e-9)
}

// TestEngine_TickPrunesBlinkRate drops blinks older than the rate window.
func TestEngine_TickPrunesBlinkRate(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	h.feed(facetest.New().EyeRatio(facetest.ClosedEyeRatio), 1)
	h.feed(facetest.New(), 1)

	s := h.engine.Tick(h.now)
	require.Equal(t, 1, s.BlinkRate)
	require.Equal(t, h.now, s.UpdatedAt)

	s = h.engine.Tick(h.now.Add(2 * time.Minute))
	require.Zero(t, s.BlinkRate)
	require.Equal(t, 1, s.TotalBlinks)
	require.Greater(t, s.TimeSinceLastBlink, time.Minute)
}

// TestEngine_Subscribe delivers every frame outcome to listeners.
func TestEngine_Subscribe(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	var (
		frames uint64
		events []patient.Event
	)

	h.engine.Subscribe(func(s patient.Snapshot, e []patient.Event) {
		frames = s.Frames
		events = append(events, e...)
	})
	h.engine.Subscribe(nil)

	closed := facetest.New().EyeRatio(facetest.ClosedEyeRatio)
	for range 5 {
		h.feed(closed, 1)
		h.feed(facetest.New(), 1)
	}

	h.feed(facetest.New(), 60)

	require.Equal(t, uint64(70), frames)
	require.Equal(t, h.events, events)
}

// TestNew_InvalidConfig reports the failing section.
func TestNew_InvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Gaze.HistorySize = -3

	_, err := New(cfg)
	require.ErrorContains(t, err, "gaze")
}
