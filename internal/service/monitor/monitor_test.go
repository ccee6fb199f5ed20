package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/patient-monitor/internal/domain/face"
	"github.com/oshokin/patient-monitor/internal/domain/face/facetest"
	"github.com/oshokin/patient-monitor/internal/domain/patient"
	"github.com/oshokin/patient-monitor/internal/engine"
	"github.com/oshokin/patient-monitor/internal/source"
)

var errBrokenPipe = errors.New("broken pipe")

// fakeNotifier records every call it receives.
type fakeNotifier struct {
	mu          sync.Mutex
	alerts      []*patient.Alert
	statuses    []patient.Status
	expressions []patient.ExpressionDurations
	notifyErr   error
}

func (f *fakeNotifier) Notify(_ context.Context, alert *patient.Alert) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.notifyErr != nil {
		return f.notifyErr
	}

	f.alerts = append(f.alerts, alert)

	return nil
}

func (f *fakeNotifier) UpdateStatus(_ context.Context, status patient.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.statuses = append(f.statuses, status)

	return nil
}

func (f *fakeNotifier) UpdateExpressions(_ context.Context, d patient.ExpressionDurations) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.expressions = append(f.expressions, d)

	return nil
}

func (f *fakeNotifier) messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	messages := make([]string, 0, len(f.alerts))
	for _, a := range f.alerts {
		messages = append(messages, a.Message)
	}

	return messages
}

// scriptedSource yields frames at 30 fps. A nil entry reads as a malformed line.
type scriptedSource struct {
	frames []*face.Frame
	err    error
}

func (s *scriptedSource) add(b *facetest.Builder, n int) *scriptedSource {
	for range n {
		s.frames = append(s.frames, b.Frame())
	}

	return s
}

func (s *scriptedSource) Next(ctx context.Context) (*face.Frame, error) {
	if len(s.frames) == 0 {
		if s.err != nil {
			return nil, s.err
		}

		return nil, io.EOF
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(time.Second / 30):
	}

	frame := s.frames[0]
	s.frames = s.frames[1:]

	if frame == nil {
		return nil, fmt.Errorf("%w at line 1", source.ErrMalformedFrame)
	}

	return frame, nil
}

func newEngine(t *testing.T) *engine.Engine {
	t.Helper()

	e, err := engine.New(engine.Config{})
	require.NoError(t, err)

	return e
}

//nolint:gochecknoglobals // Shared test actor.
var nurse = &patient.Actor{Hostname: "ward-3", Username: "nurse"}

func TestActionAlert(t *testing.T) {
	t.Parallel()

	event := patient.NewEvent(patient.WaterRequested, time.Now())

	alert := actionAlert(event, nurse)
	require.Equal(t, event.ID, alert.EventID)
	require.Equal(t, patient.WaterRequested, alert.Action)
	require.Equal(t, alertPrefix+string(patient.WaterRequested), alert.Message)
	require.Equal(t, nurse, alert.Actor)
	require.NotSame(t, nurse, alert.Actor)

	require.Nil(t, actionAlert(event, nil).Actor)
}

func TestStatusAlert(t *testing.T) {
	t.Parallel()

	sleeping := statusAlert(patient.Sleeping, nurse)
	require.Equal(t, sleepingNotice, sleeping.Message)
	require.Equal(t, patient.ActionNone, sleeping.Action)
	require.NotEmpty(t, sleeping.EventID)

	awake := statusAlert(patient.Awake, nurse)
	require.Equal(t, awakeNotice, awake.Message)
	require.NotEqual(t, sleeping.EventID, awake.EventID)
}

func TestPublisher_DropsWhenFull(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	n := &fakeNotifier{}
	p := newPublisher(n, 1)

	require.True(t, p.status(ctx, patient.Awake))
	require.False(t, p.status(ctx, patient.Sleeping))

	p.close()
	require.NoError(t, p.run(ctx))
	require.Equal(t, []patient.Status{patient.Awake}, n.statuses)
}

func TestPublisher_KeepsGoingAfterFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	n := &fakeNotifier{notifyErr: errBrokenPipe}
	p := newPublisher(n, 4)

	require.True(t, p.alert(ctx, statusAlert(patient.Awake, nil)))
	require.True(t, p.expressions(ctx, patient.ExpressionDurations{Happy: time.Second}))

	p.close()
	require.NoError(t, p.run(ctx))
	require.Empty(t, n.alerts)
	require.Len(t, n.expressions, 1)
}

func TestServe_SleepNotice(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		n := &fakeNotifier{}
		e := newEngine(t)
		src := (&scriptedSource{}).
			add(facetest.New().EyeRatio(facetest.ClosedEyeRatio), 211).
			add(facetest.New(), 211)

		require.NoError(t, serve(t.Context(), e, n, src, nurse, 64))

		require.Equal(t, []patient.Status{patient.Awake, patient.Sleeping, patient.Awake}, n.statuses)
		require.Equal(t, []string{sleepingNotice, awakeNotice}, n.messages())
		require.Equal(t, uint64(422), e.Snapshot().Frames)

		// Roughly 14 seconds of frames at one update every two seconds plus the final one.
		require.GreaterOrEqual(t, len(n.expressions), 7)
		require.Equal(t, e.Durations(), n.expressions[len(n.expressions)-1])
	})
}

func TestServe_BlinkRequest(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		n := &fakeNotifier{}
		src := &scriptedSource{}

		closed := facetest.New().EyeRatio(facetest.ClosedEyeRatio)
		for range 5 {
			src.add(closed, 2).add(facetest.New(), 3)
		}

		src.add(facetest.New(), 100)

		require.NoError(t, serve(t.Context(), newEngine(t), n, src, nurse, 64))

		require.Len(t, n.alerts, 1)
		require.Equal(t, patient.WaterRequested, n.alerts[0].Action)
		require.True(t, strings.HasPrefix(n.alerts[0].Message, alertPrefix))
		require.Equal(t, nurse, n.alerts[0].Actor)
	})
}

func TestServe_SkipsBadFrames(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		e := newEngine(t)
		src := (&scriptedSource{}).add(facetest.New(), 3)
		src.frames = append(src.frames, nil, facetest.New().Truncate(0).Frame())
		src.add(facetest.New(), 2)

		require.NoError(t, serve(t.Context(), e, &fakeNotifier{}, src, nil, 8))
		require.Equal(t, uint64(5), e.Snapshot().Frames)
	})
}

func TestServe_ReadFailure(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		n := &fakeNotifier{}
		src := (&scriptedSource{err: errBrokenPipe}).add(facetest.New(), 2)

		err := serve(t.Context(), newEngine(t), n, src, nil, 8)
		require.ErrorIs(t, err, errBrokenPipe)
		require.Equal(t, []patient.Status{patient.Awake}, n.statuses)
	})
}

func TestServe_Cancelled(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
		defer cancel()

		e := newEngine(t)
		src := (&scriptedSource{}).add(facetest.New(), 1000)

		require.NoError(t, serve(ctx, e, &fakeNotifier{}, src, nil, 8))
		require.Less(t, e.Snapshot().Frames, uint64(1000))

		synctest.Wait()
	})
}
