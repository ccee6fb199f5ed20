package monitor

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/oshokin/patient-monitor/internal/domain/face"
	"github.com/oshokin/patient-monitor/internal/domain/patient"
	"github.com/oshokin/patient-monitor/internal/engine"
	"github.com/oshokin/patient-monitor/internal/logger"
	"github.com/oshokin/patient-monitor/internal/source"
)

// Loop cadences.
const (
	TickInterval        = time.Second
	ExpressionsInterval = 2 * time.Second
)

// frameSource yields frames until io.EOF.
type frameSource interface {
	Next(ctx context.Context) (*face.Frame, error)
}

// monitor drives the engine and turns its output into notifications.
type monitor struct {
	engine    *engine.Engine
	publisher *publisher
	actor     *patient.Actor
	clock     func() time.Time

	status patient.Status
}

func newMonitor(e *engine.Engine, p *publisher, actor *patient.Actor, clock func() time.Time) *monitor {
	if clock == nil {
		clock = time.Now
	}

	return &monitor{
		engine:    e,
		publisher: p,
		actor:     actor,
		clock:     clock,
		status:    e.Snapshot().PatientStatus,
	}
}

// readFrames forwards frames from src to out until EOF, a read failure or
// cancellation. Malformed lines are logged and skipped.
func readFrames(ctx context.Context, src frameSource, out chan<- *face.Frame) error {
	for {
		frame, err := src.Next(ctx)

		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			logger.Info(ctx, "Frame source exhausted")
			return nil
		case errors.Is(err, source.ErrMalformedFrame):
			logger.WarnKV(ctx, "Skipping frame", "error", err)
			continue
		case ctx.Err() != nil:
			return nil
		default:
			return err
		}

		select {
		case out <- frame:
		case <-ctx.Done():
			return nil
		}
	}
}

// run processes frames and drives the cadences until frames is closed or ctx is done.
func (m *monitor) run(ctx context.Context, frames <-chan *face.Frame) error {
	m.publisher.status(ctx, m.status)

	tick := time.NewTicker(TickInterval)
	defer tick.Stop()

	expressions := time.NewTicker(ExpressionsInterval)
	defer expressions.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case frame, ok := <-frames:
			if !ok {
				m.publisher.expressions(ctx, m.engine.Durations())
				return nil
			}

			m.handleFrame(ctx, frame)
		case <-tick.C:
			s := m.engine.Tick(m.clock())
			logger.DebugKV(ctx, "Tick", "blink_rate", s.BlinkRate, "since_last_blink", s.TimeSinceLastBlink)
		case <-expressions.C:
			m.publisher.expressions(ctx, m.engine.Durations())
		}
	}
}

// handleFrame applies one frame and queues the resulting notifications.
func (m *monitor) handleFrame(ctx context.Context, frame *face.Frame) {
	snapshot, events, err := m.engine.ProcessFrame(ctx, frame, m.clock())
	if err != nil {
		logger.WarnKV(ctx, "Frame rejected", "error", err)
		return
	}

	for _, event := range events {
		m.publisher.alert(ctx, actionAlert(event, m.actor))
	}

	if snapshot.PatientStatus != m.status {
		logger.InfoKV(ctx, "Patient status changed", "from", m.status, "to", snapshot.PatientStatus)

		m.status = snapshot.PatientStatus
		m.publisher.alert(ctx, statusAlert(m.status, m.actor))
		m.publisher.status(ctx, m.status)
	}
}
