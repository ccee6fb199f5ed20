package monitor

import (
	"context"

	"github.com/oshokin/patient-monitor/internal/domain/patient"
	"github.com/oshokin/patient-monitor/internal/logger"
)

// Notifier is the remote side the monitor reports to.
type Notifier interface {
	Notify(ctx context.Context, alert *patient.Alert) error
	UpdateStatus(ctx context.Context, status patient.Status) error
	UpdateExpressions(ctx context.Context, durations patient.ExpressionDurations) error
}

// job is one queued notifier call.
type job struct {
	name string
	call func(ctx context.Context, n Notifier) error
}

// publisher delivers notifier calls from a bounded queue on one goroutine.
// Calls are never retried; a full queue drops new calls.
type publisher struct {
	notifier Notifier
	queue    chan job
}

func newPublisher(n Notifier, size int) *publisher {
	return &publisher{
		notifier: n,
		queue:    make(chan job, max(size, 1)),
	}
}

// enqueue adds a call without blocking. It reports false when the call was dropped.
func (p *publisher) enqueue(ctx context.Context, j job) bool {
	select {
	case p.queue <- j:
		return true
	default:
		logger.WarnKV(ctx, "Notification queue is full, dropping", "call", j.name)

		return false
	}
}

// alert queues a caregiver alert.
func (p *publisher) alert(ctx context.Context, alert *patient.Alert) bool {
	return p.enqueue(ctx, job{
		name: "notify",
		call: func(ctx context.Context, n Notifier) error { return n.Notify(ctx, alert) },
	})
}

// status queues a status update.
func (p *publisher) status(ctx context.Context, status patient.Status) bool {
	return p.enqueue(ctx, job{
		name: "update-status",
		call: func(ctx context.Context, n Notifier) error { return n.UpdateStatus(ctx, status) },
	})
}

// expressions queues an expression duration update.
func (p *publisher) expressions(ctx context.Context, d patient.ExpressionDurations) bool {
	return p.enqueue(ctx, job{
		name: "update-expressions",
		call: func(ctx context.Context, n Notifier) error { return n.UpdateExpressions(ctx, d) },
	})
}

// close stops accepting calls. run returns once the queue is drained.
func (p *publisher) close() {
	close(p.queue)
}

// run delivers queued calls until the queue is closed and empty or ctx is done.
func (p *publisher) run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case j, ok := <-p.queue:
			if !ok {
				return nil
			}

			if err := j.call(ctx, p.notifier); err != nil {
				logger.ErrorKV(ctx, "Notifier call failed", "call", j.name, "error", err)
			}
		}
	}
}
