package monitor

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	api "github.com/oshokin/patient-monitor/internal/api/grpc/notifier"
	"github.com/oshokin/patient-monitor/internal/config"
	"github.com/oshokin/patient-monitor/internal/domain/face"
	"github.com/oshokin/patient-monitor/internal/domain/patient"
	"github.com/oshokin/patient-monitor/internal/engine"
	"github.com/oshokin/patient-monitor/internal/logger"
	"github.com/oshokin/patient-monitor/internal/service/process"
	"github.com/oshokin/patient-monitor/internal/source"
	"github.com/oshokin/patient-monitor/internal/version"
)

// Options controls the patient-monitor process.
type Options struct {
	// ConfigPath is the settings YAML file.
	ConfigPath string
	// NotifierAddress overrides the configured notifier address.
	NotifierAddress string
	// FrameSource overrides the configured frame source, "-" for stdin.
	FrameSource string
	// LogLevel overrides the configured log level.
	LogLevel string
	// AllowMultiple skips the single-instance check.
	AllowMultiple bool
}

// Run feeds frames from the configured source into the engine until the
// source is exhausted or ctx is cancelled.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "patient-monitor")

	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if err = logger.ApplyLevel(opts.LogLevel, settings.LogLevel); err != nil {
		return err
	}

	if !opts.AllowMultiple {
		if err = process.EnsureSingleInstance(process.SelfExecutable()); err != nil {
			return err
		}
	}

	notifierAddress := settings.NotifierAddress
	if opts.NotifierAddress != "" {
		notifierAddress = opts.NotifierAddress
	}

	frameSource := settings.FrameSource
	if opts.FrameSource != "" {
		frameSource = opts.FrameSource
	}

	actor, err := api.DetectActor()
	if err != nil {
		logger.WarnKV(ctx, "Actor detected partially", "error", err)
	}

	e, err := engine.New(settings.Engine)
	if err != nil {
		return err
	}

	client, err := api.Dial(ctx, notifierAddress,
		api.WithCallTimeout(settings.Timeout),
		api.WithUserAgent(version.UserAgent("patient-monitor")),
	)
	if err != nil {
		return fmt.Errorf("dial notifier: %w", err)
	}

	defer func() {
		_ = client.Close()
	}()

	input, err := source.Open(frameSource)
	if err != nil {
		return err
	}

	defer func() {
		_ = input.Close()
	}()

	logger.InfoKV(ctx, "Patient monitor started",
		append([]any{
			"notifier_address", notifierAddress,
			"frame_source", frameSource,
			"queue_size", settings.QueueSize,
		}, version.Fields()...)...)

	return serve(ctx, e, client, source.NewReader(input), actor, settings.QueueSize)
}

// serve runs the engine loop and the publisher until the source is exhausted
// and every queued notification is delivered, or ctx is done. The reader is
// left running on cancellation since a blocked stdin read cannot be interrupted.
func serve(
	ctx context.Context,
	e *engine.Engine,
	n Notifier,
	src frameSource,
	actor *patient.Actor,
	queueSize int,
) error {
	p := newPublisher(n, queueSize)
	m := newMonitor(e, p, actor, nil)

	frames := make(chan *face.Frame)
	readErr := make(chan error, 1)

	go func() {
		readErr <- readFrames(ctx, src, frames)

		close(frames)
	}()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer p.close()

		return m.run(gctx, frames)
	})

	g.Go(func() error {
		return p.run(gctx)
	})

	err := g.Wait()

	logger.InfoKV(ctx, "Patient monitor stopped", "frames", e.Snapshot().Frames)

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	select {
	case err = <-readErr:
		if err != nil {
			return fmt.Errorf("read frames: %w", err)
		}
	default:
	}

	return nil
}
