package status

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	api "github.com/oshokin/patient-monitor/internal/api/grpc/notifier"
	"github.com/oshokin/patient-monitor/internal/config"
	"github.com/oshokin/patient-monitor/internal/domain/patient"
	"github.com/oshokin/patient-monitor/internal/logger"
	"github.com/oshokin/patient-monitor/internal/version"
)

// Query selects what to print.
type Query string

// Queries.
const (
	QueryStatus      Query = "status"
	QueryExpressions Query = "expressions"
	QueryAlerts      Query = "alerts"
)

// ErrUnknownQuery is returned for a query outside the known set.
var ErrUnknownQuery = errors.New("unknown query")

// Reporter is the read side of the notifier.
type Reporter interface {
	Report(ctx context.Context) (*patient.Report, error)
	Alerts(ctx context.Context, limit int) ([]patient.Alert, error)
}

// Options controls a patient-status invocation.
type Options struct {
	// ConfigPath is the settings YAML file.
	ConfigPath string
	// NotifierAddress overrides the configured notifier address.
	NotifierAddress string
	// LogLevel overrides the configured log level.
	LogLevel string
	// Query selects the output.
	Query Query
	// Limit caps the number of alerts, zero for the server default.
	Limit int
	// Watch repeats the query at this interval until cancelled when positive.
	Watch time.Duration
	// Output receives the rendered text, stdout when nil.
	Output io.Writer
}

// Run queries the notifier and prints the result.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "patient-status")

	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if err = logger.ApplyLevel(opts.LogLevel, settings.LogLevel); err != nil {
		return err
	}

	address := settings.NotifierAddress
	if opts.NotifierAddress != "" {
		address = opts.NotifierAddress
	}

	client, err := api.Dial(ctx, address,
		api.WithCallTimeout(settings.Timeout),
		api.WithUserAgent(version.UserAgent("patient-status")),
	)
	if err != nil {
		return fmt.Errorf("dial notifier: %w", err)
	}

	defer func() {
		_ = client.Close()
	}()

	return watch(ctx, client, opts)
}

// watch prints the query once, or every opts.Watch until ctx is done.
// Failed polls are logged and retried on the next tick.
func watch(ctx context.Context, r Reporter, opts *Options) error {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	if err := show(ctx, r, opts, out); err != nil || opts.Watch <= 0 {
		return err
	}

	ticker := time.NewTicker(opts.Watch)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := show(ctx, r, opts, out); err != nil {
				if errors.Is(err, ErrUnknownQuery) {
					return err
				}

				logger.ErrorKV(ctx, "Query failed", "query", opts.Query, "error", err)
			}
		}
	}
}

func show(ctx context.Context, r Reporter, opts *Options, out io.Writer) error {
	text, err := render(ctx, r, opts.Query, opts.Limit)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, strings.TrimRight(text, "\n"))

	return err
}

// render runs one query and formats its result.
func render(ctx context.Context, r Reporter, query Query, limit int) (string, error) {
	switch query {
	case QueryStatus, QueryExpressions:
		report, err := r.Report(ctx)
		if err != nil {
			return "", fmt.Errorf("get report: %w", err)
		}

		if query == QueryStatus {
			return FormatStatus(report), nil
		}

		return FormatExpressions(report.Durations), nil
	case QueryAlerts:
		alerts, err := r.Alerts(ctx, limit)
		if err != nil {
			return "", fmt.Errorf("list alerts: %w", err)
		}

		return FormatAlerts(alerts), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownQuery, query)
	}
}
