package notifier

import (
	"context"
	"errors"
	"fmt"
	"net"

	"google.golang.org/grpc"

	api "github.com/oshokin/patient-monitor/internal/api/grpc/notifier"
	"github.com/oshokin/patient-monitor/internal/config"
	"github.com/oshokin/patient-monitor/internal/logger"
	"github.com/oshokin/patient-monitor/internal/messenger"
	"github.com/oshokin/patient-monitor/internal/repository/alerts"
	"github.com/oshokin/patient-monitor/internal/repository/state"
	"github.com/oshokin/patient-monitor/internal/version"
)

// Options controls the patient-notifier process.
type Options struct {
	// ConfigPath is the settings YAML file.
	ConfigPath string
	// ListenAddress overrides the port taken from the notifier address.
	ListenAddress string
	// StateFile overrides the configured report file.
	StateFile string
	// AlertsDB overrides the configured alert history database.
	AlertsDB string
	// LogLevel overrides the configured log level.
	LogLevel string
	// Ready, when set, receives the bound listen address once serving starts.
	Ready chan<- string
}

// ErrNoNotifierAddress indicates missing notifier configuration.
var ErrNoNotifierAddress = errors.New("no notifier address configured")

// Run serves the notifier until ctx is cancelled.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "patient-notifier")

	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if err = logger.ApplyLevel(opts.LogLevel, settings.LogLevel); err != nil {
		return err
	}

	stateFile := settings.StateFile
	if opts.StateFile != "" {
		stateFile = opts.StateFile
	}

	alertsDB := settings.AlertsDB
	if opts.AlertsDB != "" {
		alertsDB = opts.AlertsDB
	}

	listenAddress, err := resolveListenAddress(settings.NotifierAddress, opts.ListenAddress)
	if err != nil {
		return fmt.Errorf("resolve listen address: %w", err)
	}

	history, err := alerts.Open(ctx, alertsDB)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := history.Close(); closeErr != nil {
			logger.ErrorKV(ctx, "Failed to close alert history", "error", closeErr)
		}
	}()

	svc, err := newService(ctx,
		state.NewFileRepository(stateFile),
		history,
		messenger.New(settings.Telegram, settings.Timeout),
		nil,
	)
	if err != nil {
		return fmt.Errorf("initialise service: %w", err)
	}

	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", listenAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", listenAddress, err)
	}

	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(api.LoggingInterceptor(ctx)))
	api.RegisterServiceServer(grpcServer, api.NewServer(svc))

	logger.InfoKV(ctx, "Patient notifier listening",
		append([]any{
			"listen_address", lis.Addr().String(),
			"state_file", stateFile,
			"alerts_db", alertsDB,
			"telegram", settings.Telegram != nil,
		}, version.Fields()...)...)

	if opts.Ready != nil {
		opts.Ready <- lis.Addr().String()
	}

	done := make(chan struct{})

	go func() {
		<-ctx.Done()
		logger.Info(ctx, "Shutting down gRPC server")
		grpcServer.GracefulStop()
		close(done)
	}()

	if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", err)
	}

	<-done
	logger.Info(ctx, "Patient notifier stopped")

	return nil
}

// resolveListenAddress returns override when set, otherwise the port of
// configAddr on all interfaces.
func resolveListenAddress(configAddr, override string) (string, error) {
	if override != "" {
		return override, nil
	}

	if configAddr == "" {
		return "", ErrNoNotifierAddress
	}

	_, port, err := net.SplitHostPort(configAddr)
	if err != nil {
		return "", fmt.Errorf("invalid notifier address format %q: %w", configAddr, err)
	}

	return ":" + port, nil
}
