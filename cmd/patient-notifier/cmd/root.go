package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/patient-monitor/internal/config"
	"github.com/oshokin/patient-monitor/internal/service/notifier"
	"github.com/oshokin/patient-monitor/internal/version"
)

var (
	// configPath stores the path to the configuration YAML file.
	configPath string
	// stateFile overrides the configured report file.
	stateFile string
	// alertsDB overrides the configured alert history database.
	alertsDB string
	// logLevel overrides the configured log level.
	logLevel string

	// rootCmd represents the base command for the notifier server.
	rootCmd = &cobra.Command{
		Use:   "patient-notifier [listen-address]",
		Short: "Run the notifier gRPC server and forward alerts to caregivers.",
		Long: `Receives alerts, patient status and expression durations from the monitor.

Alerts are forwarded to Telegram when configured, otherwise written to the log.
Every alert is recorded once in the alert history, repeated deliveries of the
same event are acknowledged without sending again. The latest status and
expression durations are persisted to the state file.

Listen address can be provided as argument or taken from the notifier address in configuration.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			var listenAddress string
			if len(args) > 0 {
				listenAddress = args[0]
			}

			return notifier.Run(ctx, &notifier.Options{
				ConfigPath:    configPath,
				ListenAddress: listenAddress,
				StateFile:     stateFile,
				AlertsDB:      alertsDB,
				LogLevel:      logLevel,
			})
		},
	}
)

// Execute runs the patient-notifier CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVarP(&stateFile, "state-file", "s", "", "path to persist the patient report")
	rootCmd.Flags().StringVarP(&alertsDB, "alerts-db", "a", "", "path to the alert history database")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "", "log level: debug, info, warn or error")
}
