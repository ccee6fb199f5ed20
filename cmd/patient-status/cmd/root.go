package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/oshokin/patient-monitor/internal/config"
	"github.com/oshokin/patient-monitor/internal/service/status"
	"github.com/oshokin/patient-monitor/internal/version"
)

var (
	// configPath stores the path to the configuration YAML file.
	configPath string
	// notifierAddress overrides the configured notifier address.
	notifierAddress string
	// logLevel overrides the configured log level.
	logLevel string
	// watch repeats the query at the given interval.
	watch time.Duration
	// limit caps the number of listed alerts.
	limit int

	// rootCmd groups the notifier report queries.
	rootCmd = &cobra.Command{
		Use:   "patient-status",
		Short: "Query the patient report kept by the notifier.",
		Long: `Prints the patient report kept by the notifier in the caregiver bot format.

Use --watch to repeat the query until interrupted.`,
	}

	statusCmd = &cobra.Command{
		Use:   "status",
		Short: "Print whether the patient is awake or sleeping.",
		Args:  cobra.NoArgs,
		RunE:  runQuery(status.QueryStatus),
	}

	expressionsCmd = &cobra.Command{
		Use:   "expressions",
		Short: "Print time spent in each facial expression.",
		Args:  cobra.NoArgs,
		RunE:  runQuery(status.QueryExpressions),
	}

	alertsCmd = &cobra.Command{
		Use:   "alerts",
		Short: "Print the most recent caregiver alerts.",
		Args:  cobra.NoArgs,
		RunE:  runQuery(status.QueryAlerts),
	}
)

func runQuery(query status.Query) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer stop()

		return status.Run(ctx, &status.Options{
			ConfigPath:      configPath,
			NotifierAddress: notifierAddress,
			LogLevel:        logLevel,
			Query:           query,
			Limit:           limit,
			Watch:           watch,
			Output:          cmd.OutOrStdout(),
		})
	}
}

// Execute runs the patient-status CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	flags.StringVarP(&notifierAddress, "notifier", "n", "", "notifier address, overrides configuration")
	flags.StringVarP(&logLevel, "log-level", "l", "", "log level: debug, info, warn or error")
	flags.DurationVarP(&watch, "watch", "w", 0, "repeat the query at this interval")

	alertsCmd.Flags().IntVar(&limit, "limit", 0, "maximum number of alerts, server default when zero")

	rootCmd.AddCommand(statusCmd, expressionsCmd, alertsCmd)
}
