package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/patient-monitor/internal/config"
	"github.com/oshokin/patient-monitor/internal/service/monitor"
	"github.com/oshokin/patient-monitor/internal/version"
)

var (
	// configPath stores the path to the configuration YAML file.
	configPath string
	// frameSource overrides the configured frame source.
	frameSource string
	// logLevel overrides the configured log level.
	logLevel string
	// allowMultiple disables the single-instance guard.
	allowMultiple bool

	// rootCmd represents the base command for monitoring a patient.
	rootCmd = &cobra.Command{
		Use:   "patient-monitor [notifier-address]",
		Short: "Interpret face landmark frames and alert caregivers.",
		Long: `Reads face landmark frames as JSON lines and interprets them in real time.

Tracks blinks, sleep and wake, facial expressions, head gestures and gaze.
Blink runs of five and seven request water and food, head gestures request
the washroom or raise an emergency alert. Every request and every sleep/wake
transition is sent to the notifier, expression durations every two seconds.

Frames are read from the configured source, "-" meaning standard input.
Notifier address can be provided as argument or loaded from configuration file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			var notifierAddress string
			if len(args) > 0 {
				notifierAddress = args[0]
			}

			return monitor.Run(ctx, &monitor.Options{
				ConfigPath:      configPath,
				NotifierAddress: notifierAddress,
				FrameSource:     frameSource,
				LogLevel:        logLevel,
				AllowMultiple:   allowMultiple,
			})
		},
	}
)

// Execute runs the patient-monitor CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVarP(&frameSource, "source", "s", "", `frame source file, "-" for stdin`)
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", "", "log level: debug, info, warn or error")

	rootCmd.Flags().BoolVar(&allowMultiple, "allow-multiple", false, "allow several monitors on one host")

	err := rootCmd.Flags().MarkHidden("allow-multiple")
	if err != nil {
		panic(err)
	}
}
