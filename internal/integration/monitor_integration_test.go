package integration

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/patient-monitor/internal/config"
	"github.com/oshokin/patient-monitor/internal/domain/face/facetest"
	"github.com/oshokin/patient-monitor/internal/domain/patient"
	"github.com/oshokin/patient-monitor/internal/service/monitor"
	"github.com/oshokin/patient-monitor/internal/service/status"
	"github.com/oshokin/patient-monitor/internal/source"
)

// writeFrames records five blinks followed by open eyes as a 30 fps JSON-lines file.
func writeFrames(t *testing.T, path string) {
	t.Helper()

	var buf bytes.Buffer

	at := time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)
	emit := func(b *facetest.Builder, n int) {
		for range n {
			at = at.Add(time.Second / 30)
			require.NoError(t, source.Encode(&buf, b.At(at).Frame()))
		}
	}

	closed := facetest.New().EyeRatio(facetest.ClosedEyeRatio)
	for range 5 {
		emit(closed, 2)
		emit(facetest.New(), 3)
	}

	emit(facetest.New(), 100)

	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
}

// TestMonitor_EndToEnd replays a recorded session through the monitor into a
// live notifier and reads the result back with the status queries.
func TestMonitor_EndToEnd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	f := startNotifier(t, dir)

	framesPath := filepath.Join(dir, "frames.jsonl")
	writeFrames(t, framesPath)

	cfgPath := filepath.Join(dir, "monitor-settings.yaml")
	require.NoError(t, config.Save(cfgPath, &config.Config{
		NotifierAddress: f.address,
		Timeout:         3 * time.Second,
		FrameSource:     framesPath,
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	require.NoError(t, monitor.Run(ctx, &monitor.Options{
		ConfigPath:    cfgPath,
		AllowMultiple: true,
	}))

	c := dial(t, f.address)

	history, err := c.Alerts(ctx, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, patient.WaterRequested, history[0].Action)
	require.Equal(t, "🚨 Patient Alert: Water Requested", history[0].Message)

	report, err := c.Report(ctx)
	require.NoError(t, err)
	require.Equal(t, patient.Awake, report.Status)
	require.Positive(t, report.Durations.Total())

	var out bytes.Buffer

	require.NoError(t, status.Run(ctx, &status.Options{
		ConfigPath: cfgPath,
		Query:      status.QueryStatus,
		Output:     &out,
	}))
	require.Equal(t, "The patient's current status is: *Awake*\n", out.String())

	out.Reset()
	require.NoError(t, status.Run(ctx, &status.Options{
		ConfigPath: cfgPath,
		Query:      status.QueryAlerts,
		Output:     &out,
	}))
	require.Contains(t, out.String(), "Water Requested")
}
