package status

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/patient-monitor/internal/domain/patient"
)

var errUnavailable = errors.New("unavailable")

// fakeReporter serves a canned report and counts calls.
type fakeReporter struct {
	mu     sync.Mutex
	report *patient.Report
	alerts []patient.Alert
	err    error
	calls  int
	limits []int
}

func (f *fakeReporter) Report(context.Context) (*patient.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++

	if f.err != nil {
		return nil, f.err
	}

	return f.report.Clone(), nil
}

func (f *fakeReporter) Alerts(_ context.Context, limit int) ([]patient.Alert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	f.limits = append(f.limits, limit)

	return f.alerts, f.err
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	cases := []struct {
		d    time.Duration
		want string
	}{
		{d: 0, want: "0h 0m 0s"},
		{d: 1499 * time.Millisecond, want: "0h 0m 1s"},
		{d: 1500 * time.Millisecond, want: "0h 0m 2s"},
		{d: 59*time.Minute + 59*time.Second, want: "0h 59m 59s"},
		{d: 3*time.Hour + 4*time.Minute + 5*time.Second, want: "3h 4m 5s"},
		{d: 26*time.Hour + 59600*time.Millisecond, want: "26h 1m 0s"},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, FormatDuration(tc.d), tc.d.String())
	}
}

func TestFormatStatus(t *testing.T) {
	t.Parallel()

	report := patient.NewReport()
	require.Equal(t, "The patient's current status is: *Awake*", FormatStatus(report))

	report.Status = patient.Sleeping
	require.Equal(t, "The patient's current status is: *Sleeping*", FormatStatus(report))
}

func TestFormatExpressions(t *testing.T) {
	t.Parallel()

	got := FormatExpressions(patient.ExpressionDurations{
		Neutral: 3725 * time.Second,
		Happy:   90 * time.Second,
	})

	want := "*Patient Expression Report:*\n\n" +
		"*- Happy:* 0h 1m 30s\n" +
		"*- Surprised:* 0h 0m 0s\n" +
		"*- Neutral:* 1h 2m 5s\n" +
		"*- Angry:* 0h 0m 0s\n"
	require.Equal(t, want, got)
}

func TestFormatAlerts(t *testing.T) {
	t.Parallel()

	require.Equal(t, "No alerts recorded.", FormatAlerts(nil))

	at := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	got := FormatAlerts([]patient.Alert{
		{
			Message:    "🚨 Patient Alert: Water Requested",
			Actor:      &patient.Actor{Hostname: "ward-3", Username: "nurse"},
			ReceivedAt: at,
		},
		{Message: "💤 Patient Status: Sleeping", ReceivedAt: at.Add(time.Minute)},
	})

	require.Equal(t,
		"2026-03-04T05:06:07Z  🚨 Patient Alert: Water Requested (nurse@ward-3)\n"+
			"2026-03-04T05:07:07Z  💤 Patient Status: Sleeping\n",
		got)
}

func TestWatch_Once(t *testing.T) {
	t.Parallel()

	report := patient.NewReport()
	report.Durations.Angry = 5 * time.Second

	cases := map[Query]string{
		QueryStatus:      "The patient's current status is: *Awake*\n",
		QueryExpressions: FormatExpressions(report.Durations),
		QueryAlerts:      "No alerts recorded.\n",
	}

	for query, want := range cases {
		var out bytes.Buffer

		r := &fakeReporter{report: report}
		require.NoError(t, watch(context.Background(), r, &Options{Query: query, Limit: 7, Output: &out}))
		require.Equal(t, want, out.String(), query)
		require.Equal(t, 1, r.calls)

		if query == QueryAlerts {
			require.Equal(t, []int{7}, r.limits)
		}
	}
}

func TestWatch_Errors(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	err := watch(context.Background(), &fakeReporter{}, &Options{Query: "weather", Output: &out})
	require.ErrorIs(t, err, ErrUnknownQuery)

	err = watch(context.Background(), &fakeReporter{err: errUnavailable}, &Options{Query: QueryStatus, Output: &out})
	require.ErrorIs(t, err, errUnavailable)
	require.Empty(t, out.String())
}

func TestWatch_Polls(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		ctx, cancel := context.WithTimeout(t.Context(), 10*time.Second+time.Millisecond)
		defer cancel()

		var out bytes.Buffer

		r := &fakeReporter{report: patient.NewReport()}
		require.NoError(t, watch(ctx, r, &Options{Query: QueryStatus, Watch: 5 * time.Second, Output: &out}))

		require.Equal(t, 3, r.calls)
		require.Equal(t, 3, strings.Count(out.String(), "*Awake*"))
	})
}
