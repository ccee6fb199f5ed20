package patient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestExpressionDurations_AddIsMonotonic verifies negative deltas never shrink accumulators.
func TestExpressionDurations_AddIsMonotonic(t *testing.T) {
	t.Parallel()

	var d ExpressionDurations

	d.Add(Happy, 2*time.Second)
	d.Add(Happy, -time.Second)
	d.Add(Angry, 500*time.Millisecond)
	d.Add(Expression("Bored"), time.Hour)

	require.Equal(t, 2*time.Second, d.Happy)
	require.Equal(t, 500*time.Millisecond, d.Get(Angry))
	require.Equal(t, 2500*time.Millisecond, d.Total())
}

// TestExpressionDurations_Seconds checks conversion in both directions.
func TestExpressionDurations_Seconds(t *testing.T) {
	t.Parallel()

	d := ExpressionDurations{
		Neutral:   3 * time.Second,
		Happy:     1500 * time.Millisecond,
		Surprised: 0,
		Angry:     time.Minute,
	}

	seconds := d.Seconds()
	require.Len(t, seconds, 4)
	require.InDelta(t, 1.5, seconds["Happy"], 1e-9)
	require.InDelta(t, 60.0, seconds["Angry"], 1e-9)

	require.Equal(t, d, DurationsFromSeconds(seconds))
}

// TestNewEvent ensures every event gets a distinct identifier.
func TestNewEvent(t *testing.T) {
	t.Parallel()

	ts := time.Unix(42, 0)
	a := NewEvent(WaterRequested, ts)
	b := NewEvent(WaterRequested, ts)

	require.NotEmpty(t, a.ID)
	require.NotEqual(t, a.ID, b.ID)
	require.Equal(t, ts, a.Timestamp)
}

// TestParseAction verifies only real actions are accepted.
func TestParseAction(t *testing.T) {
	t.Parallel()

	a, ok := ParseAction("EMERGENCY ALERT")
	require.True(t, ok)
	require.Equal(t, EmergencyAlert, a)

	_, ok = ParseAction("None")
	require.False(t, ok)
}

// TestNewSnapshot checks neutral defaults.
func TestNewSnapshot(t *testing.T) {
	t.Parallel()

	s := NewSnapshot(time.Unix(1, 0))
	require.Equal(t, Awake, s.PatientStatus)
	require.Equal(t, Coordinates{X: 0.5, Y: 0.5}, s.GazePoint)
	require.Equal(t, ActionNone, s.LastAction)
}
