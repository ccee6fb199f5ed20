package alerts

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/patient-monitor/internal/domain/patient"
)

func openTemp(t *testing.T) *SQLiteRepository {
	t.Helper()

	repo, err := Open(context.Background(), filepath.Join(t.TempDir(), "alerts.db"))
	require.NoError(t, err)

	t.Cleanup(func() { require.NoError(t, repo.Close()) })

	return repo
}

// TestSQLiteRepository_RecordDeduplicates stores each event ID once.
func TestSQLiteRepository_RecordDeduplicates(t *testing.T) {
	t.Parallel()

	repo := openTemp(t)
	ctx := context.Background()

	_, err := repo.Record(ctx, nil)
	require.ErrorIs(t, err, errAlertRequired)

	alert := &patient.Alert{
		EventID:    "e-1",
		Action:     patient.WaterRequested,
		Message:    "🚨 Patient Alert: Water Requested",
		Actor:      &patient.Actor{Hostname: "ward-3", Username: "monitor"},
		ReceivedAt: time.Date(2026, 4, 5, 6, 7, 8, 9, time.UTC),
	}

	exists, err := repo.Exists(ctx, alert.EventID)
	require.NoError(t, err)
	require.False(t, exists)

	inserted, err := repo.Record(ctx, alert)
	require.NoError(t, err)
	require.True(t, inserted)

	inserted, err = repo.Record(ctx, alert)
	require.NoError(t, err)
	require.False(t, inserted)

	exists, err = repo.Exists(ctx, alert.EventID)
	require.NoError(t, err)
	require.True(t, exists)

	alerts, err := repo.List(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, []patient.Alert{*alert}, alerts)
}

// TestSQLiteRepository_ListNewestFirst honours the limit and ordering.
func TestSQLiteRepository_ListNewestFirst(t *testing.T) {
	t.Parallel()

	repo := openTemp(t)
	ctx := context.Background()
	start := time.Date(2026, 4, 5, 6, 0, 0, 0, time.UTC)

	for i := range 5 {
		_, err := repo.Record(ctx, &patient.Alert{
			EventID:    fmt.Sprintf("e-%d", i),
			Action:     patient.ActionNone,
			Message:    "💤 Patient Status: Sleeping",
			ReceivedAt: start.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	alerts, err := repo.List(ctx, 3)
	require.NoError(t, err)
	require.Len(t, alerts, 3)
	require.Equal(t, "e-4", alerts[0].EventID)
	require.Equal(t, "e-2", alerts[2].EventID)
	require.Nil(t, alerts[0].Actor)

	empty := openTemp(t)

	alerts, err = empty.List(ctx, 3)
	require.NoError(t, err)
	require.Empty(t, alerts)
}

// TestOpen_MigratesOnce reopens an existing database without reapplying the schema.
func TestOpen_MigratesOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "alerts.db")

	repo, err := Open(ctx, path)
	require.NoError(t, err)

	version, err := schemaVersion(repo.db)
	require.NoError(t, err)
	require.Equal(t, uint(1), version)

	inserted, err := repo.Record(ctx, &patient.Alert{EventID: "e-1", Message: "m", ReceivedAt: time.Now()})
	require.NoError(t, err)
	require.True(t, inserted)
	require.NoError(t, repo.Close())

	repo, err = Open(ctx, path)
	require.NoError(t, err)

	t.Cleanup(func() { require.NoError(t, repo.Close()) })

	found, err := repo.Exists(ctx, "e-1")
	require.NoError(t, err)
	require.True(t, found)
}
