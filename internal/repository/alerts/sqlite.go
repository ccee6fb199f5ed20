package alerts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	// Registers the pure-Go "sqlite" driver.
	_ "modernc.org/sqlite"

	"github.com/oshokin/patient-monitor/internal/domain/patient"
	"github.com/oshokin/patient-monitor/internal/logger"
)

// Repository defines persistence operations for the alert history.
type Repository interface {
	// Exists reports whether an alert with eventID was recorded.
	Exists(ctx context.Context, eventID string) (bool, error)
	// Record stores alert. It reports false when the event ID is already known.
	Record(ctx context.Context, alert *patient.Alert) (bool, error)
	// List returns up to limit alerts, newest first.
	List(ctx context.Context, limit int) ([]patient.Alert, error)
	Close() error
}

var errAlertRequired = errors.New("alert must be provided")

// SQLiteRepository stores alerts in a SQLite database file.
type SQLiteRepository struct {
	db *sql.DB
}

var _ Repository = (*SQLiteRepository)(nil)

// Open opens or creates the database at path and migrates its schema.
// ":memory:" yields a private in-memory database.
func Open(ctx context.Context, path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open alerts database: %w", err)
	}

	// SQLite has a single writer.
	db.SetMaxOpenConns(1)

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("open alerts database: %w", err)
	}

	if err = migrateUp(db); err != nil {
		_ = db.Close()

		return nil, err
	}

	version, err := schemaVersion(db)
	if err != nil {
		_ = db.Close()

		return nil, err
	}

	logger.DebugKV(ctx, "Alert history ready", "path", path, "schema_version", version)

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Exists reports whether eventID was recorded.
func (r *SQLiteRepository) Exists(ctx context.Context, eventID string) (bool, error) {
	var found int

	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM alerts WHERE event_id = ?", eventID).Scan(&found)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("look up alert: %w", err)
	default:
		return true, nil
	}
}

// Record inserts alert unless its event ID is already stored.
func (r *SQLiteRepository) Record(ctx context.Context, alert *patient.Alert) (bool, error) {
	if alert == nil {
		return false, errAlertRequired
	}

	var hostname, username sql.NullString
	if alert.Actor != nil {
		hostname = sql.NullString{String: alert.Actor.Hostname, Valid: true}
		username = sql.NullString{String: alert.Actor.Username, Valid: true}
	}

	result, err := r.db.ExecContext(ctx, `
		INSERT INTO alerts (event_id, action, message, hostname, username, received_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (event_id) DO NOTHING`,
		alert.EventID,
		string(alert.Action),
		alert.Message,
		hostname,
		username,
		alert.ReceivedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return false, fmt.Errorf("insert alert: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert alert: %w", err)
	}

	return affected > 0, nil
}

// List returns up to limit alerts, newest first.
func (r *SQLiteRepository) List(ctx context.Context, limit int) ([]patient.Alert, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT event_id, action, message, hostname, username, received_at
		FROM alerts
		ORDER BY alert_id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query alerts: %w", err)
	}

	defer func() { _ = rows.Close() }()

	var alerts []patient.Alert

	for rows.Next() {
		var (
			alert              patient.Alert
			action, receivedAt string
			hostname, username sql.NullString
		)

		if err = rows.Scan(&alert.EventID, &action, &alert.Message, &hostname, &username, &receivedAt); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}

		alert.Action = patient.Action(action)

		if hostname.Valid || username.Valid {
			alert.Actor = &patient.Actor{Hostname: hostname.String, Username: username.String}
		}

		if alert.ReceivedAt, err = time.Parse(time.RFC3339Nano, receivedAt); err != nil {
			return nil, fmt.Errorf("parse alert time: %w", err)
		}

		alerts = append(alerts, alert)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate alerts: %w", err)
	}

	return alerts, nil
}
