// Package alerts keeps the history of caregiver alerts in SQLite.
package alerts
