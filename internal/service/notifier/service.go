package notifier

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/oshokin/patient-monitor/internal/domain/patient"
	"github.com/oshokin/patient-monitor/internal/logger"
	"github.com/oshokin/patient-monitor/internal/messenger"
	"github.com/oshokin/patient-monitor/internal/repository/alerts"
	"github.com/oshokin/patient-monitor/internal/repository/state"
)

// service holds the notifier business logic.
type service struct {
	state     state.Repository
	alerts    alerts.Repository
	messenger messenger.Messenger
	now       func() time.Time

	// mu serialises alerts so duplicates are detected before delivery.
	mu     sync.Mutex
	report *patient.Report
}

// newService restores the last report from stateRepo, if any.
func newService(
	ctx context.Context,
	stateRepo state.Repository,
	alertRepo alerts.Repository,
	m messenger.Messenger,
	now func() time.Time,
) (*service, error) {
	if now == nil {
		now = time.Now
	}

	s := &service{
		state:     stateRepo,
		alerts:    alertRepo,
		messenger: m,
		now:       now,
		report:    patient.NewReport(),
	}

	report, err := stateRepo.Load(ctx)

	switch {
	case err == nil:
		s.report = report
		logger.InfoKV(ctx, "Patient report restored", "status", report.Status, "updated_at", report.UpdatedAt)
	case errors.Is(err, state.ErrNotFound):
	default:
		return nil, fmt.Errorf("load state: %w", err)
	}

	return s, nil
}

// Notify delivers alert unless its event was already delivered.
func (s *service) Notify(ctx context.Context, alert *patient.Alert) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen, err := s.alerts.Exists(ctx, alert.EventID)
	if err != nil {
		return false, fmt.Errorf("check alert history: %w", err)
	}

	if seen {
		return false, nil
	}

	if err = s.messenger.Send(ctx, alert.Message); err != nil {
		return false, fmt.Errorf("%w: %w", patient.ErrDeliveryFailed, err)
	}

	received := alert.Clone()
	received.ReceivedAt = s.now()

	if _, err = s.alerts.Record(ctx, received); err != nil {
		return false, fmt.Errorf("record alert: %w", err)
	}

	next := s.report.Clone()
	next.LastAlert = received
	next.UpdatedAt = received.ReceivedAt

	if err = s.save(ctx, next); err != nil {
		return false, err
	}

	logger.InfoKV(ctx, "Alert delivered", "event_id", received.EventID, "action", received.Action)

	return true, nil
}

// UpdateStatus records the patient's sleep/wake status.
func (s *service) UpdateStatus(ctx context.Context, status patient.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.report.Status

	next := s.report.Clone()
	next.Status = status
	next.UpdatedAt = s.now()

	if err := s.save(ctx, next); err != nil {
		return err
	}

	if previous != status {
		logger.InfoKV(ctx, "Patient status changed", "from", previous, "to", status)
	}

	return nil
}

// UpdateExpressions records the accumulated expression durations.
func (s *service) UpdateExpressions(ctx context.Context, durations patient.ExpressionDurations) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.report.Clone()
	next.Durations = durations
	next.UpdatedAt = s.now()

	return s.save(ctx, next)
}

// Report returns a copy of the current report.
func (s *service) Report(context.Context) *patient.Report {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.report.Clone()
}

// Alerts returns the most recent alerts.
func (s *service) Alerts(ctx context.Context, limit int) ([]patient.Alert, error) {
	list, err := s.alerts.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}

	return list, nil
}

// save persists next and makes it current. Callers hold s.mu.
func (s *service) save(ctx context.Context, next *patient.Report) error {
	if err := s.state.Save(ctx, next); err != nil {
		return fmt.Errorf("persist state: %w", err)
	}

	s.report = next

	return nil
}
