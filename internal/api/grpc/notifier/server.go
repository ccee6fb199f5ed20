package notifier

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/oshokin/patient-monitor/internal/domain/patient"
	"github.com/oshokin/patient-monitor/internal/logger"
)

// Alert listing limits.
const (
	DefaultAlertLimit = 20
	MaxAlertLimit     = 500
)

// Service abstracts the business operations the transport depends on.
type Service interface {
	// Notify delivers an alert. It reports false when the event was already delivered.
	Notify(ctx context.Context, alert *patient.Alert) (bool, error)
	UpdateStatus(ctx context.Context, status patient.Status) error
	UpdateExpressions(ctx context.Context, durations patient.ExpressionDurations) error
	Report(ctx context.Context) *patient.Report
	// Alerts returns up to limit alerts, newest first.
	Alerts(ctx context.Context, limit int) ([]patient.Alert, error)
}

// Server implements NotifierService on top of a Service.
type Server struct {
	service Service
}

var _ ServiceServer = (*Server)(nil)

// NewServer wires service into a gRPC handler.
func NewServer(service Service) *Server {
	return &Server{service: service}
}

// Notify forwards an alert to caregivers.
func (s *Server) Notify(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	alert, err := alertFromStruct(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	delivered, err := s.service.Notify(ctx, alert)
	if err != nil {
		return nil, toStatus(ctx, err, "unable to deliver alert")
	}

	if !delivered {
		logger.DebugKV(ctx, "Duplicate alert acknowledged", "event_id", alert.EventID)
	}

	return new(emptypb.Empty), nil
}

// UpdateStatus records the patient's sleep/wake status.
func (s *Server) UpdateStatus(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, errRequestRequired.Error())
	}

	st, ok := patient.ParseStatus(req.GetValue())
	if !ok {
		return nil, status.Errorf(codes.InvalidArgument, "%s %q", errUnknownStatus, req.GetValue())
	}

	if err := s.service.UpdateStatus(ctx, st); err != nil {
		return nil, toStatus(ctx, err, "unable to persist status")
	}

	return new(emptypb.Empty), nil
}

// UpdateExpressions records the accumulated expression durations.
func (s *Server) UpdateExpressions(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	durations, err := durationsFromStruct(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	if err := s.service.UpdateExpressions(ctx, durations); err != nil {
		return nil, toStatus(ctx, err, "unable to persist expressions")
	}

	return new(emptypb.Empty), nil
}

// GetReport returns the current patient report.
func (s *Server) GetReport(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	report := s.service.Report(ctx)
	if report == nil {
		report = patient.NewReport()
	}

	response, err := EncodeReport(report)
	if err != nil {
		return nil, status.Error(codes.Internal, "unable to encode report")
	}

	return response, nil
}

// ListAlerts returns the most recent alerts. A missing or zero limit uses
// DefaultAlertLimit; larger limits are capped at MaxAlertLimit.
func (s *Server) ListAlerts(ctx context.Context, req *wrapperspb.Int32Value) (*structpb.ListValue, error) {
	limit := int(req.GetValue())

	switch {
	case limit < 0:
		return nil, status.Error(codes.InvalidArgument, "limit must not be negative")
	case limit == 0:
		limit = DefaultAlertLimit
	case limit > MaxAlertLimit:
		limit = MaxAlertLimit
	}

	alerts, err := s.service.Alerts(ctx, limit)
	if err != nil {
		return nil, toStatus(ctx, err, "unable to read alert history")
	}

	response, err := alertsToList(alerts)
	if err != nil {
		return nil, status.Error(codes.Internal, "unable to encode alerts")
	}

	return response, nil
}

// toStatus maps a service error to a gRPC status.
func toStatus(ctx context.Context, err error, message string) error {
	logger.ErrorKV(ctx, message, "error", err)

	if errors.Is(err, patient.ErrDeliveryFailed) {
		return status.Error(codes.Unavailable, message)
	}

	return status.Error(codes.Internal, message)
}
