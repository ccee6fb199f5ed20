package notifier

import (
	"errors"
	"fmt"
	"math"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/patient-monitor/internal/domain/patient"
)

// Struct field names shared by the server and the client.
const (
	fieldMessage    = "message"
	fieldEventID    = "event_id"
	fieldAction     = "action"
	fieldHostname   = "hostname"
	fieldUsername   = "username"
	fieldReceivedAt = "received_at"
	fieldStatus     = "status"
	fieldDurations  = "durations"
	fieldLastAlert  = "last_alert"
	fieldUpdatedAt  = "updated_at"
)

var (
	errRequestRequired = errors.New("request is required")
	errMessageRequired = errors.New("message is required")
	errEventIDRequired = errors.New("event_id is required")
	errUnknownAction   = errors.New("unknown action")
	errUnknownStatus   = errors.New("unknown status")
	errNotString       = errors.New("must be a string")
	errNotNumber       = errors.New("must be a finite non-negative number")
	errNotStruct       = errors.New("must be a struct")
	errUnknownField    = errors.New("unknown field")
)

// stringField reads an optional string field.
func stringField(s *structpb.Struct, key string) (string, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return "", nil
	}

	if _, isNull := v.GetKind().(*structpb.Value_NullValue); isNull {
		return "", nil
	}

	str, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", fmt.Errorf("%s %w", key, errNotString)
	}

	return str.StringValue, nil
}

// timeField reads an optional RFC 3339 timestamp.
func timeField(s *structpb.Struct, key string) (time.Time, error) {
	raw, err := stringField(s, key)
	if err != nil || raw == "" {
		return time.Time{}, err
	}

	ts, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", key, err)
	}

	return ts, nil
}

func formatTime(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}

	return ts.UTC().Format(time.RFC3339Nano)
}

// alertToStruct encodes an alert for Notify and alert listings.
func alertToStruct(a *patient.Alert) (*structpb.Struct, error) {
	fields := map[string]any{
		fieldMessage: a.Message,
		fieldEventID: a.EventID,
		fieldAction:  string(a.Action),
	}

	if a.Actor != nil {
		fields[fieldHostname] = a.Actor.Hostname
		fields[fieldUsername] = a.Actor.Username
	}

	if !a.ReceivedAt.IsZero() {
		fields[fieldReceivedAt] = formatTime(a.ReceivedAt)
	}

	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("encode alert: %w", err)
	}

	return s, nil
}

// alertFromStruct decodes and validates an alert.
func alertFromStruct(s *structpb.Struct) (*patient.Alert, error) {
	if s == nil {
		return nil, errRequestRequired
	}

	var (
		alert patient.Alert
		actor patient.Actor
		err   error
	)

	targets := []struct {
		key string
		dst *string
	}{
		{fieldMessage, &alert.Message},
		{fieldEventID, &alert.EventID},
		{fieldHostname, &actor.Hostname},
		{fieldUsername, &actor.Username},
	}

	for _, f := range targets {
		if *f.dst, err = stringField(s, f.key); err != nil {
			return nil, err
		}
	}

	switch {
	case alert.Message == "":
		return nil, errMessageRequired
	case alert.EventID == "":
		return nil, errEventIDRequired
	}

	action, err := stringField(s, fieldAction)
	if err != nil {
		return nil, err
	}

	alert.Action = patient.ActionNone
	if action != "" && action != string(patient.ActionNone) {
		parsed, ok := patient.ParseAction(action)
		if !ok {
			return nil, fmt.Errorf("%w %q", errUnknownAction, action)
		}

		alert.Action = parsed
	}

	if actor != (patient.Actor{}) {
		alert.Actor = &actor
	}

	if alert.ReceivedAt, err = timeField(s, fieldReceivedAt); err != nil {
		return nil, err
	}

	return &alert, nil
}

// durationsToStruct encodes the accumulators as seconds per expression.
func durationsToStruct(d patient.ExpressionDurations) *structpb.Struct {
	fields := make(map[string]*structpb.Value, len(patient.Expressions()))
	for name, seconds := range d.Seconds() {
		fields[name] = structpb.NewNumberValue(seconds)
	}

	return &structpb.Struct{Fields: fields}
}

// durationsFromStruct decodes seconds per expression. Missing expressions are zero.
func durationsFromStruct(s *structpb.Struct) (patient.ExpressionDurations, error) {
	if s == nil {
		return patient.ExpressionDurations{}, errRequestRequired
	}

	seconds := make(map[string]float64, len(s.GetFields()))

	for key, v := range s.GetFields() {
		if !knownExpression(key) {
			return patient.ExpressionDurations{}, fmt.Errorf("%w %q", errUnknownField, key)
		}

		n, ok := v.GetKind().(*structpb.Value_NumberValue)
		if !ok || n.NumberValue < 0 || math.IsNaN(n.NumberValue) || math.IsInf(n.NumberValue, 0) {
			return patient.ExpressionDurations{}, fmt.Errorf("%s %w", key, errNotNumber)
		}

		seconds[key] = n.NumberValue
	}

	return patient.DurationsFromSeconds(seconds), nil
}

func knownExpression(name string) bool {
	for _, e := range patient.Expressions() {
		if string(e) == name {
			return true
		}
	}

	return false
}

// EncodeReport encodes the notifier report as returned by GetReport.
func EncodeReport(r *patient.Report) (*structpb.Struct, error) {
	fields := map[string]*structpb.Value{
		fieldStatus:    structpb.NewStringValue(string(r.Status)),
		fieldDurations: structpb.NewStructValue(durationsToStruct(r.Durations)),
		fieldLastAlert: structpb.NewNullValue(),
		fieldUpdatedAt: structpb.NewStringValue(formatTime(r.UpdatedAt)),
	}

	if r.LastAlert != nil {
		alert, err := alertToStruct(r.LastAlert)
		if err != nil {
			return nil, err
		}

		fields[fieldLastAlert] = structpb.NewStructValue(alert)
	}

	return &structpb.Struct{Fields: fields}, nil
}

// DecodeReport is the inverse of EncodeReport.
func DecodeReport(s *structpb.Struct) (*patient.Report, error) {
	raw, err := stringField(s, fieldStatus)
	if err != nil {
		return nil, err
	}

	status, ok := patient.ParseStatus(raw)
	if !ok {
		return nil, fmt.Errorf("%w %q", errUnknownStatus, raw)
	}

	report := &patient.Report{Status: status}

	if v, ok := s.GetFields()[fieldDurations]; ok {
		if report.Durations, err = durationsFromStruct(v.GetStructValue()); err != nil {
			return nil, fmt.Errorf("durations: %w", err)
		}
	}

	if v, ok := s.GetFields()[fieldLastAlert]; ok {
		if _, isNull := v.GetKind().(*structpb.Value_NullValue); !isNull {
			if report.LastAlert, err = alertFromStruct(v.GetStructValue()); err != nil {
				return nil, fmt.Errorf("last alert: %w", err)
			}
		}
	}

	if report.UpdatedAt, err = timeField(s, fieldUpdatedAt); err != nil {
		return nil, err
	}

	return report, nil
}

// alertsToList encodes an alert history, newest first.
func alertsToList(alerts []patient.Alert) (*structpb.ListValue, error) {
	values := make([]*structpb.Value, 0, len(alerts))

	for i := range alerts {
		s, err := alertToStruct(&alerts[i])
		if err != nil {
			return nil, err
		}

		values = append(values, structpb.NewStructValue(s))
	}

	return &structpb.ListValue{Values: values}, nil
}

// alertsFromList decodes an alert history.
func alertsFromList(list *structpb.ListValue) ([]patient.Alert, error) {
	alerts := make([]patient.Alert, 0, len(list.GetValues()))

	for i, v := range list.GetValues() {
		s, ok := v.GetKind().(*structpb.Value_StructValue)
		if !ok {
			return nil, fmt.Errorf("alert %d %w", i, errNotStruct)
		}

		alert, err := alertFromStruct(s.StructValue)
		if err != nil {
			return nil, fmt.Errorf("alert %d: %w", i, err)
		}

		alerts = append(alerts, *alert)
	}

	return alerts, nil
}
