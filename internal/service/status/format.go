package status

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/oshokin/patient-monitor/internal/domain/patient"
)

// FormatStatus renders the current sleep/wake status.
func FormatStatus(report *patient.Report) string {
	return fmt.Sprintf("The patient's current status is: *%s*", report.Status)
}

// FormatExpressions renders the expression report in the fixed label order.
func FormatExpressions(d patient.ExpressionDurations) string {
	var b strings.Builder

	b.WriteString("*Patient Expression Report:*\n\n")

	for _, e := range patient.Expressions() {
		fmt.Fprintf(&b, "*- %s:* %s\n", e, FormatDuration(d.Get(e)))
	}

	return b.String()
}

// FormatDuration renders d as "Hh Mm Ss" rounded to the nearest second.
func FormatDuration(d time.Duration) string {
	total := int64(math.Round(d.Seconds()))

	return fmt.Sprintf("%dh %dm %ds", total/3600, total%3600/60, total%60)
}

// FormatAlerts renders alert history, newest first as received.
func FormatAlerts(alerts []patient.Alert) string {
	if len(alerts) == 0 {
		return "No alerts recorded."
	}

	var b strings.Builder

	for _, a := range alerts {
		b.WriteString(a.ReceivedAt.UTC().Format(time.RFC3339))
		b.WriteString("  ")
		b.WriteString(a.Message)

		if a.Actor != nil && (a.Actor.Username != "" || a.Actor.Hostname != "") {
			fmt.Fprintf(&b, " (%s@%s)", a.Actor.Username, a.Actor.Hostname)
		}

		b.WriteByte('\n')
	}

	return b.String()
}
