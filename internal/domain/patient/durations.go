package patient

import (
	"math"
	"time"
)

// ExpressionDurations accumulates time spent in each expression.
type ExpressionDurations struct {
	Neutral   time.Duration
	Happy     time.Duration
	Surprised time.Duration
	Angry     time.Duration
}

// Add attributes d to the given expression. Negative values are ignored so
// the accumulators never decrease.
func (d *ExpressionDurations) Add(expression Expression, delta time.Duration) {
	if delta <= 0 {
		return
	}

	switch expression {
	case Neutral:
		d.Neutral += delta
	case Happy:
		d.Happy += delta
	case Surprised:
		d.Surprised += delta
	case Angry:
		d.Angry += delta
	}
}

// Get returns the accumulated duration for an expression.
func (d ExpressionDurations) Get(expression Expression) time.Duration {
	switch expression {
	case Neutral:
		return d.Neutral
	case Happy:
		return d.Happy
	case Surprised:
		return d.Surprised
	case Angry:
		return d.Angry
	default:
		return 0
	}
}

// Total returns the sum of all accumulators.
func (d ExpressionDurations) Total() time.Duration {
	return d.Neutral + d.Happy + d.Surprised + d.Angry
}

// Seconds renders the accumulators keyed by expression name.
func (d ExpressionDurations) Seconds() map[string]float64 {
	result := make(map[string]float64, len(Expressions()))
	for _, e := range Expressions() {
		result[string(e)] = d.Get(e).Seconds()
	}

	return result
}

// DurationsFromSeconds is the inverse of Seconds, rounded to the nanosecond.
// Unknown keys are skipped.
func DurationsFromSeconds(seconds map[string]float64) ExpressionDurations {
	var d ExpressionDurations

	for _, e := range Expressions() {
		if v, ok := seconds[string(e)]; ok {
			d.Add(e, time.Duration(math.Round(v*float64(time.Second))))
		}
	}

	return d
}
