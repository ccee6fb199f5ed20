// Package expression classifies facial expressions from mouth and brow
// ratios and accumulates the time spent in each expression.
//
// Rules are evaluated in a fixed order and the first satisfied rule wins;
// the thresholds overlap on purpose.
package expression
