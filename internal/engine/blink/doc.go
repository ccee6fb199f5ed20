// Package blink implements the eye state machine: open/closed evaluation
// from the eye aspect ratio, blink edge detection, sleep/wake hysteresis,
// blink-count requests and the blink-rate window.
//
// All thresholds are frame counts, so their wall-clock meaning depends on
// the capture rate of the landmark detector.
package blink
