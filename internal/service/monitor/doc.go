// Package monitor runs the patient monitor: it feeds landmark frames into the
// interpretive engine and reports requests, sleep/wake changes and expression
// durations to the notifier on a best-effort basis.
package monitor
