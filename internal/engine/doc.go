// Package engine turns a stream of facial landmark frames into patient state.
//
// The Engine runs every frame through gaze estimation, the eye state machine,
// the head gesture matcher and the expression classifier, in that order, and
// publishes a consolidated patient.Snapshot together with any discrete
// patient.Event values the frame triggered. Snapshots are values: callers may
// keep and share them without synchronisation.
package engine
