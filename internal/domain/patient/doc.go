// Package patient contains the vocabulary of patient-state signals produced
// by the engine: eye, sleep, expression and direction labels, action events
// and the consolidated Snapshot handed to collaborators by value.
package patient
