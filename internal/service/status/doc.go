// Package status implements the patient-status command: one-shot or polled
// queries of the notifier report rendered the way the caregiver bot replies.
package status
