// Package config loads, validates and saves the YAML settings shared by the
// patient-monitor, patient-notifier and patient-status binaries.
package config
