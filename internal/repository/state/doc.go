// Package state persists the notifier's patient report.
//
// FileRepository writes the report as protobuf JSON, the same Struct layout
// GetReport serves, so the file can be inspected with any JSON tool.
package state
