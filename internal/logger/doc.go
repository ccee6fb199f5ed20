// Package logger wraps zap for the patient monitor binaries.
//
// A process-wide sugared logger writes console lines to stderr so that
// command output on stdout stays clean. Loggers travel in a context.Context:
// services name their context once with WithName and every helper such as
// InfoKV or Debug picks the scoped logger back up with FromContext.
package logger
