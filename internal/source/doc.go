// Package source reads landmark frames from a JSON lines stream.
//
// Every line holds one frame:
//
//	{"timestamp":"2026-01-02T03:04:05.123Z","points":[{"x":0.51,"y":0.43,"z":-0.02}, ...]}
//
// The timestamp is optional. Blank lines are ignored.
package source
