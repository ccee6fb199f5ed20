package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
)

//nolint:gochecknoglobals // Overridden through -ldflags.
var (
	// Version is the semantic version of the build.
	Version = "0.1.0"
	// Commit is the short git SHA of the build, or "none".
	Commit = "none"
	// BuildTime is the UTC build timestamp, or "unknown".
	BuildTime = "unknown"
)

// shortCommitLength is how many hex digits of a VCS revision are kept.
const shortCommitLength = 7

//nolint:gochecknoglobals // Computed once.
var resolveOnce sync.Once

// resolve fills Commit and BuildTime from the embedded VCS stamp when they
// were not provided through ldflags.
func resolve() {
	resolveOnce.Do(func() {
		info, ok := debug.ReadBuildInfo()
		if !ok {
			return
		}

		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if Commit == "none" && s.Value != "" {
					Commit = s.Value[:min(len(s.Value), shortCommitLength)]
				}
			case "vcs.time":
				if BuildTime == "unknown" && s.Value != "" {
					BuildTime = s.Value
				}
			}
		}
	})
}

// Short returns the semantic version.
func Short() string {
	return Version
}

// Full returns the version with commit, build time and Go runtime.
func Full() string {
	resolve()

	return fmt.Sprintf("version: %s, commit: %s, built at: %s, go: %s",
		Version, Commit, BuildTime, runtime.Version())
}

// UserAgent identifies a binary in outgoing RPCs, e.g. "patient-monitor/0.1.0".
func UserAgent(binary string) string {
	return binary + "/" + Version
}

// Fields returns the build metadata as logger key-value pairs.
func Fields() []any {
	resolve()

	return []any{"version", Version, "commit", Commit, "built_at", BuildTime}
}
