// Package version reports build metadata of the patient monitor binaries.
//
// Version, Commit and BuildTime are set with -ldflags -X at release time.
// Local builds fall back to the VCS stamp recorded by the Go toolchain.
package version
