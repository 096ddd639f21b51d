// Package version provides build-time version information for agentlint.
//
// Build-time variables are injected via ldflags:
//
//	go build -ldflags "
//	  -X github.com/agentlint/agentlint/internal/version.Version=x.y.z
//	  -X github.com/agentlint/agentlint/internal/version.Commit=$(git rev-parse HEAD)
//	"
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Build-time variables injected via ldflags.
var (
	// Version is the semantic version; "0.0.0" for local builds.
	Version = "0.0.0"

	// Commit is the full git commit SHA.
	Commit = "unknown"
)

func init() {
	if Commit == "unknown" {
		if info, ok := debug.ReadBuildInfo(); ok {
			for _, setting := range info.Settings {
				if setting.Key == "vcs.revision" {
					Commit = setting.Value
				}
			}
		}
	}
}

// ApplicationName is the canonical name of this application.
const ApplicationName = "agentlint"

// String returns a human-readable version string.
func String() string {
	if Commit != "unknown" && len(Commit) >= 8 {
		return fmt.Sprintf("%s version %s (commit: %s, %s, %s/%s)",
			ApplicationName, Version, Commit[:8], runtime.Version(), runtime.GOOS, runtime.GOARCH)
	}
	return fmt.Sprintf("%s version %s (%s, %s/%s)",
		ApplicationName, Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
