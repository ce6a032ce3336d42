// Package version reports the classgen build.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set at build time via ldflags:
//
//	-X github.com/example/classgen/internal/version.Commit=$(git rev-parse HEAD)
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = "unknown"
)

// String returns the version string shown by --version. Without ldflags the
// commit falls back to the VCS stamp of the Go build info.
func String() string {
	commit := Commit
	if commit == "" {
		commit = vcsRevision()
	}
	return fmt.Sprintf("classgen %s (commit: %s, built: %s)", Version, short(commit), BuildTime)
}

func vcsRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return "unknown"
}

func short(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}
