// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package version provides build-time version information.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
)

// These variables are set at build time using ldflags.
var (
	// Version is the semantic version (e.g., "0.1.0", "0.1.0-alpha.1").
	Version = "dev"
	// Commit is the git commit SHA.
	Commit = "none"
	// Date is the build date in RFC3339 format.
	Date = "unknown"
)

// BuildInfo describes the running binary.
type BuildInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
}

var (
	once sync.Once
	info BuildInfo
)

// Get returns the build information, falling back to the module build info
// for values not set via ldflags.
func Get() BuildInfo {
	once.Do(func() {
		info = fromBuildInfo(BuildInfo{Version: Version, Commit: Commit, Date: Date, Go: runtime.Version()}, debug.ReadBuildInfo)
	})
	return info
}

func fromBuildInfo(b BuildInfo, read func() (*debug.BuildInfo, bool)) BuildInfo {
	bi, ok := read()
	if !ok {
		return b
	}
	// set by "go install module@version"
	if b.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		b.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if b.Commit == "none" && len(s.Value) >= 7 {
				b.Commit = s.Value[:7]
			}
		case "vcs.time":
			if b.Date == "unknown" {
				b.Date = s.Value
			}
		}
	}
	return b
}

// Info returns formatted version information.
func Info() string {
	b := Get()
	return fmt.Sprintf("oscalgen version %s (commit: %s, built: %s, go: %s)", b.Version, b.Commit, b.Date, b.Go)
}

// Short returns just the version string.
func Short() string {
	return Get().Version
}
