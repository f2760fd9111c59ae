// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package version provides build-time version information.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// ModulePath is the module whose version is reported.
const ModulePath = "github.com/dacolabs/zodgen"

// These variables are set at build time using ldflags.
var (
	// Version is the semantic version (e.g., "0.1.0", "0.1.0-alpha.1").
	Version = "dev"
	// Commit is the git commit SHA.
	Commit = "none"
	// Date is the build date in RFC3339 format.
	Date = "unknown"
)

func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		Version, Commit, Date = fromBuildInfo(info, Version, Commit, Date)
	}
}

// fromBuildInfo fills values not set via ldflags. The module version comes
// from the main module when zodgen is the binary, or from the dependency
// list when another program links it in. VCS settings only describe the
// main module.
func fromBuildInfo(info *debug.BuildInfo, version, commit, date string) (string, string, string) {
	if version == "dev" {
		if v := moduleVersion(info); v != "" {
			version = v
		}
	}
	if info.Main.Path != ModulePath {
		return version, commit, date
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if commit == "none" && len(setting.Value) >= 7 {
				commit = setting.Value[:7]
			}
		case "vcs.time":
			if date == "unknown" {
				date = setting.Value
			}
		}
	}
	return version, commit, date
}

func moduleVersion(info *debug.BuildInfo) string {
	mod := &info.Main
	if mod.Path != ModulePath {
		mod = nil
		for _, dep := range info.Deps {
			if dep.Path == ModulePath {
				mod = dep
				break
			}
		}
	}
	if mod == nil || mod.Version == "" || mod.Version == "(devel)" {
		return ""
	}
	return mod.Version
}

// Info returns formatted version information.
func Info() string {
	return fmt.Sprintf("zodgen version %s (commit: %s, built: %s, go: %s)",
		Version, Commit, Date, runtime.Version())
}

// Short returns just the version string.
func Short() string {
	return Version
}
