// Package buildinfo contains build information.
//
// Build information should be set during compilation by passing
// -ldflags "-X github.com/tconf/tconf/pkg/buildinfo.VCSOverride=value" to
// "go build".
package buildinfo

import (
	"runtime"
	"runtime/debug"
	"time"
)

// VersionBase is the version of the next release, or of the current release
// on release commits.
const VersionBase = "0.3.0"

// VCSOverride may be set during compilation to "time-commit" (like
// "20220401235958-123456789012") to identify development builds that are
// not built from a VCS checkout.
var VCSOverride string

// Reproducible identifies whether the build is reproducible. It may be set
// during compilation.
var Reproducible = "false"

// Info describes a build.
type Info struct {
	Version      string `json:"version"`
	GoVersion    string `json:"goversion"`
	Reproducible bool   `json:"reproducible"`
}

// Value is the information of the running build.
var Value = Info{
	Version:      devVersion(VersionBase, VCSOverride, debug.ReadBuildInfo),
	GoVersion:    runtime.Version(),
	Reproducible: Reproducible == "true",
}

func devVersion(next, vcsOverride string, readBuildInfo func() (*debug.BuildInfo, bool)) string {
	if vcsOverride != "" {
		return next + "-dev.0." + vcsOverride
	}
	fallback := next + "-dev.unknown"
	bi, ok := readBuildInfo()
	if !ok {
		return fallback
	}
	if bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		if len(bi.Main.Version) > 1 && bi.Main.Version[0] == 'v' {
			return bi.Main.Version[1:]
		}
		return bi.Main.Version
	}

	var revision, timestamp string
	modified := false
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.time":
			timestamp = s.Value
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}
	if revision == "" || timestamp == "" {
		return fallback
	}
	t, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return fallback
	}
	if len(revision) > 12 {
		revision = revision[:12]
	}
	version := next + "-dev.0." + t.UTC().Format("20060102150405") + "-" + revision
	if modified {
		version += "-dirty"
	}
	return version
}
