// Package buildinfo reports the version of the oddkernel binary.
//
// Release builds set the variables via ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/oddkernel/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/oddkernel/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/oddkernel/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Binaries built with go install have no ldflags; [Get] then falls back to
// the module version and VCS stamp the Go toolchain embeds.
package buildinfo

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	// Version is the semantic version (e.g., "v1.2.3").
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// Kernel is the graph kernel this binary computes.
const Kernel = "ODD-STh"

// Info is the resolved build description.
type Info struct {
	Version   string
	Commit    string
	Date      string
	GoVersion string
}

// Get resolves build information. Values set via ldflags take precedence
// over the embedded module build info.
func Get() Info {
	return resolve(Info{Version: Version, Commit: Commit, Date: Date, GoVersion: runtime.Version()}, debug.ReadBuildInfo)
}

func resolve(info Info, read func() (*debug.BuildInfo, bool)) Info {
	bi, ok := read()
	if !ok {
		return info
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "none" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.Date == "unknown" {
				info.Date = s.Value
			}
		case "vcs.modified":
			if s.Value == "true" && info.Commit != "none" {
				info.Commit += "-dirty"
			}
		}
	}
	return info
}

// String returns the formatted build information.
func String() string {
	i := Get()
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s\ngo: %s\nkernel: %s", i.Version, i.Commit, i.Date, i.GoVersion, Kernel)
}

// Template returns the version template string for cobra.
func Template() string {
	i := Get()
	return fmt.Sprintf("{{.Name}} version %s (%s kernel)\ncommit: %s\nbuilt: %s\n", i.Version, Kernel, i.Commit, i.Date)
}
