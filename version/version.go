package version

import (
	"runtime/debug"
	"time"
)

// Set at build time with -ldflags.
var (
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

// Info describes the running build.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
	GoVersion string `json:"go_version"`
	Dirty     bool   `json:"dirty,omitempty"`
}

// Get returns the build information of the running binary.
func Get() Info {
	info := Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		fill(&info, bi)
	}
	return info
}

func fill(info *Info, bi *debug.BuildInfo) {
	info.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "" {
				info.GitCommit = shortCommit(s.Value)
			}
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		case "vcs.time":
			if info.BuildTime == "" {
				if _, err := time.Parse(time.RFC3339, s.Value); err == nil {
					info.BuildTime = s.Value
				}
			}
		}
	}
}

func shortCommit(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

// Short returns "<version>[-<commit>][-dirty]".
func (i Info) Short() string {
	s := i.Version
	if i.GitCommit != "" {
		s += "-" + i.GitCommit
	}
	if i.Dirty {
		s += "-dirty"
	}
	return s
}

// IsRelease reports whether the build carries a real version and no local
// modifications.
func (i Info) IsRelease() bool {
	return i.Version != "dev" && !i.Dirty
}
