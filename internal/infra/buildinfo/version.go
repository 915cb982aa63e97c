package buildinfo

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
)

// Set via ldflags.
var (
	Version   = ""
	Commit    = ""
	BuildTime = ""
)

// MinecraftVersion is the game version whose ids the registry models.
const MinecraftVersion = "1.8.9"

// ProtocolVersion is the matching network protocol number.
const ProtocolVersion = 47

// Info is the build description.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildTime string `json:"build_time" yaml:"build_time"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
	Minecraft string `json:"minecraft" yaml:"minecraft"`
	Protocol  int    `json:"protocol" yaml:"protocol"`
}

var (
	once   sync.Once
	cached Info
)

// Get returns the build information.
func Get() Info {
	once.Do(func() { cached = resolve(debug.ReadBuildInfo) })
	return cached
}

func resolve(read func() (*debug.BuildInfo, bool)) Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		Minecraft: MinecraftVersion,
		Protocol:  ProtocolVersion,
	}
	if bi, ok := read(); ok {
		if info.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.Commit == "" {
					info.Commit = s.Value
				}
			case "vcs.time":
				if info.BuildTime == "" {
					info.BuildTime = s.Value
				}
			}
		}
	}
	if info.Version == "" {
		info.Version = "dev"
	}
	if len(info.Commit) > 12 {
		info.Commit = info.Commit[:12]
	}
	if info.Commit == "" {
		info.Commit = "unknown"
	}
	if info.BuildTime == "" {
		info.BuildTime = "unknown"
	}
	return info
}

// String formats the build information on one line.
func (i Info) String() string {
	return fmt.Sprintf("%s (%s) built %s with %s for %s, Minecraft %s protocol %d",
		i.Version, i.Commit, i.BuildTime, i.GoVersion, i.Platform, i.Minecraft, i.Protocol)
}

// String is Get().String().
func String() string { return Get().String() }
