package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestResolve(t *testing.T) {
	withVCS := func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{
			Main: debug.Module{Version: "v0.4.1"},
			Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "0123456789abcdef0123"},
				{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
			},
		}, true
	}
	devel := func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, true
	}
	none := func() (*debug.BuildInfo, bool) { return nil, false }

	tests := []struct {
		name    string
		ldflags [3]string
		read    func() (*debug.BuildInfo, bool)
		want    Info
	}{
		{"module and vcs", [3]string{}, withVCS, Info{Version: "v0.4.1", Commit: "0123456789ab", BuildTime: "2026-01-02T03:04:05Z"}},
		{"ldflags win", [3]string{"v1.0.0", "cafe", "today"}, withVCS, Info{Version: "v1.0.0", Commit: "cafe", BuildTime: "today"}},
		{"devel build", [3]string{}, devel, Info{Version: "dev", Commit: "unknown", BuildTime: "unknown"}},
		{"no build info", [3]string{}, none, Info{Version: "dev", Commit: "unknown", BuildTime: "unknown"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Version, Commit, BuildTime = tt.ldflags[0], tt.ldflags[1], tt.ldflags[2]
			t.Cleanup(func() { Version, Commit, BuildTime = "", "", "" })

			got := resolve(tt.read)
			if got.Version != tt.want.Version || got.Commit != tt.want.Commit || got.BuildTime != tt.want.BuildTime {
				t.Errorf("resolve() = %+v, want %+v", got, tt.want)
			}
			if got.Protocol != 47 || got.Minecraft != MinecraftVersion || got.GoVersion == "" {
				t.Errorf("resolve() = %+v", got)
			}
		})
	}
}

func TestString(t *testing.T) {
	s := String()
	for _, want := range []string{"Minecraft 1.8.9", "protocol 47", Get().Version} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}
