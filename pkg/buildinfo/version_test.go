package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func stamp(t *testing.T, version, commit, date string) {
	t.Helper()
	v, c, d := Version, Commit, Date
	Version, Commit, Date = version, commit, date
	t.Cleanup(func() { Version, Commit, Date = v, c, d })
}

func TestFill(t *testing.T) {
	bi := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	}

	stamp(t, "dev", "none", "unknown")
	fill(bi)
	if Version != "v0.3.0" || Commit != "abc123" || Date != "2026-01-02T03:04:05Z" {
		t.Errorf("unstamped fill = %s %s %s", Version, Commit, Date)
	}

	stamp(t, "v1.0.0", "release", "today")
	fill(bi)
	if Version != "v1.0.0" || Commit != "release" || Date != "today" {
		t.Errorf("ldflags values overwritten: %s %s %s", Version, Commit, Date)
	}

	stamp(t, "dev", "none", "unknown")
	fill(&debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
	if Version != "dev" {
		t.Errorf("(devel) replaced the version: %s", Version)
	}
}

func TestTemplate(t *testing.T) {
	stamp(t, "v1.2.3", "abc", "today")
	got := Template()
	if !strings.HasPrefix(got, "{{.Name}} v1.2.3\n") || !strings.Contains(got, "commit: abc") {
		t.Errorf("Template() = %q", got)
	}
}
