package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestCurrentTrimsAndDefaults(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	})

	Version = "  "
	GitCommit = " abc123 \n"
	BuildDate = "2026-01-15T10:30:00Z"
	info := Current()
	if info.Version != "dev" {
		t.Errorf("Version = %q, want dev", info.Version)
	}
	if info.GitCommit != "abc123" {
		t.Errorf("GitCommit = %q", info.GitCommit)
	}
	if info.BuildDate != BuildDate {
		t.Errorf("BuildDate = %q", info.BuildDate)
	}
}

func TestColored(t *testing.T) {
	orig := color.NoColor
	t.Cleanup(func() { color.NoColor = orig })

	color.NoColor = true
	tests := []string{"0.1.0", "1.2.3-rc.1+build.123", "dev", "1.2", "1..3"}
	for _, v := range tests {
		if got := Colored(v); got != v {
			t.Errorf("Colored(%q) without color = %q", v, got)
		}
	}

	color.NoColor = false
	got := Colored("1.2.3-dev")
	if got == "1.2.3-dev" {
		t.Fatalf("expected escape sequences, got %q", got)
	}
	if got[len(got)-4:] != "-dev" {
		t.Fatalf("pre-release suffix lost: %q", got)
	}
	if Colored("dev") != "dev" {
		t.Fatalf("non-semver must stay unchanged")
	}
}
