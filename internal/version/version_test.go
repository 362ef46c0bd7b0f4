package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestCurrentTrimsAndDefaults(t *testing.T) {
	origVersion, origCommit := Version, GitCommit
	defer func() { Version, GitCommit = origVersion, origCommit }()

	Version = "  "
	GitCommit = " abc123 \n"
	info := Current()
	if info.Version != "dev" {
		t.Errorf("Version = %q, want dev", info.Version)
	}
	if info.GitCommit != "abc123" {
		t.Errorf("GitCommit = %q", info.GitCommit)
	}
}

func TestColoredKeepsText(t *testing.T) {
	orig := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = orig }()

	tests := []string{"0.1.0-dev", "1.2.3", "1.2.3-rc.1+build.123", "nightly"}
	for _, v := range tests {
		if got := Colored(v); got != v {
			t.Errorf("Colored(%q) = %q", v, got)
		}
	}
}

func BenchmarkCurrent(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Current()
	}
}
