package version

import (
	"strings"
	"testing"
)

func TestGetDefaults(t *testing.T) {
	info := Get()
	if info.Version != "dev" {
		t.Fatalf("expected dev version, got %s", info.Version)
	}
}

func TestShortIncludesCommit(t *testing.T) {
	old := GitCommit
	GitCommit = "1a2b3c4"
	defer func() { GitCommit = old }()

	short := Short()
	if !strings.HasPrefix(short, "dev-1a2b3c4") {
		t.Fatalf("unexpected short version %s", short)
	}
}

func TestShortWithoutCommit(t *testing.T) {
	old := GitCommit
	GitCommit = ""
	defer func() { GitCommit = old }()

	info := Get()
	if info.GitCommit == "" && Short() != "dev" {
		t.Fatalf("unexpected short version %s", Short())
	}
}
