package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	defer func() { Version, Commit = oldVersion, oldCommit }()

	Version = "v1.2.0"
	Commit = "0123456789abcdef"

	got := String()
	want := "classgen v1.2.0 (commit: 0123456, built: unknown)"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestString_FallbackCommit(t *testing.T) {
	oldCommit := Commit
	defer func() { Commit = oldCommit }()

	Commit = ""
	got := String()
	if !strings.HasPrefix(got, "classgen ") || strings.Contains(got, "commit: )") {
		t.Errorf("unexpected version string %q", got)
	}
}
