package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// AssertGolden compares output with testdata/<goldenName> at the repository
// root. Set UPDATE_GOLDEN to rewrite the file instead.
func AssertGolden(t *testing.T, goldenName, output string) {
	t.Helper()
	path := GoldenPath(t, goldenName)
	if os.Getenv("UPDATE_GOLDEN") != "" {
		if err := os.WriteFile(path, []byte(output), 0o644); err != nil {
			t.Fatalf("failed to update golden: %v", err)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read golden %s: %v", goldenName, err)
	}
	if string(data) != output {
		t.Fatalf("output mismatch for %s (%s)\nexpected:\n%s\nactual:\n%s", goldenName, FirstDiff(string(data), output), string(data), output)
	}
}

// FirstDiff describes the first line where want and got disagree, or returns
// "" when they are equal.
func FirstDiff(want, got string) string {
	if want == got {
		return ""
	}
	wl := strings.Split(want, "\n")
	gl := strings.Split(got, "\n")
	for i := 0; i < len(wl) || i < len(gl); i++ {
		var w, g string
		if i < len(wl) {
			w = wl[i]
		}
		if i < len(gl) {
			g = gl[i]
		}
		if i >= len(wl) || i >= len(gl) || w != g {
			return fmt.Sprintf("line %d: want %q, got %q", i+1, w, g)
		}
	}
	return "trailing newline differs"
}

// GoldenPath returns the path of a file under the repository's testdata
// directory.
func GoldenPath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(RepoRoot(t), "testdata", name)
}

// RepoRoot walks up from the working directory to the directory holding
// go.mod.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd failed: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
