package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRepoRootHoldsGoMod(t *testing.T) {
	root := RepoRoot(t)
	if _, err := os.Stat(filepath.Join(root, "go.mod")); err != nil {
		t.Fatalf("expected go.mod under %s: %v", root, err)
	}
}

func TestGoldenPathUnderTestdata(t *testing.T) {
	got := GoldenPath(t, "search_nginx.golden")
	want := filepath.Join(RepoRoot(t), "testdata", "search_nginx.golden")
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestFirstDiff(t *testing.T) {
	tests := []struct {
		want, got, expect string
	}{
		{"a\nb", "a\nb", ""},
		{"a\nb", "a\nc", `line 2: want "b", got "c"`},
		{"a", "a\nextra", `line 2: want "", got "extra"`},
	}
	for _, tt := range tests {
		if got := FirstDiff(tt.want, tt.got); got != tt.expect {
			t.Fatalf("FirstDiff(%q, %q) = %q, want %q", tt.want, tt.got, got, tt.expect)
		}
	}
}
