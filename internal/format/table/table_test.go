package table

import (
	"reflect"
	"testing"
)

func TestFormatPadsColumns(t *testing.T) {
	rows := [][]string{
		{"nginx", "Nginx Reverse Proxy", "4"},
		{"ssl", "SSL", "12"},
	}
	got := Format(rows, []Alignment{AlignLeft, AlignLeft, AlignRight})
	want := []string{
		"nginx  Nginx Reverse Proxy   4",
		"ssl    SSL                  12",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if Format(nil, nil) != nil {
		t.Fatalf("expected nil for no rows")
	}
}

func TestWithHeaderAddsRule(t *testing.T) {
	got := WithHeader([]string{"ID", "STEPS"}, [][]string{{"db", "3"}}, []Alignment{AlignLeft, AlignRight})
	want := []string{
		"ID  STEPS",
		"---------",
		"db      3",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
