package lines

import (
	"bytes"
	"testing"
)

func TestIndentReturnsNewSequence(t *testing.T) {
	src := Of("a", "b")
	got := Indent(src, "")
	if got[0] != "\ta" || got[1] != "\tb" {
		t.Fatalf("unexpected indent result: %q", got)
	}
	if src[0] != "a" {
		t.Fatalf("source mutated: %q", src)
	}
	twice := got.Indent("\t")
	if twice[0] != "\t\ta" {
		t.Errorf("double indent = %q, want %q", twice[0], "\t\ta")
	}
}

func TestAppendPreservesOrder(t *testing.T) {
	dst := Of("1")
	dst.Append(Of("2", "3"))
	dst.Add("4")
	if got := dst.Render(); got != "1\n2\n3\n4" {
		t.Fatalf("Render() = %q", got)
	}
}

func TestRenderKeepsWhitespace(t *testing.T) {
	l := Of("  x  ", "")
	if got := l.Render(); got != "  x  \n" {
		t.Fatalf("Render() = %q", got)
	}
}

func TestWriteTo(t *testing.T) {
	var buf bytes.Buffer
	n, err := Of("a", "bc").WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if buf.String() != "a\nbc\n" || n != 5 {
		t.Fatalf("WriteTo wrote %q (%d bytes)", buf.String(), n)
	}
}

func TestIndentUnit(t *testing.T) {
	tests := []struct {
		tabs  bool
		width int
		want  string
	}{
		{true, 8, "\t"},
		{false, 2, "  "},
		{false, 0, "    "},
	}
	for _, tt := range tests {
		if got := IndentUnit(tt.tabs, tt.width); got != tt.want {
			t.Errorf("IndentUnit(%t, %d) = %q, want %q", tt.tabs, tt.width, got, tt.want)
		}
	}
}
