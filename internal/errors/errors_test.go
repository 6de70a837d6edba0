package errors

import (
	"strings"
	"testing"

	"github.com/realorko/sindarin/pkg/token"
)

func TestFormatIncludesHeaderAndCaret(t *testing.T) {
	src := "var x: int = y\n"
	d := New(token.Position{File: "main.sin", Line: 1, Column: 14}, "unknown identifier 'y'", src)

	out := d.Format(false)
	if !strings.HasPrefix(out, "main.sin:1:14: error: unknown identifier 'y'") {
		t.Fatalf("unexpected header: %q", out)
	}
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines (header, source, caret), got %d:\n%s", len(lines), out)
	}
	if !strings.HasSuffix(lines[2], "^") {
		t.Fatalf("expected caret at the end of the last line, got %q", lines[2])
	}
}

func TestWarningSeverityInHeader(t *testing.T) {
	d := NewWarning(token.Position{Line: 2, Column: 1}, "mixed tabs and spaces", "")
	if !strings.Contains(d.Format(false), ": warning: ") {
		t.Fatalf("expected warning severity in header, got %q", d.Format(false))
	}
}

func TestCountErrorsIgnoresWarnings(t *testing.T) {
	diags := []*Diagnostic{
		New(token.Position{Line: 1}, "bad", ""),
		NewWarning(token.Position{Line: 2}, "meh", ""),
		New(token.Position{Line: 3}, "bad again", ""),
	}
	if got := CountErrors(diags); got != 2 {
		t.Fatalf("CountErrors() = %d, want 2", got)
	}
}

func TestFormatAllSeparatesWithBlankLine(t *testing.T) {
	diags := []*Diagnostic{
		New(token.Position{Line: 1}, "first", ""),
		New(token.Position{Line: 2}, "second", ""),
	}
	out := FormatAll(diags, false)
	if !strings.Contains(out, "first") || !strings.Contains(out, "second") {
		t.Fatalf("FormatAll missing messages: %q", out)
	}
	if !strings.Contains(out, "\n\n") {
		t.Fatalf("FormatAll should separate diagnostics with a blank line: %q", out)
	}
}
