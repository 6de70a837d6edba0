package compiler

import (
	"strings"
	"testing"
)

func TestErrorSeverityString(t *testing.T) {
	tests := []struct {
		severity ErrorSeverity
		want     string
	}{
		{SeverityError, "error"},
		{SeverityWarning, "warning"},
		{SeverityInfo, "info"},
		{SeverityHint, "hint"},
		{ErrorSeverity(999), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.severity.String(); got != tt.want {
			t.Errorf("ErrorSeverity(%d).String() = %q, want %q", tt.severity, got, tt.want)
		}
	}
}

func TestErrorError(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "error with code",
			err:  &Error{Message: "undefined identifier 'x'", Line: 10, Column: 5, Severity: SeverityError, Code: "resolution"},
			want: "error at 10:5: undefined identifier 'x' [resolution]",
		},
		{
			name: "error without code",
			err:  &Error{Message: "unexpected token", Line: 1, Column: 1, Severity: SeverityError},
			want: "error at 1:1: unexpected token",
		},
		{
			name: "warning with code",
			err:  &Error{Message: "unused pending spawn", Line: 20, Column: 8, Severity: SeverityWarning, Code: "W_PENDING_SPAWN"},
			want: "warning at 20:8: unused pending spawn [W_PENDING_SPAWN]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewErrorAndNewWarning(t *testing.T) {
	err := NewError("test message", 5, 10, 3, SeverityError, "E_TEST")
	if err.Message != "test message" || err.Line != 5 || err.Column != 10 || err.Length != 3 || err.Severity != SeverityError || err.Code != "E_TEST" {
		t.Fatalf("NewError produced unexpected fields: %+v", err)
	}

	warn := NewWarning("test warning", 15, 20, 5, "W_TEST")
	if warn.Severity != SeverityWarning || warn.Code != "W_TEST" {
		t.Fatalf("NewWarning produced unexpected fields: %+v", warn)
	}

	fromPos := NewErrorFromPosition("plain message", 1, 2, 3)
	if fromPos.Severity != SeverityError || fromPos.Code != "" {
		t.Fatalf("NewErrorFromPosition produced unexpected fields: %+v", fromPos)
	}
}

func TestErrorIsErrorIsWarning(t *testing.T) {
	tests := []struct {
		severity    ErrorSeverity
		wantError   bool
		wantWarning bool
	}{
		{SeverityError, true, false},
		{SeverityWarning, false, true},
		{SeverityInfo, false, false},
		{SeverityHint, false, false},
	}
	for _, tt := range tests {
		e := &Error{Severity: tt.severity}
		if got := e.IsError(); got != tt.wantError {
			t.Errorf("IsError() = %v, want %v for severity %v", got, tt.wantError, tt.severity)
		}
		if got := e.IsWarning(); got != tt.wantWarning {
			t.Errorf("IsWarning() = %v, want %v for severity %v", got, tt.wantWarning, tt.severity)
		}
	}
}

func TestCompileErrorHasErrorsHasWarnings(t *testing.T) {
	tests := []struct {
		name        string
		errors      []*Error
		wantErrors  bool
		wantWarning bool
	}{
		{"only errors", []*Error{{Severity: SeverityError}, {Severity: SeverityError}}, true, false},
		{"only warnings", []*Error{{Severity: SeverityWarning}}, false, true},
		{"mixed", []*Error{{Severity: SeverityError}, {Severity: SeverityWarning}}, true, true},
		{"none", []*Error{}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ce := &CompileError{Stage: "test", Errors: tt.errors}
			if got := ce.HasErrors(); got != tt.wantErrors {
				t.Errorf("HasErrors() = %v, want %v", got, tt.wantErrors)
			}
			if got := ce.HasWarnings(); got != tt.wantWarning {
				t.Errorf("HasWarnings() = %v, want %v", got, tt.wantWarning)
			}
		})
	}
}

func TestCompileErrorFormatting(t *testing.T) {
	single := &CompileError{Stage: "parsing", Errors: []*Error{
		{Message: "undefined identifier", Line: 10, Column: 5, Severity: SeverityError, Code: "resolution"},
	}}
	got := single.Error()
	for _, want := range []string{"error at 10:5", "undefined identifier", "[resolution]"} {
		if !strings.Contains(got, want) {
			t.Errorf("single-error Error() missing %q, got:\n%s", want, got)
		}
	}

	many := make([]*Error, 20)
	for i := range many {
		many[i] = &Error{Message: "error message", Line: i + 1, Column: 1, Severity: SeverityError}
	}
	multi := &CompileError{Stage: "checking", Errors: many}
	got = multi.Error()
	if !strings.Contains(got, "errors (20)") {
		t.Errorf("Error() should mention the total count, got:\n%s", got)
	}
	if !strings.Contains(got, "more errors") {
		t.Errorf("Error() should truncate with a 'more errors' note, got:\n%s", got)
	}
}
