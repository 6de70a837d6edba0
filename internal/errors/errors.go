// Package errors formats compiler diagnostics with source context,
// line/column information, and a caret pointing at the offending column
// (spec §6.3: "<file>:<line>:<column>: <severity>: <message>").
package errors

import (
	"fmt"
	"strings"

	"github.com/realorko/sindarin/pkg/token"
)

// Severity distinguishes errors (non-zero exit code) from warnings
// (informational only), per spec §6.3.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic is a single compilation message with position and context.
type Diagnostic struct {
	Severity Severity
	Message  string
	Pos      token.Position
	Source   string
}

// New creates a Diagnostic with error severity.
func New(pos token.Position, message, source string) *Diagnostic {
	return &Diagnostic{Severity: SeverityError, Message: message, Pos: pos, Source: source}
}

// NewWarning creates a Diagnostic with warning severity.
func NewWarning(pos token.Position, message, source string) *Diagnostic {
	return &Diagnostic{Severity: SeverityWarning, Message: message, Pos: pos, Source: source}
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	return d.Format(false)
}

// Format renders the diagnostic header, source excerpt, and caret. If
// color is true, ANSI codes highlight the caret and message.
func (d *Diagnostic) Format(color bool) string {
	var sb strings.Builder

	file := d.Pos.File
	if file == "" {
		file = "<input>"
	}
	sb.WriteString(fmt.Sprintf("%s:%d:%d: %s: %s\n", file, d.Pos.Line, d.Pos.Column, d.Severity, d.Message))

	line := d.sourceLine(d.Pos.Line)
	if line == "" {
		return strings.TrimRight(sb.String(), "\n")
	}

	lineNumStr := fmt.Sprintf("%4d | ", d.Pos.Line)
	sb.WriteString(lineNumStr)
	sb.WriteString(line)
	sb.WriteString("\n")

	col := d.Pos.Column - 1
	if col < 0 {
		col = 0
	}
	sb.WriteString(strings.Repeat(" ", len(lineNumStr)+col))
	if color {
		sb.WriteString("\033[1;31m")
	}
	sb.WriteString("^")
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func (d *Diagnostic) sourceLine(lineNum int) string {
	if d.Source == "" {
		return ""
	}
	lines := strings.Split(d.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatAll renders a list of diagnostics, each separated by a blank line.
func FormatAll(diags []*Diagnostic, color bool) string {
	var sb strings.Builder
	for i, d := range diags {
		sb.WriteString(d.Format(color))
		if i < len(diags)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

// CountErrors returns how many diagnostics have error severity (as
// opposed to warning severity); this is what drives the exit code (§6.3).
func CountErrors(diags []*Diagnostic) int {
	n := 0
	for _, d := range diags {
		if d.Severity == SeverityError {
			n++
		}
	}
	return n
}
