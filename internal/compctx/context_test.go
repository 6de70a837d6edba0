package compctx

import (
	"bytes"
	"strings"
	"testing"
)

func TestTraceSilentWhenNotVerbose(t *testing.T) {
	var buf bytes.Buffer
	ctx := NewWithWriter(false, &buf)
	ctx.Trace("hello %s", "world")

	if buf.Len() != 0 {
		t.Fatalf("expected no trace output, got %q", buf.String())
	}
}

func TestTraceWritesWhenVerbose(t *testing.T) {
	var buf bytes.Buffer
	ctx := NewWithWriter(true, &buf)
	ctx.Trace("hello %s", "world")

	if got := buf.String(); !strings.Contains(got, "hello world") {
		t.Fatalf("trace output = %q, want it to contain %q", got, "hello world")
	}
}

func TestRecordErrorAccumulates(t *testing.T) {
	ctx := New(false)
	if ctx.HasErrors() {
		t.Fatal("fresh context should report no errors")
	}
	ctx.RecordError()
	ctx.RecordError()
	if ctx.ErrorCount != 2 {
		t.Fatalf("ErrorCount = %d, want 2", ctx.ErrorCount)
	}
	if !ctx.HasErrors() {
		t.Fatal("HasErrors() = false after RecordError")
	}
}
