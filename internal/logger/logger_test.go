package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func newTestLogger(component string, verbose bool, buf *bytes.Buffer) *Logger {
	l := NewWithCallback(component, func() bool { return verbose })
	l.out = newBase(buf)
	return l
}

func TestDebugRespectsVerbose(t *testing.T) {
	var buf bytes.Buffer
	quiet := newTestLogger("workflow", false, &buf)
	quiet.Debug("hidden %d", 1)
	quiet.Info("hidden too")
	if buf.Len() != 0 {
		t.Errorf("Expected no output when not verbose, got %q", buf.String())
	}

	loud := newTestLogger("workflow", true, &buf)
	loud.Debug("shown %d", 2)
	if !strings.Contains(buf.String(), "shown 2") {
		t.Errorf("Expected debug output, got %q", buf.String())
	}
}

func TestWarnAlwaysShown(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger("backend", false, &buf)
	l.Warn("request failed")

	out := buf.String()
	if !strings.Contains(out, "request failed") {
		t.Errorf("Expected warn message, got %q", out)
	}
	if !strings.Contains(out, "component=backend") {
		t.Errorf("Expected component field, got %q", out)
	}
}

func TestFieldsAreRendered(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger("workflow", true, &buf)
	l.InfoWithFields("committed", []Field{Seq(7), Count(3), Error(errors.New("boom"))})

	out := buf.String()
	for _, want := range []string{"seq=7", "count=3", "error=boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in %q", want, out)
		}
	}
}

func TestMessageWithoutArgsIsNotFormatted(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger("ui", false, &buf)
	l.Error("100% done")

	if !strings.Contains(buf.String(), "100% done") {
		t.Errorf("Expected literal message, got %q", buf.String())
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger("root", false, &buf).WithComponent("cache")
	l.Warn("miss")

	if !strings.Contains(buf.String(), "component=cache") {
		t.Errorf("Expected component=cache, got %q", buf.String())
	}
}
