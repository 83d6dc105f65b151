package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerFiltersByLevel(t *testing.T) {
	for _, level := range []log.Level{LogInfo, LogDebug} {
		var buf bytes.Buffer
		l := newLogger(&buf, level)
		l.Debug("debug line")
		l.Info("info line")

		out := buf.String()
		if !strings.Contains(out, "info line") {
			t.Errorf("level %v: info line missing from %q", level, out)
		}
		if got := strings.Contains(out, "debug line"); got != (level == LogDebug) {
			t.Errorf("level %v: debug line present = %v", level, got)
		}
		if !strings.Contains(out, appName) {
			t.Errorf("level %v: prefix missing from %q", level, out)
		}
	}
}

func TestProgressFields(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, LogDebug))

	prog.step("parsed", "events", 3)
	prog.done("render finished", "input", "events.csv")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("want 2 log lines, got %d: %q", len(lines), buf.String())
	}
	for _, want := range []string{"parsed", "events=3", "took="} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("step line %q lacks %q", lines[0], want)
		}
	}
	for _, want := range []string{"render finished", "input=events.csv", "elapsed="} {
		if !strings.Contains(lines[1], want) {
			t.Errorf("done line %q lacks %q", lines[1], want)
		}
	}
}

func TestProgressStepHiddenAtInfo(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, LogInfo))
	prog.step("parsed")
	if buf.Len() != 0 {
		t.Errorf("step should log at debug level, got %q", buf.String())
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("a bare context should yield the default logger")
	}

	l := newLogger(&bytes.Buffer{}, LogInfo)
	if loggerFromContext(withLogger(context.Background(), l)) != l {
		t.Error("withLogger should round-trip the logger")
	}
}
