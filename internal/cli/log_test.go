package cli

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevel(t *testing.T) {
	tests := []struct {
		level     log.Level
		wantDebug bool
	}{
		{log.InfoLevel, false},
		{log.DebugLevel, true},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		l := newLogger(&buf, tt.level)
		l.Debug("clump spawned", "id", 3)
		l.Info("loaded")

		out := buf.String()
		if got := strings.Contains(out, "clump spawned"); got != tt.wantDebug {
			t.Errorf("level %s: debug line present = %v, want %v", tt.level, got, tt.wantDebug)
		}
		if !strings.Contains(out, "loaded") {
			t.Errorf("level %s: info line missing", tt.level)
		}
	}
}

func TestStopwatchDone(t *testing.T) {
	var buf bytes.Buffer
	sw := startStopwatch(newLogger(&buf, log.InfoLevel))
	sw.done("Rendered %d frames", 12)

	if !regexp.MustCompile(`Rendered 12 frames \(\d+(\.\d+)?[µnm]?s\)`).MatchString(buf.String()) {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestLoggerContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("bare context should yield the default logger")
	}

	l := newLogger(&bytes.Buffer{}, log.WarnLevel)
	if got := loggerFromContext(withLogger(context.Background(), l)); got != l {
		t.Error("attached logger not returned")
	}
}
