package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevelKnownNames(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for name, want := range cases {
		if got := ParseLevel(name); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestNewFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New("warn", &buf)
	log.Debug("should not appear")
	log.Warn("should appear")
	out := buf.String()
	if strings.Contains(out, "should not appear") {
		t.Errorf("debug line leaked through a warn-level logger: %q", out)
	}
	if !strings.Contains(out, "should appear") {
		t.Errorf("warn line missing from output: %q", out)
	}
}
