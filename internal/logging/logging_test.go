package logging

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2024, 4, 8, 18, 17, 16, 123e6, time.UTC)
}

func newTestLogger(level Level) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := New(level)
	l.SetOutput(&buf)
	l.sink.now = fixedClock
	return l, &buf
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"", LevelInfo},
		{" warning ", LevelWarn},
		{"Error", LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("ParseLevel(loud) should fail")
	}
}

func TestLogger_Filtering(t *testing.T) {
	l, buf := newTestLogger(LevelWarn)
	l.Debug("hidden %d", 1)
	l.Info("hidden %d", 2)
	l.Warn("shown %d", 3)
	l.Error("shown %d", 4)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("output contains filtered messages:\n%s", out)
	}
	want := "18:17:16.123 [WARN] shown 3\n18:17:16.123 [ERROR] shown 4\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
	if l.Enabled(LevelInfo) || !l.Enabled(LevelError) {
		t.Error("Enabled disagrees with the configured level")
	}
}

func TestLogger_With(t *testing.T) {
	l, buf := newTestLogger(LevelDebug)
	scoped := l.With("cmd", "eclipse").With("kind", "lunar")
	scoped.Info("found %d events", 3)
	l.Info("plain")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.HasSuffix(lines[0], "[INFO] found 3 events cmd=eclipse kind=lunar") {
		t.Errorf("scoped line = %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "[INFO] plain") {
		t.Errorf("parent line = %q, fields leaked from derived logger", lines[1])
	}

	// Derived loggers share the level.
	l.SetLevel(LevelError)
	buf.Reset()
	scoped.Info("quiet")
	if buf.Len() != 0 {
		t.Errorf("derived logger ignored SetLevel: %q", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error("nothing %s", "here")
	if l.Enabled(LevelError) {
		t.Error("Discard logger should not be enabled at any level")
	}
}

func TestLevelString(t *testing.T) {
	if LevelWarn.String() != "WARN" || Level(9).String() != "UNKNOWN" {
		t.Error("unexpected Level strings")
	}
}
