package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	if err := l.SetLevel(WARN); err != nil {
		t.Fatalf("SetLevel: %v", err)
	}
	if err := l.Info("should be dropped"); err != nil {
		t.Fatalf("Info: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output below threshold, got %q", buf.String())
	}
	if err := l.Error("should appear"); err != nil {
		t.Fatalf("Error: %v", err)
	}
	if !strings.Contains(buf.String(), "should appear") {
		t.Errorf("expected message in output, got %q", buf.String())
	}
}

func TestLoggerRejectsInvalidLevel(t *testing.T) {
	l := NewDiscard()
	if err := l.SetLevel(Level(99)); err == nil {
		t.Fatalf("expected error for invalid level")
	}
}

func TestLevelFromEnvString(t *testing.T) {
	cases := map[string]Level{
		"modality=warn":  WARN,
		"modality=debug": DEBUG,
		"error":          ERROR,
		"":               WARN,
		"garbage":        WARN,
	}
	for in, want := range cases {
		if got := LevelFromEnvString(in); got != want {
			t.Errorf("LevelFromEnvString(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLoggerMultipleWriters(t *testing.T) {
	var a, b bytes.Buffer
	l := New(&a)
	l.AddWriter(&b)
	if err := l.Info("hello"); err != nil {
		t.Fatalf("Info: %v", err)
	}
	if !strings.Contains(a.String(), "hello") || !strings.Contains(b.String(), "hello") {
		t.Errorf("expected both writers to receive the line: a=%q b=%q", a.String(), b.String())
	}
}
