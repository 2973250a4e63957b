package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelWarn, &buf)

	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message")
	l.Error("error message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Error("Messages below level should be suppressed")
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "error message") {
		t.Error("Messages at or above level should be logged")
	}
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelInfo, &buf)

	l.WithFields(map[string]interface{}{"rule": "E501", "enabled": false}).Info("toggled")

	out := buf.String()
	if !strings.Contains(out, "rule=E501") {
		t.Errorf("Output missing field: %s", out)
	}
	if !strings.Contains(out, "enabled=false") {
		t.Errorf("Output missing field: %s", out)
	}
}

func TestWithPrefix(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelInfo, &buf).WithPrefix("engine")

	l.Info("loaded")

	if !strings.Contains(buf.String(), "[engine]") {
		t.Errorf("Output missing prefix: %s", buf.String())
	}
}

func TestFormatArgs(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelInfo, &buf)

	l.Info("loaded %d rules", 42)

	if !strings.Contains(buf.String(), "loaded 42 rules") {
		t.Errorf("Output not formatted: %s", buf.String())
	}
}
