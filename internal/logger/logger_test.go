package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, WARN, TEXT)

	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message")
	log.Error("error message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("messages below WARN should be suppressed, got: %s", out)
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "error message") {
		t.Errorf("WARN and ERROR should be emitted, got: %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{"warning", WARN},
		{"error", ERROR},
		{"off", DISABLED},
		{"bogus", INFO},
		{"", INFO},
	}

	for _, test := range tests {
		if got := ParseLevel(test.input); got != test.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", test.input, got, test.want)
		}
	}
}

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, INFO, TEXT).WithContext("pipeline")

	log.Info("processed %d papers", 32)

	out := buf.String()
	if !strings.Contains(out, "[INFO]") {
		t.Errorf("missing level tag: %s", out)
	}
	if !strings.Contains(out, "[pipeline]") {
		t.Errorf("missing context tag: %s", out)
	}
	if !strings.Contains(out, "processed 32 papers") {
		t.Errorf("missing formatted message: %s", out)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, INFO, JSON).WithField("run_id", "abc123")

	log.Info("store opened")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v (%s)", err, buf.String())
	}
	if entry["level"] != "INFO" {
		t.Errorf("level = %v, want INFO", entry["level"])
	}
	if entry["message"] != "store opened" {
		t.Errorf("message = %v, want %q", entry["message"], "store opened")
	}
	if entry["run_id"] != "abc123" {
		t.Errorf("run_id = %v, want abc123", entry["run_id"])
	}
}

func TestWithFieldDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := New(&buf, INFO, TEXT)
	_ = parent.WithField("batch", 1)

	parent.Info("plain line")
	if strings.Contains(buf.String(), "batch=") {
		t.Errorf("parent logger gained child field: %s", buf.String())
	}
}
