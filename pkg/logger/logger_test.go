package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("warn", &buf)

	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message")
	log.Error("error message", errors.New("boom"))

	out := buf.String()
	if strings.Contains(out, "debug message") {
		t.Errorf("Expected debug message to be filtered, got %q", out)
	}
	if strings.Contains(out, "info message") {
		t.Errorf("Expected info message to be filtered, got %q", out)
	}
	if !strings.Contains(out, "WARN: warn message") {
		t.Errorf("Expected warn message in output, got %q", out)
	}
	if !strings.Contains(out, "ERROR: error message") {
		t.Errorf("Expected error message in output, got %q", out)
	}
}

func TestLoggerFieldFormatting(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.Info("processing file", "filename", "report.pdf", "pages", 3)

	out := buf.String()
	if !strings.Contains(out, "filename=report.pdf") {
		t.Errorf("Expected filename field in output, got %q", out)
	}
	if !strings.Contains(out, "pages=3") {
		t.Errorf("Expected pages field in output, got %q", out)
	}
}

func TestLoggerErrorIncludesCause(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("error", &buf)

	log.Error("extraction failed", errors.New("bad xref"), "filename", "broken.pdf")

	out := buf.String()
	if !strings.Contains(out, "error=bad xref") {
		t.Errorf("Expected error field in output, got %q", out)
	}
	if !strings.Contains(out, "filename=broken.pdf") {
		t.Errorf("Expected filename field in output, got %q", out)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", DEBUG},
		{"info", INFO},
		{"warn", WARN},
		{"warning", WARN},
		{"error", ERROR},
		{"DEBUG", DEBUG},
		{"unknown", INFO},
		{"", INFO},
	}

	for _, tt := range tests {
		if got := parseLogLevel(tt.input); got != tt.expected {
			t.Errorf("parseLogLevel(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}
