package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelTrace, Format: FormatJSON, Output: &buf})

	logger.Log(t.Context(), LevelTrace, "scan", "section", "log", "auth_token", "abcdefgh")

	var parsed map[string]any
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v\noutput: %s", err, buf.String())
	}
	if parsed["level"] != "TRACE" {
		t.Errorf("level = %v, want TRACE", parsed["level"])
	}
	if parsed["msg"] != "scan" || parsed["section"] != "log" {
		t.Errorf("unexpected record: %v", parsed)
	}
	if parsed["auth_token"] != "****efgh" {
		t.Errorf("auth_token = %v, want masked", parsed["auth_token"])
	}
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Format: "unknown", Output: &buf, Color: ColorNever})

	logger.Info("test message", "section", "show")

	output := buf.String()
	if json.Valid(buf.Bytes()) {
		t.Errorf("unknown format should fall back to text, got %q", output)
	}
	if !strings.Contains(output, "INFO  test message section=show") {
		t.Errorf("unexpected output: %q", output)
	}
}

func TestNew_DefaultsToStderr(t *testing.T) {
	h, ok := NewFormatHandler(Config{}).(*Handler)
	if !ok {
		t.Fatal("zero Config should produce a text handler")
	}
	if h.out == nil {
		t.Error("nil Output should default to stderr")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelWarn, Output: &buf, Color: ColorNever})

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	output := buf.String()
	if strings.Contains(output, "debug") || strings.Contains(output, "info") {
		t.Errorf("records below warn were written: %q", output)
	}
	if !strings.Contains(output, "WARN  warn") || !strings.Contains(output, "ERROR error") {
		t.Errorf("records at or above warn are missing: %q", output)
	}
}

func TestNewDiscard(t *testing.T) {
	logger := NewDiscard()
	if logger.Enabled(t.Context(), slog.LevelError) {
		t.Error("discard logger should not be enabled at any level")
	}
	logger.Error("dropped")
}

func TestForTest(t *testing.T) {
	logger := ForTest(t)
	if !logger.Enabled(t.Context(), LevelTrace) {
		t.Error("ForTest logger should capture trace records")
	}
	logger.Log(t.Context(), LevelTrace, "trace from test")
}

func TestTestWriter_TrimsNewline(t *testing.T) {
	w := &testWriter{t: t}
	n, err := w.Write([]byte("line\n"))
	if err != nil || n != 5 {
		t.Errorf("Write() = %d, %v; want 5, nil", n, err)
	}
}

func TestLevelFromVerbosity(t *testing.T) {
	tests := []struct {
		v    int
		want slog.Level
	}{
		{-1, slog.LevelWarn},
		{0, slog.LevelWarn},
		{1, slog.LevelInfo},
		{2, slog.LevelDebug},
		{3, LevelTrace},
		{10, LevelTrace},
	}
	for _, tt := range tests {
		if got := LevelFromVerbosity(tt.v); got != tt.want {
			t.Errorf("LevelFromVerbosity(%d) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestLevelName(t *testing.T) {
	tests := []struct {
		level slog.Level
		want  string
	}{
		{LevelTrace, "TRACE"},
		{LevelTrace - 1, "TRACE"},
		{slog.LevelDebug, "DEBUG"},
		{slog.LevelWarn, "WARN"},
	}
	for _, tt := range tests {
		if got := LevelName(tt.level); got != tt.want {
			t.Errorf("LevelName(%v) = %q, want %q", tt.level, got, tt.want)
		}
	}
}
