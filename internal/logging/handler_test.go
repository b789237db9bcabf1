package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func newTextLogger(buf *bytes.Buffer, level slog.Level) *slog.Logger {
	return slog.New(NewHandler(buf, &slog.HandlerOptions{Level: level}, ColorNever))
}

func TestHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	newTextLogger(&buf, slog.LevelDebug).Info("loaded config file", "path", "/tmp/a.toml")

	output := buf.String()
	// Example: 10:00PM INFO  loaded config file path=/tmp/a.toml
	if !strings.Contains(output, "INFO  loaded config file path=/tmp/a.toml\n") {
		t.Errorf("unexpected record layout: %q", output)
	}
	if !strings.Contains(output, time.Now().Format(time.Kitchen)) {
		t.Errorf("expected kitchen time in output, got: %q", output)
	}
	if strings.Contains(output, "\x1b[") {
		t.Errorf("ColorNever output contains escape codes: %q", output)
	}
}

func TestHandler_TraceLabel(t *testing.T) {
	var buf bytes.Buffer
	newTextLogger(&buf, LevelTrace).Log(t.Context(), LevelTrace, "rewrote token", "from", "-vv")

	if !strings.Contains(buf.String(), "TRACE rewrote token from=-vv") {
		t.Errorf("expected TRACE label, got: %q", buf.String())
	}
}

func TestHandler_Enabled(t *testing.T) {
	h := NewHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn}, ColorNever)
	if h.Enabled(t.Context(), slog.LevelInfo) {
		t.Error("info should be disabled at warn level")
	}
	if !h.Enabled(t.Context(), slog.LevelError) {
		t.Error("error should be enabled at warn level")
	}

	if NewHandler(&bytes.Buffer{}, nil, ColorNever).Enabled(t.Context(), slog.LevelDebug) {
		t.Error("nil options should log at info level")
	}
}

func TestHandler_NoTime(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, nil, ColorNever)
	r := slog.NewRecord(time.Time{}, slog.LevelWarn, "no time", 0)
	if err := h.Handle(t.Context(), r); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	if got := buf.String(); got != "WARN  no time\n" {
		t.Errorf("Handle() wrote %q", got)
	}
}

func TestHandler_AttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := newTextLogger(&buf, slog.LevelInfo).With("command", "show").WithGroup("cli")

	logger.Info("parsed", "given", 2, slog.Group("option", "section", "log", "name", "level"))

	want := "parsed command=show cli.given=2 cli.option.section=log cli.option.name=level\n"
	if !strings.HasSuffix(buf.String(), want) {
		t.Errorf("got %q, want suffix %q", buf.String(), want)
	}
}

func TestHandler_Redaction(t *testing.T) {
	var buf bytes.Buffer
	logger := newTextLogger(&buf, slog.LevelInfo).With("api_token", "supersecret")

	logger.Info("override", "value", "ghp_abcdefghij", "editor", "vim")

	output := buf.String()
	for _, leaked := range []string{"supersecret", "ghp_abcdefghij"} {
		if strings.Contains(output, leaked) {
			t.Errorf("secret %q leaked: %q", leaked, output)
		}
	}
	for _, want := range []string{"api_token=****cret", "value=****ghij", "editor=vim"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q: %q", want, output)
		}
	}
}

func TestHandler_ColorAlways(t *testing.T) {
	var buf bytes.Buffer
	slog.New(NewHandler(&buf, nil, ColorAlways)).Error("boom")

	if !strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("ColorAlways output has no escape codes: %q", buf.String())
	}
}
