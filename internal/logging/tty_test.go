package logging

import (
	"bytes"
	"os"
	"testing"
)

func TestColorMode_Enabled(t *testing.T) {
	t.Setenv("TERM", "xterm-256color")
	t.Setenv("NO_COLOR", "")
	os.Unsetenv("NO_COLOR")

	var buf bytes.Buffer
	tests := []struct {
		name string
		mode ColorMode
		want bool
	}{
		{"auto on a buffer", ColorAuto, false},
		{"never", ColorNever, false},
		{"always", ColorAlways, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mode.Enabled(&buf); got != tt.want {
				t.Errorf("Enabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestColorModeFor(t *testing.T) {
	if ColorModeFor(true) != ColorAuto {
		t.Error("log.color = true should check the terminal")
	}
	if ColorModeFor(false) != ColorNever {
		t.Error("log.color = false should disable colors")
	}
}

func TestSupportsColor_Env(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if SupportsColor(os.Stderr) {
		t.Error("NO_COLOR should disable colors")
	}

	os.Unsetenv("NO_COLOR")
	t.Setenv("TERM", "dumb")
	if SupportsColor(os.Stderr) {
		t.Error("TERM=dumb should disable colors")
	}
}

func TestIsTTY_NonFile(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Error("a buffer is not a terminal")
	}
}
