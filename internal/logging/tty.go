package logging

import (
	"io"
	"os"

	"golang.org/x/term"
)

// ColorMode selects whether the text format is colored.
type ColorMode int

const (
	// ColorAuto colors terminals unless NO_COLOR is set or TERM is dumb.
	ColorAuto ColorMode = iota
	// ColorNever disables colors, as log.color = false does.
	ColorNever
	// ColorAlways colors any writer.
	ColorAlways
)

// ColorModeFor maps the log.color option to a mode.
func ColorModeFor(enabled bool) ColorMode {
	if enabled {
		return ColorAuto
	}
	return ColorNever
}

// Enabled reports whether output to w is colored.
func (m ColorMode) Enabled(w io.Writer) bool {
	switch m {
	case ColorNever:
		return false
	case ColorAlways:
		return true
	default:
		return SupportsColor(w)
	}
}

// IsTTY returns true if the given writer is a terminal.
// It supports os.File and any wrapper that provides an Fd() method.
func IsTTY(w io.Writer) bool {
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// SupportsColor reports whether w is a terminal and the environment does
// not opt out through NO_COLOR (https://no-color.org) or TERM=dumb.
func SupportsColor(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return IsTTY(w)
}
