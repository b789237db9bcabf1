package logging

import (
	"context"
	"log/slog"
)

// tee sends records to every handler enabled for their level.
type tee []slog.Handler

// Tee combines handlers, as used for a terminal logger plus a log file.
// Nil handlers are skipped and a single handler is returned as is.
func Tee(handlers ...slog.Handler) slog.Handler {
	var t tee
	for _, h := range handlers {
		if h != nil {
			t = append(t, h)
		}
	}
	switch len(t) {
	case 0:
		return slog.DiscardHandler
	case 1:
		return t[0]
	}
	return t
}

func (t tee) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle returns the first error but still writes to every handler.
func (t tee) Handle(ctx context.Context, r slog.Record) error {
	var first error
	for _, h := range t {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (t tee) WithAttrs(attrs []slog.Attr) slog.Handler {
	return t.each(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (t tee) WithGroup(name string) slog.Handler {
	return t.each(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (t tee) each(f func(slog.Handler) slog.Handler) tee {
	out := make(tee, len(t))
	for i, h := range t {
		out[i] = f(h)
	}
	return out
}
