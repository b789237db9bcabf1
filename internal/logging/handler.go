package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// palette colors the parts of a text record. A nil palette means plain text.
type palette struct {
	time, key          *color.Color
	trace, debug, info *color.Color
	warn, err          *color.Color
}

func newPalette() *palette {
	c := func(attrs ...color.Attribute) *color.Color {
		col := color.New(attrs...)
		// The mode was already decided; ignore the stdout based global.
		col.EnableColor()
		return col
	}
	return &palette{
		time:  c(color.FgHiBlack),
		key:   c(color.FgCyan),
		trace: c(color.FgHiBlack),
		debug: c(color.FgMagenta),
		info:  c(color.FgGreen),
		warn:  c(color.FgYellow),
		err:   c(color.FgRed, color.Bold),
	}
}

func (p *palette) level(l slog.Level) *color.Color {
	switch {
	case l >= slog.LevelError:
		return p.err
	case l >= slog.LevelWarn:
		return p.warn
	case l >= slog.LevelInfo:
		return p.info
	case l > LevelTrace:
		return p.debug
	default:
		return p.trace
	}
}

// Handler writes one line per record:
//
//	3:04PM INFO  loaded config file path=/home/me/.config/sheaf/config.toml
//
// Attributes whose key or value looks like a secret are masked, and group
// attributes are flattened to dotted keys.
type Handler struct {
	level  slog.Leveler
	out    io.Writer
	mu     *sync.Mutex
	colors *palette
	// prefix is written after the message for attributes from WithAttrs.
	prefix string
	groups []string
}

// NewHandler creates a text handler. A nil opts logs at info level.
func NewHandler(out io.Writer, opts *slog.HandlerOptions, mode ColorMode) *Handler {
	h := &Handler{level: slog.LevelInfo, out: out, mu: &sync.Mutex{}}
	if opts != nil && opts.Level != nil {
		h.level = opts.Level
	}
	if mode.Enabled(out) {
		h.colors = newPalette()
	}
	return h
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats r and writes it in a single call.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	if !r.Time.IsZero() {
		b.WriteString(h.paint(h.timeColor(), r.Time.Format(time.Kitchen)))
		b.WriteByte(' ')
	}
	name := fmt.Sprintf("%-5s", LevelName(r.Level))
	if h.colors != nil {
		name = h.colors.level(r.Level).Sprint(name)
	}
	b.WriteString(name)
	b.WriteByte(' ')
	b.WriteString(r.Message)
	b.WriteString(h.prefix)
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&b, h.groups, a)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, b.String())
	return err
}

func (h *Handler) timeColor() *color.Color {
	if h.colors == nil {
		return nil
	}
	return h.colors.time
}

func (h *Handler) paint(c *color.Color, s string) string {
	if c == nil {
		return s
	}
	return c.Sprint(s)
}

func (h *Handler) writeAttr(b *strings.Builder, groups []string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		inner := groups
		if a.Key != "" {
			inner = append(append([]string(nil), groups...), a.Key)
		}
		for _, ga := range a.Value.Group() {
			h.writeAttr(b, inner, ga)
		}
		return
	}
	a = redactAttr(a)
	key := a.Key
	if len(groups) > 0 {
		key = strings.Join(groups, ".") + "." + key
	}
	if h.colors != nil {
		key = h.colors.key.Sprint(key)
	}
	fmt.Fprintf(b, " %s=%v", key, a.Value.Any())
}

// WithAttrs returns a Handler that writes attrs after every message.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	var b strings.Builder
	b.WriteString(h.prefix)
	for _, a := range attrs {
		h.writeAttr(&b, h.groups, a)
	}
	out := *h
	out.prefix = b.String()
	return &out
}

// WithGroup returns a Handler that prefixes later keys with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	out := *h
	out.groups = append(append([]string(nil), h.groups...), name)
	return &out
}
