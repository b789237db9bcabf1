package cli

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/thoreinstein/sheaf/pkg/sheaf"
)

var (
	// ErrHelp is returned by Parse after printing help.
	ErrHelp = errors.New("help requested")

	// ErrUsage indicates malformed command line arguments.
	ErrUsage = errors.New("invalid arguments")

	// ErrMissingCommand indicates no sub-command was given and the layout
	// has no bare command.
	ErrMissingCommand = errors.New("missing sub-command")

	// ErrUnknownCommand indicates an undeclared sub-command.
	ErrUnknownCommand = errors.New("unknown sub-command")
)

// usageError makes a parse or cast failure match ErrUsage while keeping its
// cause, such as sheaf.ErrTypeMismatch, reachable.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Is(target error) bool { return target == ErrUsage }

func (e *usageError) Unwrap() error { return e.err }

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger receiving shadowing warnings.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithOutput sets where help is printed. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(m *Manager) { m.out = w }
}

// WithName sets the program name shown in help. Defaults to the base name
// of os.Args[0].
func WithName(name string) Option {
	return func(m *Manager) { m.name = name }
}

// Result describes a parsed command line.
type Result struct {
	// Command is the invoked sub-command, "" for the bare command.
	Command string
	// Given lists "section.option" keys set from the command line.
	Given []string
	// Values holds forced defaults that are not options of the command.
	Values map[string]any
}

// Manager parses command lines into a sheaf.Config.
type Manager struct {
	cfg      *sheaf.Config
	layout   Layout
	surfaces *Surfaces
	warnings []ShadowWarning

	logger *slog.Logger
	out    io.Writer
	name   string

	root   *cobra.Command
	levels map[string]*level
}

// level is the parser state of the root command or of one sub-command.
type level struct {
	cmd     *cobra.Command
	surface *Surface
	table   *table
	values  []*optionValue
}

// NewManager resolves the surfaces of layout against cfg. Shadowing warnings
// are logged and kept in Warnings.
func NewManager(cfg *sheaf.Config, layout Layout, opts ...Option) (*Manager, error) {
	m := &Manager{
		cfg:    cfg,
		layout: layout,
		logger: slog.Default(),
		out:    os.Stdout,
		name:   filepath.Base(os.Args[0]),
	}
	for _, opt := range opts {
		opt(m)
	}

	surfaces, warnings, err := Resolve(cfg.Schema(), layout)
	if err != nil {
		return nil, err
	}
	m.surfaces, m.warnings = surfaces, warnings
	for _, w := range warnings {
		m.logger.Warn(w.String(),
			"command", w.Command,
			"option", w.Option,
			"shadowed", w.Shadowed,
			"winner", w.Winner,
		)
	}
	return m, nil
}

// Config returns the configuration updated by Parse.
func (m *Manager) Config() *sheaf.Config { return m.cfg }

// Layout returns the command structure.
func (m *Manager) Layout() Layout { return m.layout }

// Surfaces returns the resolved option sets.
func (m *Manager) Surfaces() *Surfaces { return m.surfaces }

// Warnings returns the shadowing warnings found by NewManager.
func (m *Manager) Warnings() []ShadowWarning { return slices.Clone(m.warnings) }

// Name returns the program name.
func (m *Manager) Name() string { return m.name }

// Command returns the command tree, or nil before Build.
func (m *Manager) Command() *cobra.Command { return m.root }

// Build constructs the parser. Values shown as defaults in help are the
// current values of the configuration. Build fails when two options of one
// command share a single dash spelling.
func (m *Manager) Build() error {
	root := &cobra.Command{
		Use:           m.name,
		Long:          m.layout.Common.Help,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	if m.surfaces.Bare() != nil {
		root.Run = func(*cobra.Command, []string) {}
		if m.layout.Bare.Help != "" {
			root.Short = m.layout.Bare.Help
		}
	}
	root.SetOut(m.out)
	root.SetErr(m.out)

	levels := map[string]*level{}
	lv, err := m.newLevel(root, m.surfaces.Bare())
	if err != nil {
		return err
	}
	levels[""] = lv

	for _, c := range m.layout.Commands {
		sub := &cobra.Command{
			Use:   c.Name,
			Short: c.Help,
			Run:   func(*cobra.Command, []string) {},
		}
		root.AddCommand(sub)
		s, _ := m.surfaces.Command(c.Name)
		lv, err := m.newLevel(sub, s)
		if err != nil {
			return errors.Wrapf(err, "command %s", c.Name)
		}
		levels[c.Name] = lv
	}

	m.root, m.levels = root, levels
	return nil
}

func (m *Manager) newLevel(cmd *cobra.Command, s *Surface) (*level, error) {
	lv := &level{cmd: cmd, surface: s, table: newTable()}
	if s != nil {
		fs := cmd.Flags()
		for _, b := range s.bindings {
			cur, err := m.current(b)
			if err != nil {
				return nil, err
			}
			v := newOptionValue(b, cur)
			if err := lv.table.add(v); err != nil {
				return nil, err
			}
			usage, shorthand := b.Entry.Doc(), ""
			switch short := b.Entry.ShortName(); {
			case isSwitch(b.Entry):
				usage = fmt.Sprintf("%s (%s)", usage, strings.Join(FlagNames(b.Option, b.Entry), ", "))
			case len(short) == 1:
				shorthand = short
			case short != "":
				usage = fmt.Sprintf("%s (-%s)", usage, short)
			}
			fs.VarP(v, b.Option, shorthand, usage)
			lv.values = append(lv.values, v)
		}
	}
	cmd.InitDefaultHelpFlag()
	return lv, nil
}

func (m *Manager) current(b Binding) (any, error) {
	sec, err := m.cfg.Section(b.Section)
	if err != nil {
		return nil, err
	}
	return sec.Get(b.Option)
}

// Parse parses args, without the program name, and writes the options given
// on the command line back to their sections. Options not given keep their
// value unless a forced default of the command applies.
//
// Requesting help prints it and returns ErrHelp.
func (m *Manager) Parse(args []string) (*Result, error) {
	if m.root == nil {
		return nil, errors.Wrap(sheaf.ErrParserNotReady, "call Build before Parse")
	}
	if err := m.reset(); err != nil {
		return nil, err
	}

	root := m.levels[""]
	sc, err := root.table.scan(args, true)
	if err != nil {
		return nil, err
	}
	if sc.help {
		return nil, m.help(root.cmd)
	}
	if err := root.parse(sc.tokens); err != nil {
		return nil, err
	}

	res := &Result{Command: sc.command, Values: map[string]any{}}
	if sc.command == "" {
		if root.surface == nil {
			return nil, errors.Wrapf(ErrMissingCommand, "choose one of: %s",
				strings.Join(m.surfaces.Commands(), ", "))
		}
		if err := m.apply(res, root, nil); err != nil {
			return nil, err
		}
		return res, m.applyDefaults(res, root.surface, m.layout.Common.Defaults, m.layout.Bare.Defaults)
	}

	sub, ok := m.levels[sc.command]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownCommand, "%q (choose one of: %s)",
			sc.command, strings.Join(m.surfaces.Commands(), ", "))
	}
	ssc, err := sub.table.scan(sc.rest, false)
	if err != nil {
		return nil, errors.Wrapf(err, "command %s", sc.command)
	}
	if ssc.help {
		return nil, m.help(sub.cmd)
	}
	if err := sub.parse(ssc.tokens); err != nil {
		return nil, err
	}

	if err := m.apply(res, sub, nil); err != nil {
		return nil, err
	}
	// Options given before the sub-command still count unless the same
	// name is given after it.
	if err := m.apply(res, root, sub); err != nil {
		return nil, err
	}
	c, _ := m.layout.command(sc.command)
	return res, m.applyDefaults(res, sub.surface, m.layout.Common.Defaults, c.Defaults)
}

func (m *Manager) help(cmd *cobra.Command) error {
	if err := cmd.Help(); err != nil {
		return errors.Wrap(err, "printing help")
	}
	return ErrHelp
}

func (lv *level) given(option string) bool {
	for _, v := range lv.values {
		if v.set && v.binding.Option == option {
			return true
		}
	}
	return false
}

func (lv *level) parse(tokens []string) error {
	if err := lv.cmd.Flags().Parse(tokens); err != nil {
		return &usageError{errors.Wrapf(err, "%s", lv.cmd.CommandPath())}
	}
	return nil
}

// apply writes the values given at lv, skipping option names also given at
// over.
func (m *Manager) apply(res *Result, lv, over *level) error {
	for _, v := range lv.values {
		if !v.set {
			continue
		}
		b := v.binding
		if over != nil && over.given(b.Option) {
			continue
		}
		sec, err := m.cfg.Section(b.Section)
		if err != nil {
			return err
		}
		if err := sec.Update(map[string]any{b.Option: v.value()}, false); err != nil {
			return &usageError{err}
		}
		res.Given = append(res.Given, b.Section+"."+b.Option)
	}
	return nil
}

// applyDefaults applies forced defaults in order, later maps taking
// precedence. Options given on the command line are left alone.
func (m *Manager) applyDefaults(res *Result, s *Surface, defaults ...map[string]any) error {
	forced := map[string]any{}
	for _, d := range defaults {
		maps.Copy(forced, d)
	}
	for _, name := range slices.Sorted(maps.Keys(forced)) {
		val := forced[name]
		b, ok := s.Lookup(name)
		if !ok {
			res.Values[name] = val
			continue
		}
		if slices.Contains(res.Given, b.Section+"."+b.Option) {
			continue
		}
		sec, err := m.cfg.Section(b.Section)
		if err != nil {
			return err
		}
		if err := sec.Update(map[string]any{name: val}, false); err != nil {
			return errors.Wrapf(err, "forced default of %s", name)
		}
	}
	return nil
}

// reset clears state from a previous Parse and refreshes the defaults shown
// in help from the configuration.
func (m *Manager) reset() error {
	for _, lv := range m.levels {
		var err error
		lv.cmd.Flags().VisitAll(func(f *pflag.Flag) {
			f.Changed = false
			v, ok := f.Value.(*optionValue)
			if !ok || err != nil {
				return
			}
			v.reset()
			var cur any
			if cur, err = m.current(v.binding); err != nil {
				return
			}
			v.def = ""
			if cur != nil {
				v.def = fmt.Sprint(cur)
			}
			f.DefValue = v.def
		})
		if err != nil {
			return err
		}
	}
	return nil
}
