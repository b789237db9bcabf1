package completion

import (
	"bytes"
	"io"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/sheaf/internal/paths"
	"github.com/thoreinstein/sheaf/pkg/fileutil"
	"github.com/thoreinstein/sheaf/pkg/sheaf"
	"github.com/thoreinstein/sheaf/pkg/sheaf/cli"
)

// option is the completion view of one binding.
type option struct {
	name  string
	names []string
	help  string
	// value is false for options completed as bare flags.
	value bool
	// rule is the zsh action completing the value; "" offers no candidates.
	rule   string
	repeat bool
}

func newOption(b cli.Binding) option {
	o := option{
		name:   b.Option,
		names:  cli.FlagNames(b.Option, b.Entry),
		help:   b.Entry.Doc(),
		repeat: b.Entry.CLI().Action == sheaf.ActionAppend || b.Entry.CLI().Action == sheaf.ActionCount,
	}
	if !b.Entry.TakesValue() {
		return o
	}
	rule, ok := b.Entry.CompletionRule()
	if o.repeat && !ok {
		rule, ok = "", true
	}
	o.value, o.rule = ok, rule
	return o
}

func surfaceOptions(s *cli.Surface) []option {
	if s == nil {
		return nil
	}
	bindings := s.Bindings()
	out := make([]option, len(bindings))
	for i, b := range bindings {
		out[i] = newOption(b)
	}
	return out
}

type subcommand struct {
	name    string
	help    string
	options []option
}

func subcommands(m *cli.Manager) []subcommand {
	var out []subcommand
	for _, c := range m.Layout().Commands {
		s, _ := m.Surfaces().Command(c.Name)
		out = append(out, subcommand{name: c.Name, help: c.Help, options: surfaceOptions(s)})
	}
	return out
}

// writeFile renders a script and writes it atomically, creating parent
// directories.
func writeFile(path string, render func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return err
	}
	if err := paths.EnsureDir(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "creating directory for %s", path)
	}
	if err := fileutil.AtomicWriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}
