package cli

import (
	"fmt"
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/sheaf/pkg/sheaf"
)

// Binding ties a command line option to the section that owns it.
type Binding struct {
	Option  string
	Section string
	Entry   *sheaf.Entry
}

// Surface is the resolved option set of one command.
type Surface struct {
	// Command is the sub-command name, "" for the bare command.
	Command  string
	bindings []Binding
	index    map[string]int
}

// Bindings returns the options of the command in resolution order.
func (s *Surface) Bindings() []Binding {
	return slices.Clone(s.bindings)
}

// Lookup returns the binding of an option name.
func (s *Surface) Lookup(option string) (Binding, bool) {
	i, ok := s.index[option]
	if !ok {
		return Binding{}, false
	}
	return s.bindings[i], true
}

// Owner returns the section owning an option, or "".
func (s *Surface) Owner(option string) string {
	b, _ := s.Lookup(option)
	return b.Section
}

// Len returns the number of options.
func (s *Surface) Len() int { return len(s.bindings) }

// ShadowWarning reports a section option hidden by a same-named option of a
// section with higher precedence.
type ShadowWarning struct {
	Command  string
	Option   string
	Shadowed string
	Winner   string
}

func (w ShadowWarning) String() string {
	return fmt.Sprintf("Command <%s>: %s.%s shadowed by %s.%s",
		w.Command, w.Shadowed, w.Option, w.Winner, w.Option)
}

// Surfaces holds the resolved surfaces of a Layout.
type Surfaces struct {
	bare     *Surface
	commands []*Surface
}

// Bare returns the surface used without sub-command, or nil when the layout
// has no bare command.
func (s *Surfaces) Bare() *Surface { return s.bare }

// Command returns the surface of a sub-command.
func (s *Surfaces) Command(name string) (*Surface, bool) {
	for _, c := range s.commands {
		if c.Command == name {
			return c, true
		}
	}
	return nil, false
}

// Commands returns sub-command names in layout order.
func (s *Surfaces) Commands() []string {
	names := make([]string, len(s.commands))
	for i, c := range s.commands {
		names[i] = c.Command
	}
	return names
}

// Sections returns the candidate sections of a command in increasing order
// of precedence: common sections, then the bare or sub-command sections, then
// the section named like the sub-command if there is one. An empty name
// selects the bare command, which has no sections without Layout.Bare.
func (l Layout) Sections(schema *sheaf.Schema, command string) []string {
	out := slices.Clone(l.Common.Sections)
	if command == "" {
		if l.Bare == nil {
			return nil
		}
		return append(out, l.Bare.Sections...)
	}
	if c, ok := l.command(command); ok {
		out = append(out, c.Sections...)
	}
	if schema.Has(command) {
		out = append(out, command)
	}
	return out
}

// Resolve computes the surface of every command of the layout. Warnings are
// not errors; they list every option hidden by another section.
func Resolve(schema *sheaf.Schema, layout Layout) (*Surfaces, []ShadowWarning, error) {
	if err := validateLayout(schema, layout); err != nil {
		return nil, nil, err
	}

	var (
		out      Surfaces
		warnings []ShadowWarning
	)
	if layout.Bare != nil {
		s, w, err := resolveCommand(schema, layout, "")
		if err != nil {
			return nil, nil, err
		}
		out.bare = s
		warnings = append(warnings, w...)
	}
	for _, c := range layout.Commands {
		s, w, err := resolveCommand(schema, layout, c.Name)
		if err != nil {
			return nil, nil, err
		}
		out.commands = append(out.commands, s)
		warnings = append(warnings, w...)
	}
	return &out, warnings, nil
}

func resolveCommand(schema *sheaf.Schema, layout Layout, command string) (*Surface, []ShadowWarning, error) {
	s := &Surface{Command: command, index: map[string]int{}}
	var warnings []ShadowWarning

	sections := layout.Sections(schema, command)
	for _, name := range slices.Backward(sections) {
		sec, err := schema.Section(name)
		if err != nil {
			return nil, nil, err
		}
		for _, f := range sec.Fields() {
			if !f.Entry.InCLI() {
				continue
			}
			if i, claimed := s.index[f.Name]; claimed {
				// A section listed twice shadows nothing.
				if winner := s.bindings[i].Section; winner != name {
					warnings = append(warnings, ShadowWarning{
						Command:  command,
						Option:   f.Name,
						Shadowed: name,
						Winner:   winner,
					})
				}
				continue
			}
			s.index[f.Name] = len(s.bindings)
			s.bindings = append(s.bindings, Binding{Option: f.Name, Section: name, Entry: f.Entry})
		}
	}
	return s, warnings, nil
}

func validateLayout(schema *sheaf.Schema, layout Layout) error {
	check := func(c Command, what string) error {
		for _, name := range c.Sections {
			if !schema.Has(name) {
				return errors.Wrapf(&sheaf.SectionError{Section: name}, "%s", what)
			}
		}
		return nil
	}
	if err := check(layout.Common, "common sections"); err != nil {
		return err
	}
	if layout.Bare != nil {
		if err := check(*layout.Bare, "bare command"); err != nil {
			return err
		}
	}
	seen := map[string]bool{}
	for _, c := range layout.Commands {
		if !sheaf.IsIdentifier(c.Name) {
			return errors.Wrapf(sheaf.ErrInvalidIdentifier, "sub-command name %q", c.Name)
		}
		if seen[c.Name] {
			return errors.Wrapf(sheaf.ErrSchema, "sub-command %q declared twice", c.Name)
		}
		seen[c.Name] = true
		if err := check(c, "command "+c.Name); err != nil {
			return err
		}
	}
	return nil
}
