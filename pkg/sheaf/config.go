package sheaf

import (
	"iter"

	"github.com/cockroachdb/errors"
)

// Config is a live configuration: one Section per section declared in its
// Schema. It is not safe for concurrent mutation.
type Config struct {
	schema   *Schema
	sections map[string]*Section
}

func newConfig(schema *Schema) (*Config, error) {
	if schema == nil {
		return nil, schemaErrorf("nil schema")
	}
	c := &Config{
		schema:   schema,
		sections: make(map[string]*Section, len(schema.sections)),
	}
	for _, d := range schema.sections {
		sec, err := NewSection(d.Name, d.Schema)
		if err != nil {
			return nil, err
		}
		c.sections[d.Name] = sec
	}
	return c, nil
}

// Schema returns the declaration backing the configuration.
func (c *Config) Schema() *Schema { return c.schema }

// Sections returns section names in declaration order.
func (c *Config) Sections() []string { return c.schema.Sections() }

// Has reports whether a section is declared.
func (c *Config) Has(name string) bool { return c.schema.Has(name) }

// Section returns a live section.
func (c *Config) Section(name string) (*Section, error) {
	sec, ok := c.sections[name]
	if !ok {
		return nil, &SectionError{Section: name}
	}
	return sec, nil
}

// MustSection is like Section but panics on an unknown name. It is meant for
// names fixed at declaration time.
func (c *Config) MustSection(name string) *Section {
	sec, err := c.Section(name)
	if err != nil {
		panic(err)
	}
	return sec
}

// All iterates over sections in declaration order.
func (c *Config) All() iter.Seq2[string, *Section] {
	return func(yield func(string, *Section) bool) {
		for _, d := range c.schema.sections {
			if !yield(d.Name, c.sections[d.Name]) {
				return
			}
		}
	}
}

// Update applies a section -> option -> value mapping. Unknown sections and
// options are ignored. When inFileOnly is set, options excluded from files
// are skipped as well; command line updates pass false since command line
// exposure is governed by the orthogonal in_cli flag.
func (c *Config) Update(values map[string]map[string]any, inFileOnly bool) error {
	for name, sec := range c.All() {
		opts, ok := values[name]
		if !ok {
			continue
		}
		if err := sec.Update(opts, inFileOnly); err != nil {
			return err
		}
	}
	return nil
}

// UpdateSection applies an option -> value mapping to one section.
func (c *Config) UpdateSection(name string, values map[string]any, inFileOnly bool) error {
	sec, err := c.Section(name)
	if err != nil {
		return err
	}
	return sec.Update(values, inFileOnly)
}

// Reset restores the named sections, or all sections when none is given, to
// their defaults.
func (c *Config) Reset(sections ...string) error {
	if len(sections) == 0 {
		sections = c.Sections()
	}
	for _, name := range sections {
		sec, err := c.Section(name)
		if err != nil {
			return err
		}
		if err := sec.Reset(); err != nil {
			return err
		}
	}
	return nil
}

// ToMap returns current values as a section -> option -> value mapping.
// With inFileOnly, only in-file options are kept, values go through their
// serialize hooks, and sections left empty are omitted.
func (c *Config) ToMap(inFileOnly bool) (map[string]map[string]any, error) {
	out := make(map[string]map[string]any, len(c.sections))
	for name, sec := range c.All() {
		opts := make(map[string]any)
		for _, f := range sec.schema.fields {
			v := sec.values[f.Name]
			if inFileOnly {
				if !f.Entry.InFile() {
					continue
				}
				sv, err := f.Entry.Serialize(v)
				if err != nil {
					return nil, errors.Wrapf(err, "option %s.%s", name, f.Name)
				}
				v = sv
			}
			opts[f.Name] = v
		}
		if inFileOnly && len(opts) == 0 {
			continue
		}
		out[name] = opts
	}
	return out, nil
}
