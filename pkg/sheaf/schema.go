package sheaf

import (
	"regexp"
	"slices"
)

var identifierRe = regexp.MustCompile(`^[\p{L}_][\p{L}\p{Nd}_]*$`)

// IsIdentifier reports whether name is usable as a section, option or
// sub-command name.
func IsIdentifier(name string) bool {
	return identifierRe.MatchString(name)
}

// Field pairs an option name with its metadata.
type Field struct {
	Name  string
	Entry *Entry
}

// F is shorthand for a Field literal.
func F(name string, e *Entry) Field {
	return Field{Name: name, Entry: e}
}

// SectionSchema is the ordered, immutable declaration of a section's
// options. One SectionSchema may back several sections of a Config.
type SectionSchema struct {
	fields []Field
	index  map[string]int
}

// NewSectionSchema declares a section. Option names must be identifiers and
// unique within the section.
func NewSectionSchema(fields ...Field) (*SectionSchema, error) {
	s := &SectionSchema{
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if !IsIdentifier(f.Name) {
			return nil, invalidIdentifier("option", f.Name)
		}
		if f.Entry == nil {
			return nil, schemaErrorf("option %q has no entry", f.Name)
		}
		if _, dup := s.index[f.Name]; dup {
			return nil, schemaErrorf("option %q declared twice", f.Name)
		}
		s.index[f.Name] = len(s.fields)
		s.fields = append(s.fields, f)
	}
	return s, nil
}

// MustSectionSchema is like NewSectionSchema but panics on error.
func MustSectionSchema(fields ...Field) *SectionSchema {
	s, err := NewSectionSchema(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Options returns option names in declaration order.
func (s *SectionSchema) Options() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// Entry returns the metadata of an option.
func (s *SectionSchema) Entry(name string) (*Entry, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.fields[i].Entry, true
}

// Fields returns a copy of the declared fields.
func (s *SectionSchema) Fields() []Field {
	return slices.Clone(s.fields)
}

// SectionDecl names a SectionSchema inside a Schema.
type SectionDecl struct {
	Name   string
	Schema *SectionSchema
}

// Sect is shorthand for a SectionDecl literal.
func Sect(name string, s *SectionSchema) SectionDecl {
	return SectionDecl{Name: name, Schema: s}
}

// Schema is the ordered declaration of a whole configuration.
type Schema struct {
	sections []SectionDecl
	index    map[string]int
}

// NewSchema declares a configuration. Every declaration must name a valid
// identifier and resolve to a section schema; errors surface here, before
// any file or command line is processed.
func NewSchema(sections ...SectionDecl) (*Schema, error) {
	s := &Schema{
		sections: make([]SectionDecl, 0, len(sections)),
		index:    make(map[string]int, len(sections)),
	}
	for _, d := range sections {
		if !IsIdentifier(d.Name) {
			return nil, invalidIdentifier("section", d.Name)
		}
		if d.Schema == nil {
			return nil, schemaErrorf("field %q does not resolve to a section", d.Name)
		}
		if _, dup := s.index[d.Name]; dup {
			return nil, schemaErrorf("section %q declared twice", d.Name)
		}
		s.index[d.Name] = len(s.sections)
		s.sections = append(s.sections, d)
	}
	return s, nil
}

// MustSchema is like NewSchema but panics on error.
func MustSchema(sections ...SectionDecl) *Schema {
	s, err := NewSchema(sections...)
	if err != nil {
		panic(err)
	}
	return s
}

// Sections returns section names in declaration order.
func (s *Schema) Sections() []string {
	names := make([]string, len(s.sections))
	for i, d := range s.sections {
		names[i] = d.Name
	}
	return names
}

// Section returns the schema of a declared section.
func (s *Schema) Section(name string) (*SectionSchema, error) {
	i, ok := s.index[name]
	if !ok {
		return nil, &SectionError{Section: name}
	}
	return s.sections[i].Schema, nil
}

// Has reports whether a section is declared.
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Default builds a configuration filled with default values.
func (s *Schema) Default() (*Config, error) {
	return newConfig(s)
}

// FromMap builds a configuration from defaults overridden by values, a
// section -> option -> value mapping. Unknown keys are ignored.
func (s *Schema) FromMap(values map[string]map[string]any) (*Config, error) {
	cfg, err := newConfig(s)
	if err != nil {
		return nil, err
	}
	if err := cfg.Update(values, false); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile builds a configuration from defaults overridden by the in-file
// options of a TOML file. A missing file yields defaults.
func (s *Schema) LoadFile(path string) (*Config, *LoadReport, error) {
	cfg, err := newConfig(s)
	if err != nil {
		return nil, nil, err
	}
	report, err := cfg.UpdateFromFile(path)
	if err != nil {
		return nil, nil, err
	}
	return cfg, report, nil
}
