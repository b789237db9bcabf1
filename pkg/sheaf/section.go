package sheaf

import (
	"iter"
	"reflect"

	"github.com/cockroachdb/errors"
)

// Section is a live group of option values backed by a SectionSchema. Each
// instance resolves its own defaults at construction, so factory defaults
// are never shared between sections.
//
// A Section is not safe for concurrent mutation.
type Section struct {
	name   string
	schema *SectionSchema
	values map[string]any
}

// NewSection creates a section filled with default values.
func NewSection(name string, schema *SectionSchema) (*Section, error) {
	if schema == nil {
		return nil, schemaErrorf("section %q has no schema", name)
	}
	s := &Section{
		name:   name,
		schema: schema,
		values: make(map[string]any, len(schema.fields)),
	}
	if err := s.Reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// Name returns the section name within its Config.
func (s *Section) Name() string { return s.name }

// Schema returns the section declaration.
func (s *Section) Schema() *SectionSchema { return s.schema }

// Options returns option names in declaration order.
func (s *Section) Options() []string { return s.schema.Options() }

// Has reports whether name is a declared option.
func (s *Section) Has(name string) bool {
	_, ok := s.schema.index[name]
	return ok
}

// Entry returns the metadata of an option.
func (s *Section) Entry(name string) (*Entry, error) {
	e, ok := s.schema.Entry(name)
	if !ok {
		return nil, &OptionError{Section: s.name, Option: name}
	}
	return e, nil
}

// Get returns the current value of an option.
func (s *Section) Get(name string) (any, error) {
	if !s.Has(name) {
		return nil, &OptionError{Section: s.name, Option: name}
	}
	return s.values[name], nil
}

// Set stores a value of the option's declared type.
func (s *Section) Set(name string, v any) error {
	e, err := s.Entry(name)
	if err != nil {
		return err
	}
	if !assignable(v, e.Type()) {
		return errors.Wrapf(typeMismatch(v, e.Type(), nil), "option %s.%s", s.name, name)
	}
	s.values[name] = v
	return nil
}

// SetFromText parses text with the option's cast rules and stores the result.
func (s *Section) SetFromText(name, text string) error {
	return s.setCast(name, text)
}

// Cast converts raw with the option's cast rules without storing it.
func (s *Section) Cast(name string, raw any) (any, error) {
	e, err := s.Entry(name)
	if err != nil {
		return nil, err
	}
	v, err := e.Cast(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "option %s.%s", s.name, name)
	}
	return v, nil
}

func (s *Section) setCast(name string, raw any) error {
	v, err := s.Cast(name, raw)
	if err != nil {
		return err
	}
	s.values[name] = v
	return nil
}

// Reset restores the named options, or every option when none is given, to
// a freshly resolved default.
func (s *Section) Reset(names ...string) error {
	if len(names) == 0 {
		names = s.schema.Options()
	}
	for _, name := range names {
		e, err := s.Entry(name)
		if err != nil {
			return err
		}
		v, err := e.ResolveDefault()
		if err != nil {
			return errors.Wrapf(err, "resolving default of %s.%s", s.name, name)
		}
		s.values[name] = v
	}
	return nil
}

// Update applies values to the section. Keys that are not options are
// skipped, as are options excluded from files when inFileOnly is set.
// Values already of the declared type are stored as is; others are cast.
func (s *Section) Update(values map[string]any, inFileOnly bool) error {
	for _, name := range s.schema.Options() {
		raw, ok := values[name]
		if !ok {
			continue
		}
		e := s.schema.fields[s.schema.index[name]].Entry
		if inFileOnly && !e.InFile() {
			continue
		}
		if raw != nil && reflect.TypeOf(raw) == e.Type() {
			s.values[name] = raw
			continue
		}
		if err := s.setCast(name, raw); err != nil {
			return err
		}
	}
	return nil
}

// All iterates over option names and current values in declaration order.
func (s *Section) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, f := range s.schema.fields {
			if !yield(f.Name, s.values[f.Name]) {
				return
			}
		}
	}
}

// Value returns an option value with its static type.
func Value[T any](s *Section, name string) (T, error) {
	var zero T
	v, err := s.Get(name)
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	tv, ok := v.(T)
	if !ok {
		return zero, errors.Wrapf(typeMismatch(v, reflect.TypeFor[T](), nil), "option %s.%s", s.name, name)
	}
	return tv, nil
}
