package sheaf

import (
	"reflect"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

// CastTo returns a conversion function using the default cast rules, handy
// as the Inner function of container entries.
func CastTo[T any]() func(raw any) (T, error) {
	typ := reflect.TypeFor[T]()
	return func(raw any) (T, error) {
		var zero T
		v, err := convert(raw, typ)
		if err != nil {
			return zero, err
		}
		if v == nil {
			return zero, nil
		}
		return v.(T), nil
	}
}

// ListCLI selects how a list option is exposed on the command line.
type ListCLI string

const (
	// ListCLIMany accepts several values: --opt a b c.
	ListCLIMany ListCLI = "list"
	// ListCLIString accepts one separated string: --opt "a,b,c".
	ListCLIString ListCLI = "str"
	// ListCLINone keeps the option off the command line.
	ListCLINone ListCLI = ""
)

// ListEntry describes a []T option. It parses TOML arrays, slices and
// separated strings, feeding every element to Inner.
type ListEntry[T any] struct {
	// Inner parses one element.
	Inner func(raw any) (T, error)
	// InnerSerialize converts one element for files; identity when nil.
	InnerSerialize func(T) (any, error)
	// Sep splits strings; "" splits on whitespace.
	Sep string
	// NoString rejects string input.
	NoString bool
}

// NewListEntry returns a ListEntry splitting strings on commas.
func NewListEntry[T any](inner func(raw any) (T, error)) ListEntry[T] {
	return ListEntry[T]{Inner: inner, Sep: ","}
}

// Wrapping builds a list of lists whose elements are parsed by inner.
// Separators of nested entries must differ.
func Wrapping[T any](inner ListEntry[T], sep string) ListEntry[[]T] {
	return ListEntry[[]T]{
		Inner:          inner.Parse,
		InnerSerialize: inner.Serialize,
		Sep:            sep,
	}
}

// Parse converts raw into a []T.
func (l ListEntry[T]) Parse(raw any) ([]T, error) {
	if s, ok := raw.(string); ok {
		if l.NoString {
			return nil, errors.Wrap(ErrTypeMismatch, "cannot parse a string into a list without separator")
		}
		raw = l.split(s)
	}
	rv := reflect.ValueOf(raw)
	if raw == nil || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, errors.Wrapf(ErrTypeMismatch, "expected a string or a list, got %T", raw)
	}
	out := make([]T, 0, rv.Len())
	for i := range rv.Len() {
		v, err := l.Inner(rv.Index(i).Interface())
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
		out = append(out, v)
	}
	return out, nil
}

func (l ListEntry[T]) split(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	if l.Sep == "" {
		return strings.Fields(s)
	}
	parts := strings.Split(s, l.Sep)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// Serialize converts a []T into a TOML array.
func (l ListEntry[T]) Serialize(v []T) (any, error) {
	if l.InnerSerialize == nil {
		return v, nil
	}
	out := make([]any, len(v))
	for i, elem := range v {
		sv, err := l.InnerSerialize(elem)
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
		out[i] = sv
	}
	return out, nil
}

// Entry declares the option. The default is copied for every Section.
func (l ListEntry[T]) Entry(def []T, doc string, cliAs ListCLI, opts ...EntryOption) (*Entry, error) {
	base := []EntryOption{ParseAs(l.Parse), SerializeAs(l.Serialize)}
	switch cliAs {
	case ListCLIMany:
		base = append(base, WithCLI(CLIOptions{Nargs: NargsAny}))
	case ListCLIString:
		base = append(base, WithCLI(CLIOptions{Nargs: NargsOptional, Const: ""}))
	case ListCLINone:
		base = append(base, NotInCLI())
	default:
		return nil, schemaErrorf("list entry %q: command line mode must be %q, %q or empty; got %q",
			doc, ListCLIMany, ListCLIString, cliAs)
	}
	def = slices.Clone(def)
	factory := Factory(func() []T {
		out := slices.Clone(def)
		if out == nil {
			out = []T{}
		}
		return out
	})
	return NewEntry(factory, doc, append(base, opts...)...)
}

// OptionalCLI selects how an optional option is exposed on the command line.
type OptionalCLI string

const (
	// OptionalCLIOptional accepts --opt without a value, meaning nil.
	OptionalCLIOptional OptionalCLI = "optional"
	// OptionalCLIMandatory requires a value: --opt 42.
	OptionalCLIMandatory OptionalCLI = "mandatory"
	// OptionalCLINone keeps the option off the command line.
	OptionalCLINone OptionalCLI = ""
)

// OptionalEntry describes a *T option where nil means "not set".
type OptionalEntry[T any] struct {
	Inner          func(raw any) (T, error)
	InnerSerialize func(T) (any, error)
	// NoneValue is the file representation of nil.
	NoneValue any
}

// NewOptionalEntry returns an OptionalEntry writing nil as "".
func NewOptionalEntry[T any](inner func(raw any) (T, error)) OptionalEntry[T] {
	return OptionalEntry[T]{Inner: inner, NoneValue: ""}
}

// Parse converts raw into a *T; nil and NoneValue yield nil.
func (o OptionalEntry[T]) Parse(raw any) (*T, error) {
	if raw == nil || reflect.DeepEqual(raw, o.NoneValue) {
		return nil, nil
	}
	if p, ok := raw.(*T); ok {
		return p, nil
	}
	v, err := o.Inner(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Serialize converts a *T into its file representation.
func (o OptionalEntry[T]) Serialize(v *T) (any, error) {
	if v == nil {
		return o.NoneValue, nil
	}
	if o.InnerSerialize != nil {
		return o.InnerSerialize(*v)
	}
	return *v, nil
}

// Entry declares the option. Each Section gets its own copy of def.
func (o OptionalEntry[T]) Entry(def *T, doc string, cliAs OptionalCLI, opts ...EntryOption) (*Entry, error) {
	base := []EntryOption{
		ParseAs(o.Parse),
		WithSerialize(func(v any) (any, error) {
			p, _ := v.(*T)
			return o.Serialize(p)
		}),
	}
	switch cliAs {
	case OptionalCLIOptional:
		base = append(base, WithCLI(CLIOptions{Nargs: NargsOptional, Const: nil}))
	case OptionalCLIMandatory:
	case OptionalCLINone:
		base = append(base, NotInCLI())
	default:
		return nil, schemaErrorf("optional entry %q: command line mode must be %q, %q or empty; got %q",
			doc, OptionalCLIOptional, OptionalCLIMandatory, cliAs)
	}
	var val T
	hasDef := def != nil
	if hasDef {
		val = *def
	}
	factory := Factory(func() *T {
		if !hasDef {
			return nil
		}
		v := val
		return &v
	})
	return NewEntry(factory, doc, append(base, opts...)...)
}
