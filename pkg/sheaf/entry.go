package sheaf

import (
	"reflect"
	"strconv"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
)

// Action selects how an option behaves on the command line.
type Action int

const (
	// ActionStore stores the (cast) argument value. This is the default.
	ActionStore Action = iota
	// ActionSwitch marks a boolean toggled with +name (true) and -name (false).
	ActionSwitch
	// ActionStoreTrue sets the option to true when the flag is present.
	ActionStoreTrue
	// ActionStoreFalse sets the option to false when the flag is present.
	ActionStoreFalse
	// ActionAppend accumulates every occurrence into a list.
	ActionAppend
	// ActionCount counts occurrences of a flag, as in -vvv.
	ActionCount
)

func (a Action) String() string {
	switch a {
	case ActionSwitch:
		return "switch"
	case ActionStoreTrue:
		return "store_true"
	case ActionStoreFalse:
		return "store_false"
	case ActionAppend:
		return "append"
	case ActionCount:
		return "count"
	default:
		return "store"
	}
}

type nargsKind int

const (
	nargsDefault nargsKind = iota
	nargsOptional
	nargsAny
	nargsExact
)

// Nargs is the number of command line values an option consumes.
type Nargs struct {
	kind nargsKind
	n    int
}

var (
	// NargsDefault consumes exactly one value (zero for boolean actions).
	NargsDefault = Nargs{}
	// NargsOptional consumes zero or one value ("?"); Const is used when absent.
	NargsOptional = Nargs{kind: nargsOptional}
	// NargsAny consumes zero or more values ("*").
	NargsAny = Nargs{kind: nargsAny}
)

// NargsExactly consumes exactly n values and produces a list.
func NargsExactly(n int) Nargs {
	return Nargs{kind: nargsExact, n: n}
}

// IsDefault reports whether no explicit arity was requested.
func (n Nargs) IsDefault() bool { return n.kind == nargsDefault }

// IsOptional reports the "?" arity.
func (n Nargs) IsOptional() bool { return n.kind == nargsOptional }

// IsAny reports the "*" arity.
func (n Nargs) IsAny() bool { return n.kind == nargsAny }

// Exactly returns the fixed arity, if any.
func (n Nargs) Exactly() (int, bool) {
	return n.n, n.kind == nargsExact
}

func (n Nargs) String() string {
	switch n.kind {
	case nargsOptional:
		return "?"
	case nargsAny:
		return "*"
	case nargsExact:
		return strconv.Itoa(n.n)
	default:
		return ""
	}
}

// CLIOptions holds command-line specific behaviour of an option.
type CLIOptions struct {
	Action Action
	Nargs  Nargs
	// Const is the value used when an optional-arity option is given
	// without a value.
	Const any
	// Type converts one command line token. Entry.Cast is used when nil.
	Type func(string) (any, error)
}

// ParseFunc converts an external representation (string or TOML value) into
// an option's typed value.
type ParseFunc func(raw any) (any, error)

// SerializeFunc converts a typed value into a TOML-representable value.
type SerializeFunc func(v any) (any, error)

// Entry is the immutable metadata of one configuration option.
type Entry struct {
	def       Default
	doc       string
	parseFn   ParseFunc
	serialize SerializeFunc
	inFile    bool
	inCLI     bool
	short     string
	cli       CLIOptions
	compRule  string
	hasComp   bool
}

// EntryOption configures an Entry at construction.
type EntryOption func(*Entry)

// Short sets the single character command line alias.
func Short(s string) EntryOption {
	return func(e *Entry) { e.short = s }
}

// NotInFile excludes the option from config files.
func NotInFile() EntryOption {
	return func(e *Entry) { e.inFile = false }
}

// NotInCLI excludes the option from the command line.
func NotInCLI() EntryOption {
	return func(e *Entry) { e.inCLI = false }
}

// WithParse sets the parse hook.
func WithParse(f ParseFunc) EntryOption {
	return func(e *Entry) { e.parseFn = f }
}

// ParseAs sets a typed parse hook.
func ParseAs[T any](f func(raw any) (T, error)) EntryOption {
	return WithParse(func(raw any) (any, error) { return f(raw) })
}

// WithSerialize sets the serialize hook.
func WithSerialize(f SerializeFunc) EntryOption {
	return func(e *Entry) { e.serialize = f }
}

// SerializeAs sets a typed serialize hook.
func SerializeAs[T any](f func(T) (any, error)) EntryOption {
	return WithSerialize(func(v any) (any, error) {
		tv, ok := v.(T)
		if !ok {
			return nil, typeMismatch(v, reflect.TypeFor[T](), nil)
		}
		return f(tv)
	})
}

// WithCLI sets command line behaviour.
func WithCLI(opts CLIOptions) EntryOption {
	return func(e *Entry) { e.cli = opts }
}

// CompRule sets the shell completion rule. An empty rule means the option
// takes a value but no candidates are known.
func CompRule(rule string) EntryOption {
	return func(e *Entry) {
		e.compRule = rule
		e.hasComp = true
	}
}

// NoCompletion disables value completion for the option.
func NoCompletion() EntryOption {
	return func(e *Entry) {
		e.compRule = ""
		e.hasComp = false
	}
}

// NewEntry declares an option. Exactly one default mechanism must be given
// through def; a textual default requires a parse hook and is checked here.
func NewEntry(def Default, doc string, opts ...EntryOption) (*Entry, error) {
	e := &Entry{
		def:     def,
		doc:     doc,
		inFile:  true,
		inCLI:   true,
		hasComp: true,
	}
	for _, opt := range opts {
		opt(e)
	}

	if def == nil || def.Type() == nil {
		return nil, schemaErrorf("entry %q: a default value, factory or textual default is required", doc)
	}
	if e.short != "" {
		r, size := utf8.DecodeRuneInString(e.short)
		if size != len(e.short) || r == '-' || r == '+' || r == utf8.RuneError {
			return nil, schemaErrorf("entry %q: short name %q must be a single character", doc, e.short)
		}
	}
	if n, ok := e.cli.Nargs.Exactly(); ok && n < 0 {
		return nil, schemaErrorf("entry %q: negative nargs %d", doc, n)
	}
	switch e.cli.Action {
	case ActionSwitch, ActionStoreTrue, ActionStoreFalse:
		if def.Type().Kind() != reflect.Bool {
			return nil, schemaErrorf("entry %q: %s action requires a bool option, got %s", doc, e.cli.Action, def.Type())
		}
	case ActionCount:
		if k := def.Type().Kind(); k < reflect.Int || k > reflect.Int64 {
			return nil, schemaErrorf("entry %q: count action requires an int option, got %s", doc, def.Type())
		}
	}
	if _, ok := def.(textDefault); ok {
		if e.parseFn == nil {
			return nil, schemaErrorf("entry %q: textual default needs a parse hook", doc)
		}
		if _, err := e.ResolveDefault(); err != nil {
			return nil, withKind(ErrSchema, err, "entry %q: invalid textual default", doc)
		}
	}
	return e, nil
}

// MustEntry is like NewEntry but panics on a schema error. It is meant for
// package-level schema declarations.
func MustEntry(def Default, doc string, opts ...EntryOption) *Entry {
	e, err := NewEntry(def, doc, opts...)
	if err != nil {
		panic(err)
	}
	return e
}

// Doc returns the help text.
func (e *Entry) Doc() string { return e.doc }

// Type returns the declared type of the option.
func (e *Entry) Type() reflect.Type { return e.def.Type() }

// InFile reports whether the option may be read from and written to files.
func (e *Entry) InFile() bool { return e.inFile }

// InCLI reports whether the option is a command line argument.
func (e *Entry) InCLI() bool { return e.inCLI }

// ShortName returns the single character alias, or "".
func (e *Entry) ShortName() string { return e.short }

// CLI returns the command line behaviour.
func (e *Entry) CLI() CLIOptions { return e.cli }

// CompletionRule returns the shell completion rule and whether completion is
// enabled at all.
func (e *Entry) CompletionRule() (string, bool) { return e.compRule, e.hasComp }

// TakesValue reports whether the option consumes command line values.
func (e *Entry) TakesValue() bool {
	switch e.cli.Action {
	case ActionSwitch, ActionStoreTrue, ActionStoreFalse, ActionCount:
		return false
	}
	if n, ok := e.cli.Nargs.Exactly(); ok && n == 0 {
		return false
	}
	return true
}

// ResolveDefault evaluates the default mechanism. Factories and textual
// defaults are evaluated on every call.
func (e *Entry) ResolveDefault() (any, error) {
	v, err := e.def.resolve(e)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Cast converts raw into the option's type: the parse hook if present,
// identity when raw already has the declared type, otherwise a best-effort
// conversion. Failures wrap ErrTypeMismatch.
func (e *Entry) Cast(raw any) (any, error) {
	if e.parseFn != nil {
		return e.parse(raw)
	}
	return convert(raw, e.Type())
}

// Serialize converts v into its file representation.
func (e *Entry) Serialize(v any) (any, error) {
	if e.serialize == nil {
		return v, nil
	}
	out, err := e.serialize(v)
	if err != nil {
		return nil, errors.Wrap(err, "serializing value")
	}
	return out, nil
}

func (e *Entry) parse(raw any) (any, error) {
	v, err := e.parseFn(raw)
	if err != nil {
		if errors.Is(err, ErrTypeMismatch) {
			return nil, err
		}
		return nil, typeMismatch(raw, e.Type(), err)
	}
	return v, nil
}
