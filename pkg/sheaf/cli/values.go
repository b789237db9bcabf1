package cli

import (
	"fmt"

	"github.com/thoreinstein/sheaf/pkg/sheaf"
)

// noValue is passed to Set for an option given without any value. NUL cannot
// appear in a process argument, so it never collides with user input.
const noValue = "\x00"

type valueKind int

const (
	kindSingle   valueKind = iota
	kindBool               // switch, store_true, store_false
	kindOptional           // nargs "?"
	kindMany               // nargs "*" or N
	kindAppend             // one value per occurrence, accumulated
	kindConst              // nargs 0
	kindCount              // occurrences
)

func kindOf(e *sheaf.Entry) valueKind {
	opts := e.CLI()
	switch opts.Action {
	case sheaf.ActionSwitch, sheaf.ActionStoreTrue, sheaf.ActionStoreFalse:
		return kindBool
	case sheaf.ActionAppend:
		return kindAppend
	case sheaf.ActionCount:
		return kindCount
	}
	if opts.Nargs.IsOptional() {
		return kindOptional
	}
	if opts.Nargs.IsAny() {
		return kindMany
	}
	if n, ok := opts.Nargs.Exactly(); ok {
		if n == 0 {
			return kindConst
		}
		return kindMany
	}
	return kindSingle
}

// optionValue is the pflag.Value of one binding. It validates tokens as they
// are parsed and keeps the typed result until it is applied to the section.
type optionValue struct {
	binding Binding
	kind    valueKind
	def     string

	set   bool
	val   any
	items []any
}

func newOptionValue(b Binding, current any) *optionValue {
	v := &optionValue{binding: b, kind: kindOf(b.Entry)}
	if current != nil {
		v.def = fmt.Sprint(current)
	}
	return v
}

func (v *optionValue) String() string {
	if !v.set {
		return v.def
	}
	if v.kind == kindMany || v.kind == kindAppend {
		return fmt.Sprint(v.items)
	}
	if v.val == nil {
		return ""
	}
	return fmt.Sprint(v.val)
}

func (v *optionValue) Type() string {
	switch v.kind {
	case kindBool:
		return "bool"
	case kindCount:
		return "count"
	}
	return v.binding.Entry.Type().String()
}

func (v *optionValue) Set(s string) error {
	opts := v.binding.Entry.CLI()
	switch v.kind {
	case kindOptional, kindConst:
		if s == noValue {
			v.val, v.set = opts.Const, true
			return nil
		}
	case kindMany:
		// Each occurrence replaces the previous one.
		if s == noValue {
			v.items, v.set = []any{}, true
			return nil
		}
		return v.appendItem(s)
	case kindAppend:
		return v.appendItem(s)
	case kindCount:
		n, _ := v.val.(int)
		v.val, v.set = n+1, true
		return nil
	}
	x, err := v.cast(s)
	if err != nil {
		return err
	}
	v.val, v.set = x, true
	return nil
}

func (v *optionValue) appendItem(s string) error {
	var x any = s
	if conv := v.binding.Entry.CLI().Type; conv != nil {
		var err error
		if x, err = conv(s); err != nil {
			return err
		}
	}
	v.items = append(v.items, x)
	v.set = true
	return nil
}

func (v *optionValue) cast(s string) (any, error) {
	if conv := v.binding.Entry.CLI().Type; conv != nil {
		return conv(s)
	}
	return v.binding.Entry.Cast(s)
}

// value returns what is written back to the owning section.
func (v *optionValue) value() any {
	if v.kind == kindMany || v.kind == kindAppend {
		return v.items
	}
	return v.val
}

func (v *optionValue) reset() {
	v.set, v.val, v.items = false, nil, nil
}
