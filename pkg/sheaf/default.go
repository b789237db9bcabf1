package sheaf

import (
	"reflect"
)

// Default is the mechanism supplying an option's default value. It is one of
// a literal ([Val]), a factory ([Factory]) or a textual default parsed by the
// entry's parse hook ([Text]). The declared type of the option is the type
// parameter given to the constructor.
type Default interface {
	// Type is the declared static type of the option.
	Type() reflect.Type

	resolve(e *Entry) (any, error)
}

type literalDefault struct {
	typ reflect.Type
	val any
}

func (d literalDefault) Type() reflect.Type { return d.typ }

func (d literalDefault) resolve(*Entry) (any, error) { return d.val, nil }

type factoryDefault struct {
	typ  reflect.Type
	make func() any
}

func (d factoryDefault) Type() reflect.Type { return d.typ }

func (d factoryDefault) resolve(*Entry) (any, error) { return d.make(), nil }

type textDefault struct {
	typ  reflect.Type
	text string
}

func (d textDefault) Type() reflect.Type { return d.typ }

func (d textDefault) resolve(e *Entry) (any, error) {
	return e.parse(d.text)
}

// Val declares a literal default. Use [Factory] or [Text] when the value is
// mutable (slices, maps, pointers) so Section instances never share it.
func Val[T any](v T) Default {
	return literalDefault{typ: reflect.TypeFor[T](), val: v}
}

// Factory declares a default produced by calling f. It is invoked once per
// Section instance and on every reset.
func Factory[T any](f func() T) Default {
	if f == nil {
		return nil
	}
	return factoryDefault{typ: reflect.TypeFor[T](), make: func() any { return f() }}
}

// Text declares a default given in textual form. The entry must have a parse
// hook; the text is parsed on every resolution.
func Text[T any](s string) Default {
	return textDefault{typ: reflect.TypeFor[T](), text: s}
}
