package sheaf

import (
	"reflect"

	"github.com/cockroachdb/errors"
)

// Key is a statically typed accessor for one option, declared alongside the
// schema:
//
//	var Verbose = sheaf.Key[bool]{Section: "log", Option: "verbose"}
//
//	if Verbose.Get(cfg) { ... }
type Key[T any] struct {
	Section string
	Option  string
}

// Lookup returns the option value.
func (k Key[T]) Lookup(c *Config) (T, error) {
	var zero T
	sec, err := c.Section(k.Section)
	if err != nil {
		return zero, err
	}
	return Value[T](sec, k.Option)
}

// Get returns the option value and panics if the key does not match the
// schema. Run Schema.Check on declared keys to rule that out up front.
func (k Key[T]) Get(c *Config) T {
	v, err := k.Lookup(c)
	if err != nil {
		panic(err)
	}
	return v
}

// Set stores the option value.
func (k Key[T]) Set(c *Config, v T) error {
	sec, err := c.Section(k.Section)
	if err != nil {
		return err
	}
	return sec.Set(k.Option, v)
}

// String returns "section.option".
func (k Key[T]) String() string {
	return k.Section + "." + k.Option
}

func (k Key[T]) check(s *Schema) error {
	sec, err := s.Section(k.Section)
	if err != nil {
		return err
	}
	e, ok := sec.Entry(k.Option)
	if !ok {
		return &OptionError{Section: k.Section, Option: k.Option}
	}
	if want := reflect.TypeFor[T](); e.Type() != want {
		return errors.Wrapf(ErrTypeMismatch, "key %s: declared %s, accessed as %s", k, e.Type(), want)
	}
	return nil
}

// CheckableKey is implemented by every Key.
type CheckableKey interface {
	check(s *Schema) error
}

// Check verifies that keys name declared options of matching types.
func (s *Schema) Check(keys ...CheckableKey) error {
	for _, k := range keys {
		if err := k.check(s); err != nil {
			return err
		}
	}
	return nil
}
