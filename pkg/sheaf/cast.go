package sheaf

import (
	"encoding"
	"reflect"
	"time"

	"github.com/spf13/cast"
)

var (
	durationType        = reflect.TypeFor[time.Duration]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// convert is the fallback used when an entry has no parse hook.
func convert(raw any, typ reflect.Type) (any, error) {
	if raw == nil {
		if nilable(typ) {
			return reflect.Zero(typ).Interface(), nil
		}
		return nil, typeMismatch(raw, typ, nil)
	}

	rv := reflect.ValueOf(raw)
	if rv.Type() == typ {
		return raw, nil
	}
	if typ.Kind() == reflect.Interface && rv.Type().Implements(typ) {
		return raw, nil
	}

	if typ == durationType {
		d, err := cast.ToDurationE(raw)
		if err != nil {
			return nil, typeMismatch(raw, typ, err)
		}
		return d, nil
	}

	if s, ok := raw.(string); ok && reflect.PointerTo(typ).Implements(textUnmarshalerType) {
		ptr := reflect.New(typ)
		if err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
			return nil, typeMismatch(raw, typ, err)
		}
		return ptr.Elem().Interface(), nil
	}

	var (
		v   any
		err error
	)
	switch typ.Kind() {
	case reflect.Bool:
		v, err = cast.ToBoolE(raw)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		var i int64
		if i, err = cast.ToInt64E(raw); err == nil && reflect.Zero(typ).OverflowInt(i) {
			return nil, typeMismatch(raw, typ, nil)
		}
		v = i
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		var u uint64
		if u, err = cast.ToUint64E(raw); err == nil && reflect.Zero(typ).OverflowUint(u) {
			return nil, typeMismatch(raw, typ, nil)
		}
		v = u
	case reflect.Float32, reflect.Float64:
		v, err = cast.ToFloat64E(raw)
	case reflect.String:
		v, err = cast.ToStringE(raw)
	case reflect.Slice:
		return convertSlice(rv, typ)
	case reflect.Map:
		return convertMap(rv, typ)
	case reflect.Pointer:
		inner, err := convert(raw, typ.Elem())
		if err != nil {
			return nil, err
		}
		ptr := reflect.New(typ.Elem())
		ptr.Elem().Set(valueOf(inner, typ.Elem()))
		return ptr.Interface(), nil
	default:
		if rv.Kind() == typ.Kind() && rv.Type().ConvertibleTo(typ) {
			return rv.Convert(typ).Interface(), nil
		}
		return nil, typeMismatch(raw, typ, nil)
	}
	if err != nil {
		return nil, typeMismatch(raw, typ, err)
	}
	return reflect.ValueOf(v).Convert(typ).Interface(), nil
}

func convertSlice(rv reflect.Value, typ reflect.Type) (any, error) {
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, typeMismatch(rv.Interface(), typ, nil)
	}
	out := reflect.MakeSlice(typ, rv.Len(), rv.Len())
	for i := range rv.Len() {
		elem, err := convert(rv.Index(i).Interface(), typ.Elem())
		if err != nil {
			return nil, err
		}
		out.Index(i).Set(valueOf(elem, typ.Elem()))
	}
	return out.Interface(), nil
}

func convertMap(rv reflect.Value, typ reflect.Type) (any, error) {
	if rv.Kind() != reflect.Map {
		return nil, typeMismatch(rv.Interface(), typ, nil)
	}
	out := reflect.MakeMapWithSize(typ, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k, err := convert(iter.Key().Interface(), typ.Key())
		if err != nil {
			return nil, err
		}
		v, err := convert(iter.Value().Interface(), typ.Elem())
		if err != nil {
			return nil, err
		}
		out.SetMapIndex(valueOf(k, typ.Key()), valueOf(v, typ.Elem()))
	}
	return out.Interface(), nil
}

func nilable(typ reflect.Type) bool {
	switch typ.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface, reflect.Func, reflect.Chan:
		return true
	}
	return false
}

func valueOf(v any, typ reflect.Type) reflect.Value {
	if v == nil {
		return reflect.Zero(typ)
	}
	return reflect.ValueOf(v)
}

// assignable reports whether v can be stored as a value of typ.
func assignable(v any, typ reflect.Type) bool {
	if v == nil {
		return nilable(typ)
	}
	return reflect.TypeOf(v).AssignableTo(typ)
}
