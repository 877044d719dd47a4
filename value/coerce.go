package value

import (
	"encoding"
	"fmt"
	"math/big"
	"reflect"
	"strconv"
)

var (
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	stringerType      = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()
)

// Coerce returns the raw byte-string form of v. It is used both for the
// byte-string fallback and for dictionary keys.
//
// Integers become their decimal text and are never kept as numbers, so a key
// like 10 sorts as the bytes "10". Booleans become "1" or "", nil becomes "".
// Values with a text form (encoding.TextMarshaler, then fmt.Stringer) use it.
// Values with no sensible byte form (channels, functions) become their Go type
// name, which keeps the output deterministic. So does a pointer chain longer
// than DefaultMaxIndirections.
func Coerce(v any) []byte {
	b, err := coerce(v, DefaultMaxIndirections)
	if err != nil {
		return []byte(reflect.TypeOf(v).String())
	}

	return b
}

func coerce(v any, limit int) ([]byte, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(x), nil
	case []byte:
		return x, nil
	case ByteString:
		return x, nil
	case Integer:
		return []byte(x.String()), nil
	case *big.Int:
		return []byte(BigInt(x).String()), nil
	}

	return coerceReflect(reflect.ValueOf(v), limit)
}

// coerceReflect follows at most limit pointers and interfaces from rv.
func coerceReflect(rv reflect.Value, limit int) ([]byte, error) {
	for hops := 0; ; hops++ {
		if !rv.IsValid() {
			return nil, nil
		}
		if b, ok := textOf(rv); ok {
			return b, nil
		}

		switch rv.Kind() { //nolint:exhaustive
		case reflect.Pointer, reflect.Interface:
		default:
			return coerceDirect(rv), nil
		}

		if rv.IsNil() {
			return nil, nil
		}
		if hops >= limit {
			return nil, indirectionError(limit)
		}
		rv = rv.Elem()
	}
}

// coerceDirect coerces a value that is neither a pointer nor an interface.
func coerceDirect(rv reflect.Value) []byte {
	switch rv.Kind() { //nolint:exhaustive
	case reflect.String:
		return []byte(rv.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.AppendInt(nil, rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.AppendUint(nil, rv.Uint(), 10)
	case reflect.Bool:
		if rv.Bool() {
			return []byte("1")
		}

		return nil
	case reflect.Float32:
		return strconv.AppendFloat(nil, rv.Float(), 'g', -1, 32)
	case reflect.Float64:
		return strconv.AppendFloat(nil, rv.Float(), 'g', -1, 64)
	case reflect.Complex64:
		return []byte(strconv.FormatComplex(rv.Complex(), 'g', -1, 64))
	case reflect.Complex128:
		return []byte(strconv.FormatComplex(rv.Complex(), 'g', -1, 128))
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return rv.Bytes()
		}
	case reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return arrayBytes(rv)
		}
	}

	if rv.CanInterface() {
		switch rv.Kind() { //nolint:exhaustive
		case reflect.Chan, reflect.Func, reflect.UnsafePointer:
			return []byte(rv.Type().String())
		}

		return []byte(fmt.Sprint(rv.Interface()))
	}

	return []byte(rv.Type().String())
}

// textOf returns the text form of rv if it (or a pointer to it) implements
// encoding.TextMarshaler or fmt.Stringer. A failing MarshalText falls back
// to the Stringer, then to the caller's own coercion.
func textOf(rv reflect.Value) ([]byte, bool) {
	candidates := [2]reflect.Value{rv}
	if rv.Kind() != reflect.Pointer && rv.CanAddr() {
		candidates[1] = rv.Addr()
	}

	for _, c := range candidates {
		if !c.IsValid() || !c.CanInterface() {
			continue
		}
		if c.Kind() == reflect.Pointer && c.IsNil() {
			continue
		}

		if c.Type().Implements(textMarshalerType) {
			if tm, ok := c.Interface().(encoding.TextMarshaler); ok {
				if b, err := tm.MarshalText(); err == nil {
					return b, true
				}
			}
		}
		if c.Type().Implements(stringerType) {
			if s, ok := c.Interface().(fmt.Stringer); ok {
				return []byte(s.String()), true
			}
		}
	}

	return nil, false
}

func hasText(rv reflect.Value) bool {
	t := rv.Type()
	if t.Implements(textMarshalerType) || t.Implements(stringerType) {
		return true
	}
	if t.Kind() != reflect.Pointer && rv.CanAddr() {
		pt := reflect.PointerTo(t)
		return pt.Implements(textMarshalerType) || pt.Implements(stringerType)
	}

	return false
}

func arrayBytes(rv reflect.Value) []byte {
	out := make([]byte, rv.Len())
	for i := range out {
		out[i] = byte(rv.Index(i).Uint())
	}

	return out
}
