package value

import (
	"reflect"
	"strings"
	"sync"
)

// TagName is the struct tag consulted for dictionary keys.
const TagName = "bencode"

type field struct {
	name      string
	index     []int
	omitEmpty bool
}

var fieldCache sync.Map // reflect.Type -> []field

// cachedFields returns the encodable fields of struct type t in declaration
// order. Untagged embedded structs are flattened into their parent.
func cachedFields(t reflect.Type) []field {
	if f, ok := fieldCache.Load(t); ok {
		return f.([]field) //nolint:forcetypeassert
	}

	f, _ := fieldCache.LoadOrStore(t, typeFields(t, nil, map[reflect.Type]bool{}))

	return f.([]field) //nolint:forcetypeassert
}

func typeFields(t reflect.Type, parent []int, visiting map[reflect.Type]bool) []field {
	visiting[t] = true
	defer delete(visiting, t)

	fields := make([]field, 0, t.NumField())

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)

		tag := sf.Tag.Get(TagName)
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")

		index := make([]int, len(parent)+1)
		copy(index, parent)
		index[len(parent)] = i

		if sf.Anonymous && name == "" {
			ft := sf.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				if visiting[ft] {
					continue
				}
				fields = append(fields, typeFields(ft, index, visiting)...)
				continue
			}
		}

		if !sf.IsExported() {
			continue
		}

		if name == "" {
			name = sf.Name
		}

		fields = append(fields, field{
			name:      name,
			index:     index,
			omitEmpty: hasOption(opts, "omitempty"),
		})
	}

	return fields
}

func hasOption(opts, want string) bool {
	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")
		if opt == want {
			return true
		}
	}

	return false
}

// fieldValue walks index from rv, stopping at nil embedded pointers.
func fieldValue(rv reflect.Value, index []int) (reflect.Value, bool) {
	for i, x := range index {
		if i > 0 && rv.Kind() == reflect.Pointer {
			if rv.IsNil() {
				return reflect.Value{}, false
			}
			rv = rv.Elem()
		}
		rv = rv.Field(x)
	}

	return rv, true
}

func isEmptyValue(rv reflect.Value) bool {
	switch rv.Kind() { //nolint:exhaustive
	case reflect.Slice, reflect.Map, reflect.Array, reflect.String:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return rv.IsZero()
	}
}

// structPairs returns the fields of a struct value as dictionary pairs.
func structPairs(rv reflect.Value) []Pair {
	fields := cachedFields(rv.Type())
	pairs := make([]Pair, 0, len(fields))

	for _, f := range fields {
		fv, ok := fieldValue(rv, f.index)
		if !ok || !fv.CanInterface() {
			continue
		}
		if f.omitEmpty && isEmptyValue(fv) {
			continue
		}
		pairs = append(pairs, Pair{Key: []byte(f.name), Value: fv.Interface()})
	}

	return pairs
}

// structValues returns the field values of a struct in declaration order.
func structValues(rv reflect.Value) []any {
	pairs := structPairs(rv)
	out := make([]any, len(pairs))
	for i, p := range pairs {
		out[i] = p.Value
	}

	return out
}
