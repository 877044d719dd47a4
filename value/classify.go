package value

import (
	"bytes"
	"cmp"
	"fmt"
	"math/big"
	"reflect"
	"slices"

	"github.com/arloliu/bencode/errs"
)

// DefaultMaxIndirections bounds the chain of pointers and interfaces
// followed from one value when MaxIndirections is not set.
const DefaultMaxIndirections = 512

// Ranger is implemented by enumerable key/value containers such as *sync.Map.
type Ranger interface {
	Range(f func(key, value any) bool)
}

// Classifier resolves the shape of Go values. The zero value applies the
// default rules; use Classify unless a rule needs changing.
type Classifier struct {
	// EmptyMapAsDict classifies empty native maps as dictionaries. By default
	// an empty container is vacuously sequential and becomes a list.
	EmptyMapAsDict bool

	// MaxIndirections bounds the chain of pointers and interfaces followed
	// to reach a value. Only a cycle such as x = &x exceeds it in practice.
	// Zero means DefaultMaxIndirections.
	MaxIndirections int
}

// Classify classifies v with the default rules. See Classifier.Classify.
func Classify(v any) Value {
	return Classifier{}.Classify(v)
}

func (c Classifier) indirectionLimit() int {
	if c.MaxIndirections > 0 {
		return c.MaxIndirections
	}

	return DefaultMaxIndirections
}

func indirectionError(limit int) error {
	return fmt.Errorf("%w: more than %d pointer indirections", errs.ErrRecursionLimitExceeded, limit)
}

// Classify maps v to exactly one variant. The first matching rule wins:
//
//  1. Integers of any Go integer kind, *big.Int and Integer.
//  2. Native containers. Slices and arrays are lists. A map is a list when
//     its keys are exactly the integers 0..n-1 (an empty map qualifies
//     vacuously), otherwise a dictionary.
//  3. ForcedList is kept as is and always encodes as a list.
//  4. Other enumerables are dictionaries: Ranger implementations and
//     range-over-func iterators. Single-value iterators get positional keys.
//  5. Structs without a text form are dictionaries of their exported fields.
//  6. Everything else is a byte string, see Coerce.
//
// Byte slices and byte arrays are byte strings, not lists of integers.
// Classification is total and never looks deeper than the top level of v.
// A pointer chain longer than MaxIndirections classifies as the byte string
// of its type name; Resolve reports it as an error instead.
func (c Classifier) Classify(v any) Value {
	val, err := c.Resolve(v)
	if err != nil {
		return ByteString(reflect.TypeOf(v).String())
	}

	return val
}

// Resolve is Classify for callers that must not encode a cyclic pointer
// chain. It fails only with errs.ErrRecursionLimitExceeded, when reaching
// a value or one of its dictionary keys takes more than MaxIndirections
// pointer or interface hops.
func (c Classifier) Resolve(v any) (Value, error) {
	switch x := v.(type) {
	case Value:
		return x, nil
	case int:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case int32:
		return Int(int64(x)), nil
	case uint:
		return Uint(uint64(x)), nil
	case uint64:
		return Uint(x), nil
	case *big.Int:
		return BigInt(x), nil
	case string:
		return ByteString(x), nil
	case []byte:
		return ByteString(x), nil
	case []any:
		return List(x), nil
	case map[string]any:
		if len(x) == 0 && !c.EmptyMapAsDict {
			return List(nil), nil
		}
		pairs := make([]Pair, 0, len(x))
		for k, val := range x {
			pairs = append(pairs, Pair{Key: []byte(k), Value: val})
		}

		return Dict{Pairs: pairs, unordered: true}, nil
	case Ranger:
		return c.rangerDict(x)
	case nil:
		return ByteString(nil), nil
	}

	return c.classifyReflect(reflect.ValueOf(v), 0)
}

func (c Classifier) classifyReflect(rv reflect.Value, hops int) (Value, error) {
	switch rv.Kind() { //nolint:exhaustive
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Uint(rv.Uint()), nil
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return ByteString(rv.Bytes()), nil
		}
		if rv.IsNil() {
			return List(nil), nil
		}

		return List(sliceElements(rv)), nil
	case reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return ByteString(arrayBytes(rv)), nil
		}

		return List(sliceElements(rv)), nil
	case reflect.Map:
		return c.classifyMap(rv)
	case reflect.Func:
		if rv.IsNil() {
			return ByteString(nil), nil
		}
		if d, ok, err := c.iteratorDict(rv); ok || err != nil {
			return d, err
		}
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return ByteString(nil), nil
		}
		if r, ok := asRanger(rv); ok {
			return c.rangerDict(r)
		}
		if rv.Kind() == reflect.Pointer && rv.Elem().Kind() == reflect.Struct && hasText(rv) {
			return c.byteString(rv)
		}
		if hops >= c.indirectionLimit() {
			return nil, indirectionError(c.indirectionLimit())
		}

		return c.classifyReflect(rv.Elem(), hops+1)
	case reflect.Struct:
		if hasText(rv) {
			return c.byteString(rv)
		}

		return Dict{Pairs: structPairs(rv)}, nil
	}

	return c.byteString(rv)
}

func (c Classifier) byteString(rv reflect.Value) (Value, error) {
	b, err := coerceReflect(rv, c.indirectionLimit())
	if err != nil {
		return nil, err
	}

	return ByteString(b), nil
}

func (c Classifier) classifyMap(rv reflect.Value) (Value, error) {
	n := rv.Len()
	if n == 0 {
		if c.EmptyMapAsDict {
			return Dict{}, nil
		}

		return List(nil), nil
	}

	if list, ok := sequentialMap(rv); ok {
		return list, nil
	}

	pairs := make([]Pair, 0, n)
	iter := rv.MapRange()
	for iter.Next() {
		key, err := coerceReflect(iter.Key(), c.indirectionLimit())
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, Pair{Key: key, Value: iter.Value().Interface()})
	}

	return Dict{Pairs: pairs, unordered: true}, nil
}

// sequentialMap returns the map's values as a list when its keys are exactly
// the integers 0..n-1.
func sequentialMap(rv reflect.Value) (List, bool) {
	n := rv.Len()
	keyKind := rv.Type().Key().Kind()
	if !isIntegerKind(keyKind) && keyKind != reflect.Interface {
		return nil, false
	}

	list := make(List, n)
	seen := make([]bool, n)

	iter := rv.MapRange()
	for iter.Next() {
		idx, ok := mapIndex(iter.Key(), n)
		if !ok || seen[idx] {
			return nil, false
		}
		seen[idx] = true
		list[idx] = iter.Value().Interface()
	}

	return list, true
}

// mapIndex returns k as an index in [0, n) when k holds an integer.
func mapIndex(k reflect.Value, n int) (int, bool) {
	if k.Kind() == reflect.Interface {
		if k.IsNil() {
			return 0, false
		}
		k = k.Elem()
	}

	switch k.Kind() { //nolint:exhaustive
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := k.Int()
		if i < 0 || i >= int64(n) {
			return 0, false
		}

		return int(i), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := k.Uint()
		if u >= uint64(n) {
			return 0, false
		}

		return int(u), true //nolint:gosec
	default:
		return 0, false
	}
}

func isIntegerKind(k reflect.Kind) bool {
	switch k { //nolint:exhaustive
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	default:
		return false
	}
}

func sliceElements(rv reflect.Value) []any {
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}

	return out
}

func asRanger(rv reflect.Value) (Ranger, bool) {
	if !rv.CanInterface() {
		return nil, false
	}
	r, ok := rv.Interface().(Ranger)

	return r, ok
}

func (c Classifier) rangerDict(r Ranger) (Dict, error) {
	var (
		pairs []Pair
		err   error
	)
	r.Range(func(k, v any) bool {
		var key []byte
		key, err = coerce(k, c.indirectionLimit())
		if err != nil {
			return false
		}
		pairs = append(pairs, Pair{Key: key, Value: v})

		return true
	})
	if err != nil {
		return Dict{}, err
	}

	return Dict{Pairs: pairs, unordered: true}, nil
}

// iteratorShape reports whether t is func(yield func(...) bool) with one or
// two yielded values.
func iteratorShape(t reflect.Type) (reflect.Type, bool) {
	if t.NumIn() != 1 || t.NumOut() != 0 {
		return nil, false
	}

	yield := t.In(0)
	if yield.Kind() != reflect.Func || yield.NumOut() != 1 || yield.Out(0).Kind() != reflect.Bool {
		return nil, false
	}
	if yield.NumIn() != 1 && yield.NumIn() != 2 {
		return nil, false
	}

	return yield, true
}

// iterate calls the iterator held in rv and hands every yielded key/value to
// fn. Single-value iterators get their position as key.
func iterate(rv reflect.Value, fn func(key, val reflect.Value)) bool {
	if rv.IsNil() || !rv.CanInterface() {
		return false
	}

	yieldType, ok := iteratorShape(rv.Type())
	if !ok {
		return false
	}

	keepGoing := reflect.ValueOf(true).Convert(yieldType.Out(0))
	pos := 0
	yield := reflect.MakeFunc(yieldType, func(args []reflect.Value) []reflect.Value {
		if len(args) == 1 {
			fn(reflect.ValueOf(pos), args[0])
			pos++
		} else {
			fn(args[0], args[1])
		}

		return []reflect.Value{keepGoing}
	})
	rv.Call([]reflect.Value{yield})

	return true
}

// iteratorDict collects the pairs of an iterator. ok is false when rv is
// not an iterator.
func (c Classifier) iteratorDict(rv reflect.Value) (Value, bool, error) {
	var (
		pairs []Pair
		err   error
	)
	ok := iterate(rv, func(k, v reflect.Value) {
		if err != nil {
			return
		}
		var key []byte
		key, err = coerceReflect(k, c.indirectionLimit())
		pairs = append(pairs, Pair{Key: key, Value: interfaceOf(v)})
	})
	if !ok {
		return nil, false, nil
	}
	if err != nil {
		return nil, true, err
	}

	return Dict{Pairs: pairs}, true, nil
}

func interfaceOf(rv reflect.Value) any {
	if !rv.IsValid() || !rv.CanInterface() {
		return nil
	}

	return rv.Interface()
}

// Elements returns the elements of v in native order, as used by ForcedList.
//
// Slices, arrays and lists keep their order; dictionaries keep pair order;
// structs use field declaration order and iterators yield order. Maps have
// no native order in Go, so their values are taken in ascending key order:
// numeric for integer keys, byte order otherwise. A scalar becomes a
// one-element list and nil an empty one. A cyclic pointer chain yields no
// elements; Classifier.Elements reports it as an error.
func Elements(v any) []any {
	out, err := Classifier{}.Elements(v)
	if err != nil {
		return nil
	}

	return out
}

// Elements is the package-level Elements bounded by MaxIndirections. It
// fails only with errs.ErrRecursionLimitExceeded.
func (c Classifier) Elements(v any) ([]any, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case List:
		return x, nil
	case []any:
		return x, nil
	case Dict:
		out := make([]any, len(x.Pairs))
		for i, p := range x.Pairs {
			out[i] = p.Value
		}

		return out, nil
	case ForcedList:
		return c.Elements(x.Of)
	case Ranger:
		return c.rangerValues(x)
	}

	return c.elementsReflect(reflect.ValueOf(v), 0)
}

func (c Classifier) elementsReflect(rv reflect.Value, hops int) ([]any, error) {
	switch rv.Kind() { //nolint:exhaustive
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return nil, nil
		}

		return sliceElements(rv), nil
	case reflect.Map:
		return c.mapValuesInKeyOrder(rv)
	case reflect.Struct:
		return structValues(rv), nil
	case reflect.Func:
		var out []any
		if iterate(rv, func(_, v reflect.Value) { out = append(out, interfaceOf(v)) }) {
			return out, nil
		}
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
		if r, ok := asRanger(rv); ok {
			return c.rangerValues(r)
		}
		if hops >= c.indirectionLimit() {
			return nil, indirectionError(c.indirectionLimit())
		}

		return c.elementsReflect(rv.Elem(), hops+1)
	}

	return []any{interfaceOf(rv)}, nil
}

func (c Classifier) rangerValues(r Ranger) ([]any, error) {
	d, err := c.rangerDict(r)
	if err != nil {
		return nil, err
	}

	return sortedValues(d.Pairs, nil), nil
}

func (c Classifier) mapValuesInKeyOrder(rv reflect.Value) ([]any, error) {
	pairs := make([]Pair, 0, rv.Len())
	keys := make([]reflect.Value, 0, rv.Len())

	iter := rv.MapRange()
	for iter.Next() {
		key, err := coerceReflect(iter.Key(), c.indirectionLimit())
		if err != nil {
			return nil, err
		}
		keys = append(keys, iter.Key())
		pairs = append(pairs, Pair{Key: key, Value: iter.Value().Interface()})
	}

	var byNumber func(a, b int) int
	switch kind := rv.Type().Key().Kind(); {
	case kind >= reflect.Int && kind <= reflect.Int64:
		byNumber = func(a, b int) int { return cmp.Compare(keys[a].Int(), keys[b].Int()) }
	case isIntegerKind(kind):
		byNumber = func(a, b int) int { return cmp.Compare(keys[a].Uint(), keys[b].Uint()) }
	}

	return sortedValues(pairs, byNumber), nil
}

// sortedValues orders pairs with byNumber when given, by key bytes
// otherwise, and returns their values.
func sortedValues(pairs []Pair, byNumber func(a, b int) int) []any {
	idx := make([]int, len(pairs))
	for i := range idx {
		idx[i] = i
	}

	slices.SortStableFunc(idx, func(a, b int) int {
		if byNumber != nil {
			return byNumber(a, b)
		}

		return bytes.Compare(pairs[a].Key, pairs[b].Key)
	})

	out := make([]any, len(pairs))
	for i, j := range idx {
		out[i] = pairs[j].Value
	}

	return out
}
