// Package value defines the closed set of encodable Bencode values and the
// classification function that maps arbitrary Go values onto it.
//
// Five variants implement the sealed Value interface:
//
//   - Integer    - signed whole number of arbitrary precision
//   - ByteString - raw bytes, not necessarily valid UTF-8
//   - List       - ordered sequence of values
//   - Dict       - key/value pairs; output order is always byte-sorted
//   - ForcedList - marker forcing list grammar for any container
//
// Callers can build values from these variants directly or hand plain Go
// values to Classify, which resolves the shape of native containers
// (slices, maps, structs, iterators) with a fixed priority order.
package value

import (
	"github.com/arloliu/bencode/format"
)

// Value is an encodable value. Only types in this package implement it.
type Value interface {
	Kind() format.Kind
	isValue()
}

// ByteString is an arbitrary byte sequence.
type ByteString []byte

// List is an ordered sequence of values. Elements are classified lazily when
// the list is encoded, so they may be any Go value.
type List []any

// Pair is one dictionary entry. Key holds the raw bytes of the key.
type Pair struct {
	Key   []byte
	Value any
}

// Dict is a set of dictionary entries.
//
// The order of Pairs is irrelevant to the encoded form, which is always
// sorted by key. Pairs order does matter for duplicate keys: when two pairs
// share a key, the later one wins.
type Dict struct {
	Pairs []Pair

	// unordered is set when Pairs was collected from a container whose
	// iteration order is unspecified, such as a Go map. "Later" has no
	// meaning there, so duplicate keys resolve by encoded value instead.
	unordered bool
}

// ForcedList wraps a container that must be encoded as a list, whatever
// its native shape. Elements are taken in the container's native order.
type ForcedList struct {
	Of any
}

var (
	_ Value = Integer{}
	_ Value = ByteString(nil)
	_ Value = List(nil)
	_ Value = Dict{}
	_ Value = ForcedList{}
)

func (Integer) Kind() format.Kind    { return format.KindInteger }
func (ByteString) Kind() format.Kind { return format.KindByteString }
func (List) Kind() format.Kind       { return format.KindList }
func (Dict) Kind() format.Kind       { return format.KindDictionary }
func (ForcedList) Kind() format.Kind { return format.KindForcedList }

func (Integer) isValue()    {}
func (ByteString) isValue() {}
func (List) isValue()       {}
func (Dict) isValue()       {}
func (ForcedList) isValue() {}

// Entry builds a dictionary pair with a string key.
func Entry(key string, v any) Pair {
	return Pair{Key: []byte(key), Value: v}
}

// NewDict builds a dictionary from pairs. Later pairs win over earlier
// pairs with the same key.
func NewDict(pairs ...Pair) Dict {
	return Dict{Pairs: pairs}
}

// NewUnorderedDict builds a dictionary from pairs collected in no defined
// order. When two pairs share a key, the value with the greater encoding
// wins.
func NewUnorderedDict(pairs ...Pair) Dict {
	return Dict{Pairs: pairs, unordered: true}
}

// Len returns the number of pairs, duplicates included.
func (d Dict) Len() int {
	return len(d.Pairs)
}

// Unordered reports whether the pairs came from a container with no
// defined iteration order.
func (d Dict) Unordered() bool {
	return d.unordered
}

// AsList wraps v so it is always encoded as a list.
func AsList(v any) ForcedList {
	return ForcedList{Of: v}
}
