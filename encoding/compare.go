package encoding

import (
	"bytes"
	"slices"

	"github.com/arloliu/bencode/value"
)

// KeyComparator orders dictionary keys. It must be a pure function of its
// arguments and define a strict weak ordering; it returns a negative number
// when a sorts before b, zero when they are equal, positive otherwise.
type KeyComparator func(a, b []byte) int

// ByteOrder compares keys as unsigned byte strings. It is the canonical
// Bencode order and the default everywhere.
func ByteOrder(a, b []byte) int {
	return bytes.Compare(a, b)
}

// SortPairs sorts pairs by key with cmp. The sort is stable, so pairs with
// equal keys keep their relative order.
func SortPairs(pairs []value.Pair, cmp KeyComparator) {
	if cmp == nil {
		cmp = ByteOrder
	}

	slices.SortStableFunc(pairs, func(a, b value.Pair) int {
		return cmp(a.Key, b.Key)
	})
}

// IsStrictlySorted reports whether the keys of pairs are strictly ascending
// under cmp, which also rules out duplicates.
func IsStrictlySorted(pairs []value.Pair, cmp KeyComparator) bool {
	if cmp == nil {
		cmp = ByteOrder
	}

	for i := 1; i < len(pairs); i++ {
		if cmp(pairs[i-1].Key, pairs[i].Key) >= 0 {
			return false
		}
	}

	return true
}
