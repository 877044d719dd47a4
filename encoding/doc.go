// Package encoding provides the low-level writers for the Bencode grammar.
//
//	value      := integer | bytestring | list | dict
//	integer    := 'i' ['-'] digit+ 'e'
//	bytestring := digit+ ':' <raw bytes of that length>
//	list       := 'l' value* 'e'
//	dict       := 'd' (bytestring value)* 'e'   ; keys strictly ascending by byte value
//
// Writer emits the leaf productions and the list/dictionary framing into a
// pooled buffer; it performs no classification and no recursion. The encoder
// package drives a Writer while walking a value graph.
//
// Dictionary order is decided by a KeyComparator. ByteOrder, the default,
// compares raw key bytes and is the only comparator that yields canonical
// output; other comparators exist for interoperability with peers that
// already depend on a different order.
package encoding
